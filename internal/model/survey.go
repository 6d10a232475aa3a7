package model

import (
	"time"

	"github.com/google/uuid"
)

// Survey is a named, ordered collection of questions addressable by a public
// token. The token is the participant-facing lookup key; the id stays
// internal/admin-facing.
type Survey struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Token     string     `json:"token"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreateSurveyRequest is the payload for creating a new survey.
type CreateSurveyRequest struct {
	Title     string            `json:"title" binding:"required,min=1,max=255"`
	Questions []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// UpdateSurveyRequest is the payload for updating an existing survey.
// At least one field must be present; Questions, when present, fully replaces
// the prior question list. The non-empty check on Questions lives in the
// survey service so an explicit empty array gets its dedicated error instead
// of a generic binding failure.
type UpdateSurveyRequest struct {
	Title     string            `json:"title" binding:"omitempty,min=1,max=255"`
	Questions []QuestionRequest `json:"questions" binding:"omitempty,dive"`
}
