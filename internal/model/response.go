package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer pairs a question id with the participant-supplied value. Values are
// kept as strings; interpretation depends on the referenced question's type.
type Answer struct {
	QuestionID uuid.UUID `json:"questionId"`
	Value      string    `json:"value"`
}

// Response is one participant's full answer set for a survey, persisted only
// after every answer has passed validation. Never mutated after creation.
type Response struct {
	ID        uuid.UUID `json:"id"`
	SurveyID  uuid.UUID `json:"surveyId"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitAnswerRequest is one answer inside a submission payload. QuestionID is
// bound as a plain string so that malformed ids surface as an invalid question
// reference rather than a binding failure. Value carries no binding constraint:
// an empty string is a legal TEXTBOX answer, and for the other types the
// per-question validator rejects it with the proper constraint message.
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

// SubmitResponseRequest is the payload for submitting a response. The
// non-empty check lives in the submission service so the caller gets the
// dedicated missing-answers error instead of a generic binding failure.
type SubmitResponseRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" binding:"omitempty,dive"`
}
