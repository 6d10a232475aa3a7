package model

import (
	"github.com/google/uuid"
)

// QuestionType enumerates the supported question types. The answer validator
// dispatches on this value; anything outside the enum is rejected.
type QuestionType string

const (
	QuestionTypeTextbox        QuestionType = "TEXTBOX"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeLikert         QuestionType = "LIKERT"
)

// QuestionSpec carries the type-specific constraints of a question. Only the
// fields relevant to the question's type are populated; the survey service
// rejects specs whose shape does not match the declared type.
type QuestionSpec struct {
	// MaxLength bounds a TEXTBOX answer, measured in Unicode code points.
	MaxLength *int `json:"maxLength,omitempty"`
	// Choices is the closed option set for MULTIPLE_CHOICE.
	Choices []string `json:"choices,omitempty"`
	// Min and Max bound a LIKERT answer (inclusive).
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
	// Labels optionally names the LIKERT scale points,
	// e.g. ["Strongly Disagree", ..., "Strongly Agree"].
	Labels []string `json:"labels,omitempty"`
}

// Question is one item of a survey. The id is assigned at creation and is the
// reference target for submitted answers.
type Question struct {
	ID   uuid.UUID    `json:"id"`
	Text string       `json:"text"`
	Type QuestionType `json:"type"`
	Spec QuestionSpec `json:"spec"`
}

// QuestionRequest is the payload shape of a question inside survey
// create/update requests.
type QuestionRequest struct {
	Text string        `json:"text" binding:"required,min=1,max=2000"`
	Type string        `json:"type" binding:"required,oneof=TEXTBOX MULTIPLE_CHOICE LIKERT"`
	Spec *QuestionSpec `json:"spec" binding:"required"`
}
