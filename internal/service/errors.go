package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Domain Errors
var (
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrMissingToken        = errors.New("survey token is required")
	ErrMissingAnswers      = errors.New("answers are required and should be a non-empty array")
	ErrAnswerCountMismatch = errors.New("number of answers does not match number of questions in the survey")
	ErrMissingFields       = errors.New("title and at least one question are required")
	ErrEmptyQuestions      = errors.New("questions must be a non-empty array")
	ErrNoFieldsProvided    = errors.New("at least one of title or questions must be provided for update")
	ErrInvalidQuestionSpec = errors.New("question spec does not match its declared type")
)

// InvalidQuestionError reports a submitted answer whose questionId does not
// reference any question of the target survey. Malformed ids are reported the
// same way as unknown ones.
type InvalidQuestionError struct {
	QuestionID string
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("Invalid question ID: %s", e.QuestionID)
}

// ConstraintViolation reports an answer that failed its question's
// type-specific rule. The message always names the offending question so a
// client can pinpoint the failing field.
type ConstraintViolation struct {
	QuestionID uuid.UUID
	Reason     string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("Answer for question %s %s", e.QuestionID, e.Reason)
}
