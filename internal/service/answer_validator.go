package service

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/ospteam/osp-backend/internal/model"
)

// ValidateAnswer checks a raw answer value against the question's type-specific
// constraints. It returns the value to persist on success, or a rejection
// reason. Pure function: no I/O, no state.
//
// Exactly one case runs per question type; an unrecognized type is rejected
// rather than falling through to another type's check.
func ValidateAnswer(q *model.Question, raw string) (string, error) {
	switch q.Type {
	case model.QuestionTypeTextbox:
		// Length is measured in code points, not bytes.
		if q.Spec.MaxLength != nil && utf8.RuneCountInString(raw) > *q.Spec.MaxLength {
			return "", fmt.Errorf("exceeds maximum length of %d", *q.Spec.MaxLength)
		}
		return raw, nil

	case model.QuestionTypeMultipleChoice:
		// Exact string equality, case-sensitive, no trimming.
		for _, choice := range q.Spec.Choices {
			if raw == choice {
				return raw, nil
			}
		}
		return "", errors.New("is not a valid choice")

	case model.QuestionTypeLikert:
		// Numeric comparison: "10" must compare greater than max=5.
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", errors.New("is out of range")
		}
		if q.Spec.Min != nil && v < float64(*q.Spec.Min) {
			return "", errors.New("is out of range")
		}
		if q.Spec.Max != nil && v > float64(*q.Spec.Max) {
			return "", errors.New("is out of range")
		}
		return raw, nil

	default:
		return "", fmt.Errorf("Unsupported question type: %s", q.Type)
	}
}
