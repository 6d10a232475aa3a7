package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ospteam/osp-backend/internal/model"
)

func intPtr(n int) *int { return &n }

func textboxQuestion(maxLength *int) *model.Question {
	return &model.Question{
		ID:   uuid.New(),
		Text: "Any feedback?",
		Type: model.QuestionTypeTextbox,
		Spec: model.QuestionSpec{MaxLength: maxLength},
	}
}

func choiceQuestion(choices ...string) *model.Question {
	return &model.Question{
		ID:   uuid.New(),
		Text: "Favorite color?",
		Type: model.QuestionTypeMultipleChoice,
		Spec: model.QuestionSpec{Choices: choices},
	}
}

func likertQuestion(min, max int) *model.Question {
	return &model.Question{
		ID:   uuid.New(),
		Text: "How satisfied are you?",
		Type: model.QuestionTypeLikert,
		Spec: model.QuestionSpec{Min: intPtr(min), Max: intPtr(max)},
	}
}

func TestValidateAnswerTextbox(t *testing.T) {
	tests := []struct {
		name      string
		maxLength *int
		value     string
		wantErr   string
	}{
		{"within limit", intPtr(5), "hi", ""},
		{"exactly at limit", intPtr(5), "12345", ""},
		{"over limit", intPtr(5), "too long", "exceeds maximum length of 5"},
		{"no limit accepts anything", nil, strings.Repeat("x", 10000), ""},
		{"empty value within limit", intPtr(5), "", ""},
		{"multibyte runes counted as code points", intPtr(3), "日本語", ""},
		{"multibyte over limit", intPtr(2), "日本語", "exceeds maximum length of 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAnswer(textboxQuestion(tt.maxLength), tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateAnswer() error = %v, want nil", err)
				}
				if got != tt.value {
					t.Errorf("ValidateAnswer() = %q, want %q", got, tt.value)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateAnswer() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswerMultipleChoice(t *testing.T) {
	q := choiceQuestion("Red", "Blue")

	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"first choice", "Red", ""},
		{"second choice", "Blue", ""},
		{"unknown choice", "Green", "is not a valid choice"},
		{"case sensitive", "red", "is not a valid choice"},
		{"no trimming", " Red", "is not a valid choice"},
		{"empty value", "", "is not a valid choice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAnswer(q, tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateAnswer() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateAnswer() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswerLikert(t *testing.T) {
	q := likertQuestion(1, 5)

	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"lower bound", "1", ""},
		{"upper bound", "5", ""},
		{"middle", "3", ""},
		{"decimal inside range", "2.5", ""},
		// Numeric comparison: "10" > 5 even though "10" < "5" as strings.
		{"numerically above max", "10", "is out of range"},
		{"below min", "0", "is out of range"},
		{"negative", "-1", "is out of range"},
		{"non-numeric", "abc", "is out of range"},
		{"empty value", "", "is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAnswer(q, tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateAnswer() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateAnswer() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswerUnsupportedType(t *testing.T) {
	q := &model.Question{
		ID:   uuid.New(),
		Text: "mystery",
		Type: model.QuestionType("RANKING"),
	}

	_, err := ValidateAnswer(q, "whatever")
	if err == nil {
		t.Fatal("ValidateAnswer() accepted an unsupported question type")
	}
	if got, want := err.Error(), "Unsupported question type: RANKING"; got != want {
		t.Errorf("ValidateAnswer() error = %q, want %q", got, want)
	}
}

// A TEXTBOX answer must never be checked against another type's constraints,
// even when maxLength is unset and the spec happens to carry a choices array.
func TestValidateAnswerTextboxIgnoresForeignSpecFields(t *testing.T) {
	q := &model.Question{
		ID:   uuid.New(),
		Text: "free text",
		Type: model.QuestionTypeTextbox,
		Spec: model.QuestionSpec{Choices: []string{"Red", "Blue"}},
	}

	got, err := ValidateAnswer(q, "Green")
	if err != nil {
		t.Fatalf("ValidateAnswer() error = %v, want nil", err)
	}
	if got != "Green" {
		t.Errorf("ValidateAnswer() = %q, want %q", got, "Green")
	}
}
