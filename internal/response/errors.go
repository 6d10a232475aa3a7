package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication / Authorization ────────────────────────────────
	ErrAPIKeyInvalid ErrCode = "API_KEY_INVALID"
	ErrRoleMissing   ErrCode = "ROLE_MISSING"
	ErrForbidden     ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrInvalidID        ErrCode = "INVALID_ID"
	ErrMissingFields    ErrCode = "MISSING_FIELDS"
	ErrNoFieldsProvided ErrCode = "NO_FIELDS_PROVIDED"
	ErrQuestionsEmpty   ErrCode = "QUESTIONS_EMPTY"
	ErrInvalidSpec      ErrCode = "INVALID_QUESTION_SPEC"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrSurveyNotFound ErrCode = "SURVEY_NOT_FOUND"

	// ─── Submission ────────────────────────────────────────────────────
	ErrTokenRequired       ErrCode = "SURVEY_TOKEN_REQUIRED"
	ErrAnswersRequired     ErrCode = "ANSWERS_REQUIRED"
	ErrAnswerCountMismatch ErrCode = "ANSWER_COUNT_MISMATCH"
	ErrInvalidQuestionID   ErrCode = "INVALID_QUESTION_ID"
	ErrInvalidAnswer       ErrCode = "INVALID_ANSWER"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the canonical human-readable message for an error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication / Authorization ────────────────────────────────
	case ErrAPIKeyInvalid:
		return "Unauthorized: Invalid or missing API Key"
	case ErrRoleMissing:
		return "Authentication failed: User role not found."
	case ErrForbidden:
		return "Access denied: You do not have administrator privileges."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid survey ID format"
	case ErrMissingFields:
		return "Title and at least one question are required"
	case ErrNoFieldsProvided:
		return "At least one of title or questions must be provided for update"
	case ErrQuestionsEmpty:
		return "Questions must be a non-empty array"
	case ErrInvalidSpec:
		return "Question spec does not match its declared type"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrSurveyNotFound:
		return "Survey not found"

	// ─── Submission ────────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Survey token is required"
	case ErrAnswersRequired:
		return "Answers are required and should be a non-empty array"
	case ErrAnswerCountMismatch:
		return "Number of answers does not match number of questions in the survey"
	case ErrInvalidQuestionID:
		return "Invalid question ID"
	case ErrInvalidAnswer:
		return "Invalid answer"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Server error"
	default:
		return "An unexpected error occurred"
	}
}
