package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/rs/zerolog"
)

// ResponseService orchestrates submissions and response listing.
type ResponseService struct {
	surveys   *SurveyService
	responses ResponseStore
	log       zerolog.Logger
}

// NewResponseService creates a new ResponseService.
func NewResponseService(surveys *SurveyService, responses ResponseStore, log zerolog.Logger) *ResponseService {
	return &ResponseService{
		surveys:   surveys,
		responses: responses,
		log:       log.With().Str("component", "response_service").Logger(),
	}
}

// Submit runs one submission through the validation pipeline and persists the
// response if every answer passes. Every step before the final write is
// read-only, and validation short-circuits on the first failing answer.
//
// Consistency caveat: the survey is read once at the start and not locked.
// A concurrent survey update can change the question set between the read and
// the write; both operations still succeed independently. Per-record atomicity
// comes from the storage layer.
func (s *ResponseService) Submit(ctx context.Context, token string, req *model.SubmitResponseRequest) (*model.Response, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if len(req.Answers) == 0 {
		return nil, ErrMissingAnswers
	}

	survey, err := s.surveys.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// Strict positional count check before any per-answer validation.
	if len(req.Answers) != len(survey.Questions) {
		return nil, ErrAnswerCountMismatch
	}

	// Indexed lookup, built once per submission, instead of a linear scan
	// per answer.
	index := make(map[uuid.UUID]*model.Question, len(survey.Questions))
	for i := range survey.Questions {
		index[survey.Questions[i].ID] = &survey.Questions[i]
	}

	validated := make([]model.Answer, 0, len(req.Answers))
	for _, submitted := range req.Answers {
		questionID, err := uuid.Parse(submitted.QuestionID)
		if err != nil {
			return nil, &InvalidQuestionError{QuestionID: submitted.QuestionID}
		}
		question, ok := index[questionID]
		if !ok {
			return nil, &InvalidQuestionError{QuestionID: submitted.QuestionID}
		}

		value, reason := ValidateAnswer(question, submitted.Value)
		if reason != nil {
			return nil, &ConstraintViolation{QuestionID: questionID, Reason: reason.Error()}
		}

		validated = append(validated, model.Answer{QuestionID: questionID, Value: value})
	}

	resp := &model.Response{
		SurveyID: survey.ID,
		Answers:  validated,
	}
	if err := s.responses.Create(ctx, resp); err != nil {
		return nil, fmt.Errorf("persist response: %w", err)
	}

	s.log.Info().
		Str("survey_id", survey.ID.String()).
		Str("response_id", resp.ID.String()).
		Int("answers", len(resp.Answers)).
		Msg("Response submitted")
	return resp, nil
}

// ListBySurvey returns all responses for a survey, newest last. The survey
// must exist; an unknown id is reported as not found.
func (s *ResponseService) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]model.Response, error) {
	if _, err := s.surveys.GetByID(ctx, surveyID); err != nil {
		return nil, err
	}

	responses, err := s.responses.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if responses == nil {
		responses = []model.Response{}
	}
	return responses, nil
}
