package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ospteam/osp-backend/internal/config"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/ospteam/osp-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SurveyService handles survey lifecycle logic and Redis payload caching.
type SurveyService struct {
	surveys  SurveyStore
	rdb      *redis.Client
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewSurveyService creates a new SurveyService. rdb may be nil, in which case
// caching is disabled and every lookup hits the store.
func NewSurveyService(surveys SurveyStore, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *SurveyService {
	return &SurveyService{
		surveys:  surveys,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		log:      log.With().Str("component", "survey_service").Logger(),
	}
}

// Create validates the question list, assigns question ids and a fresh public
// token, and persists the survey.
func (s *SurveyService) Create(ctx context.Context, req *model.CreateSurveyRequest) (*model.Survey, error) {
	if req.Title == "" || len(req.Questions) == 0 {
		return nil, ErrMissingFields
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	survey := &model.Survey{
		Title:     req.Title,
		Token:     newToken(),
		Questions: questions,
	}

	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}

	s.warmCache(ctx, survey)

	s.log.Info().
		Str("survey_id", survey.ID.String()).
		Str("token", survey.Token).
		Int("questions", len(survey.Questions)).
		Msg("Survey created")
	return survey, nil
}

// Update applies a partial update. Title and questions are each optional, but
// at least one must be present; a provided question list fully replaces the
// prior one (no merge) and gets fresh question ids.
func (s *SurveyService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSurveyRequest) (*model.Survey, error) {
	if req.Title == "" && req.Questions == nil {
		return nil, ErrNoFieldsProvided
	}

	survey, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}

	staleToken := survey.Token

	if req.Title != "" {
		survey.Title = req.Title
	}
	if req.Questions != nil {
		if len(req.Questions) == 0 {
			return nil, ErrEmptyQuestions
		}
		questions, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		survey.Questions = questions
	}

	if err := s.surveys.Update(ctx, survey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("update survey: %w", err)
	}

	s.dropCache(ctx, staleToken)
	s.warmCache(ctx, survey)

	s.log.Info().Str("survey_id", survey.ID.String()).Msg("Survey updated")
	return survey, nil
}

// Delete removes a survey and returns the deleted record.
func (s *SurveyService) Delete(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	survey, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}

	if err := s.surveys.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("delete survey: %w", err)
	}

	s.dropCache(ctx, survey.Token)

	s.log.Info().Str("survey_id", id.String()).Msg("Survey deleted")
	return survey, nil
}

// GetByID retrieves a survey by its internal id.
func (s *SurveyService) GetByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	survey, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return survey, nil
}

// GetByToken retrieves a survey by its public token. This is the participant
// hot path: it reads through the Redis payload cache and falls back to the
// store on a miss.
func (s *SurveyService) GetByToken(ctx context.Context, token string) (*model.Survey, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, config.CacheKey.SurveyPayloadKey(token)).Result()
		if err == nil {
			var survey model.Survey
			if err := json.Unmarshal([]byte(raw), &survey); err == nil {
				return &survey, nil
			}
			// Corrupt entry; drop it and fall through to the store.
			s.dropCache(ctx, token)
		}
	}

	survey, err := s.surveys.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("get survey by token: %w", err)
	}

	s.warmCache(ctx, survey)
	return survey, nil
}

// List retrieves surveys with pagination for the admin listing.
func (s *SurveyService) List(ctx context.Context, page, perPage int) ([]model.Survey, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	surveys, total, err := s.surveys.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if surveys == nil {
		surveys = []model.Survey{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return surveys, pagination, nil
}

// PrewarmAllCaches loads every survey payload into Redis. Called once at
// startup so participant lookups never stampede the database cold.
func (s *SurveyService) PrewarmAllCaches(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}

	surveys, err := s.surveys.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list surveys: %w", err)
	}

	for i := range surveys {
		s.warmCache(ctx, &surveys[i])
	}

	s.log.Info().Int("count", len(surveys)).Msg("Survey caches prewarmed")
	return nil
}

// warmCache stores the survey payload in Redis keyed by token. Best effort:
// a cache failure is logged, never surfaced.
func (s *SurveyService) warmCache(ctx context.Context, survey *model.Survey) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(survey)
	if err != nil {
		s.log.Warn().Err(err).Str("survey_id", survey.ID.String()).Msg("Cache marshal failed")
		return
	}
	key := config.CacheKey.SurveyPayloadKey(survey.Token)
	if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (s *SurveyService) dropCache(ctx context.Context, token string) {
	if s.rdb == nil {
		return
	}
	key := config.CacheKey.SurveyPayloadKey(token)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}

// buildQuestions converts request questions into domain questions, enforcing
// spec/type shape consistency and assigning ids. Ids are unique by
// construction, which keeps answer lookups unambiguous.
func buildQuestions(reqs []model.QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, len(reqs))
	for i, q := range reqs {
		if q.Text == "" || q.Type == "" || q.Spec == nil {
			return nil, ErrMissingFields
		}
		qType := model.QuestionType(q.Type)
		if err := checkSpec(qType, q.Spec); err != nil {
			return nil, fmt.Errorf("%w: question %d %s", ErrInvalidQuestionSpec, i+1, err)
		}
		questions[i] = model.Question{
			ID:   uuid.New(),
			Text: q.Text,
			Type: qType,
			Spec: *q.Spec,
		}
	}
	return questions, nil
}

// checkSpec verifies that a spec's shape matches the declared question type.
// Failing here is strictly better than failing every submission later.
func checkSpec(t model.QuestionType, spec *model.QuestionSpec) error {
	switch t {
	case model.QuestionTypeTextbox:
		if spec.MaxLength != nil && *spec.MaxLength <= 0 {
			return errors.New("maxLength must be a positive integer")
		}
	case model.QuestionTypeMultipleChoice:
		if len(spec.Choices) == 0 {
			return errors.New("requires a non-empty choices array")
		}
	case model.QuestionTypeLikert:
		if spec.Min == nil || spec.Max == nil {
			return errors.New("requires min and max")
		}
		if *spec.Min > *spec.Max {
			return errors.New("requires min <= max")
		}
	default:
		return fmt.Errorf("unsupported type %s", t)
	}
	return nil
}

// newToken generates an opaque public token for a survey. Uniqueness is
// backed by the surveys.token unique index.
func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
