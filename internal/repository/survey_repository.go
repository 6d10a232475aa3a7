package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ospteam/osp-backend/internal/model"
)

// SurveyRepository handles survey data access. A survey and its questions are
// always written in one transaction so the aggregate never persists partially.
type SurveyRepository struct {
	pool *pgxpool.Pool
}

// NewSurveyRepository creates a new SurveyRepository.
func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{pool: pool}
}

// Create inserts a survey together with its question list.
func (r *SurveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO surveys (title, token)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		survey.Title, survey.Token,
	).Scan(&survey.ID, &survey.CreatedAt, &survey.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertQuestions(ctx, tx, survey.ID, survey.Questions); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a survey and its questions by internal id.
func (r *SurveyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Survey, error) {
	return r.getBy(ctx, `SELECT id, title, token, created_at, updated_at FROM surveys WHERE id = $1`, id)
}

// GetByToken retrieves a survey and its questions by public token.
func (r *SurveyRepository) GetByToken(ctx context.Context, token string) (*model.Survey, error) {
	return r.getBy(ctx, `SELECT id, title, token, created_at, updated_at FROM surveys WHERE token = $1`, token)
}

func (r *SurveyRepository) getBy(ctx context.Context, query string, arg interface{}) (*model.Survey, error) {
	s := &model.Survey{}
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&s.ID, &s.Title, &s.Token, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	questions, err := r.loadQuestions(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Questions = questions
	return s, nil
}

// Update rewrites a survey's title and replaces its question list wholesale.
// Returns pgx.ErrNoRows if the survey does not exist.
func (r *SurveyRepository) Update(ctx context.Context, survey *model.Survey) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE surveys SET title = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING updated_at`,
		survey.Title, survey.ID,
	).Scan(&survey.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE survey_id = $1`, survey.ID); err != nil {
		return err
	}
	if err := insertQuestions(ctx, tx, survey.ID, survey.Questions); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a survey. Questions and responses cascade at the schema
// level. Returns pgx.ErrNoRows if the survey does not exist.
func (r *SurveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List retrieves surveys with pagination, newest first.
func (r *SurveyRepository) List(ctx context.Context, limit, offset int) ([]model.Survey, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surveys`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, token, created_at, updated_at
		 FROM surveys
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	surveys, err := scanSurveys(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachQuestions(ctx, surveys); err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}

// ListAll retrieves every survey with questions. Used for cache prewarming on
// application startup.
func (r *SurveyRepository) ListAll(ctx context.Context) ([]model.Survey, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, token, created_at, updated_at
		 FROM surveys
		 ORDER BY created_at`)
	if err != nil {
		return nil, err
	}

	surveys, err := scanSurveys(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachQuestions(ctx, surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func scanSurveys(rows pgx.Rows) ([]model.Survey, error) {
	defer rows.Close()

	var surveys []model.Survey
	for rows.Next() {
		var s model.Survey
		if err := rows.Scan(&s.ID, &s.Title, &s.Token, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

func (r *SurveyRepository) loadQuestions(ctx context.Context, surveyID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, text, type, spec
		 FROM questions WHERE survey_id = $1
		 ORDER BY order_num`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &q.Spec); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// attachQuestions loads the questions of every listed survey in one query.
func (r *SurveyRepository) attachQuestions(ctx context.Context, surveys []model.Survey) error {
	if len(surveys) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(surveys))
	byID := make(map[uuid.UUID]*model.Survey, len(surveys))
	for i := range surveys {
		ids[i] = surveys[i].ID
		byID[surveys[i].ID] = &surveys[i]
	}

	rows, err := r.pool.Query(ctx,
		`SELECT survey_id, id, text, type, spec
		 FROM questions WHERE survey_id = ANY($1)
		 ORDER BY order_num`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var surveyID uuid.UUID
		var q model.Question
		if err := rows.Scan(&surveyID, &q.ID, &q.Text, &q.Type, &q.Spec); err != nil {
			return err
		}
		if s, ok := byID[surveyID]; ok {
			s.Questions = append(s.Questions, q)
		}
	}
	return rows.Err()
}

func insertQuestions(ctx context.Context, tx pgx.Tx, surveyID uuid.UUID, questions []model.Question) error {
	for i, q := range questions {
		_, err := tx.Exec(ctx,
			`INSERT INTO questions (id, survey_id, text, type, spec, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			q.ID, surveyID, q.Text, q.Type, q.Spec, i)
		if err != nil {
			return err
		}
	}
	return nil
}
