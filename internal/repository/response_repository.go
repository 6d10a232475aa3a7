package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ospteam/osp-backend/internal/model"
)

// ResponseRepository handles response data access. A response and its answers
// are written in one transaction; a partially stored answer set is never
// observable.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Create inserts a response together with its answers, preserving submission
// order.
func (r *ResponseRepository) Create(ctx context.Context, resp *model.Response) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO responses (survey_id)
		 VALUES ($1)
		 RETURNING id, created_at`,
		resp.SurveyID,
	).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return err
	}

	for i, a := range resp.Answers {
		_, err := tx.Exec(ctx,
			`INSERT INTO answers (response_id, question_id, value, order_num)
			 VALUES ($1, $2, $3, $4)`,
			resp.ID, a.QuestionID, a.Value, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListBySurvey retrieves all responses for a survey, oldest first, each with
// its answers in submission order.
func (r *ResponseRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]model.Response, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, survey_id, created_at
		 FROM responses WHERE survey_id = $1
		 ORDER BY created_at`, surveyID)
	if err != nil {
		return nil, err
	}

	var responses []model.Response
	for rows.Next() {
		var resp model.Response
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		responses = append(responses, resp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(responses) == 0 {
		return responses, nil
	}

	ids := make([]uuid.UUID, len(responses))
	byID := make(map[uuid.UUID]*model.Response, len(responses))
	for i := range responses {
		ids[i] = responses[i].ID
		byID[responses[i].ID] = &responses[i]
	}

	answerRows, err := r.pool.Query(ctx,
		`SELECT response_id, question_id, value
		 FROM answers WHERE response_id = ANY($1)
		 ORDER BY order_num`, ids)
	if err != nil {
		return nil, err
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var responseID uuid.UUID
		var a model.Answer
		if err := answerRows.Scan(&responseID, &a.QuestionID, &a.Value); err != nil {
			return nil, err
		}
		if resp, ok := byID[responseID]; ok {
			resp.Answers = append(resp.Answers, a)
		}
	}
	if err := answerRows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
