package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ospteam/osp-backend/internal/model"
)

// SurveyStore is the storage handle the survey and submission services are
// threaded with. Implementations report a missing record as pgx.ErrNoRows;
// the services translate that into domain errors.
type SurveyStore interface {
	Create(ctx context.Context, survey *model.Survey) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Survey, error)
	GetByToken(ctx context.Context, token string) (*model.Survey, error)
	// Update replaces title and question list wholesale.
	Update(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]model.Survey, int, error)
	ListAll(ctx context.Context) ([]model.Survey, error)
}

// ResponseStore persists and lists submitted responses.
type ResponseStore interface {
	Create(ctx context.Context, resp *model.Response) error
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]model.Response, error)
}
