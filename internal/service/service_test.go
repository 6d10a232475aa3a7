package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/rs/zerolog"
)

// ─── In-memory stores ───────────────────────────────────────────────────────

type memSurveyStore struct {
	mu      sync.Mutex
	surveys []*model.Survey
}

func cloneSurvey(s *model.Survey) *model.Survey {
	c := *s
	c.Questions = append([]model.Question(nil), s.Questions...)
	return &c
}

func (m *memSurveyStore) Create(_ context.Context, survey *model.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	survey.ID = uuid.New()
	now := time.Now().UTC()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	m.surveys = append(m.surveys, cloneSurvey(survey))
	return nil
}

func (m *memSurveyStore) GetByID(_ context.Context, id uuid.UUID) (*model.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.surveys {
		if s.ID == id {
			return cloneSurvey(s), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memSurveyStore) GetByToken(_ context.Context, token string) (*model.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.surveys {
		if s.Token == token {
			return cloneSurvey(s), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memSurveyStore) Update(_ context.Context, survey *model.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.surveys {
		if s.ID == survey.ID {
			survey.UpdatedAt = time.Now().UTC()
			survey.CreatedAt = s.CreatedAt
			m.surveys[i] = cloneSurvey(survey)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memSurveyStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.surveys {
		if s.ID == id {
			m.surveys = append(m.surveys[:i], m.surveys[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memSurveyStore) List(_ context.Context, limit, offset int) ([]model.Survey, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := len(m.surveys)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]model.Survey, 0, end-offset)
	for _, s := range m.surveys[offset:end] {
		out = append(out, *cloneSurvey(s))
	}
	return out, total, nil
}

func (m *memSurveyStore) ListAll(_ context.Context) ([]model.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Survey, 0, len(m.surveys))
	for _, s := range m.surveys {
		out = append(out, *cloneSurvey(s))
	}
	return out, nil
}

type memResponseStore struct {
	mu        sync.Mutex
	responses []*model.Response
}

func cloneResponse(r *model.Response) *model.Response {
	c := *r
	c.Answers = append([]model.Answer(nil), r.Answers...)
	return &c
}

func (m *memResponseStore) Create(_ context.Context, resp *model.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp.ID = uuid.New()
	resp.CreatedAt = time.Now().UTC()
	m.responses = append(m.responses, cloneResponse(resp))
	return nil
}

func (m *memResponseStore) ListBySurvey(_ context.Context, surveyID uuid.UUID) ([]model.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Response
	for _, r := range m.responses {
		if r.SurveyID == surveyID {
			out = append(out, *cloneResponse(r))
		}
	}
	return out, nil
}

func (m *memResponseStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

// ─── Fixtures ───────────────────────────────────────────────────────────────

func newTestServices(t *testing.T) (*SurveyService, *ResponseService, *memResponseStore) {
	t.Helper()
	surveyStore := &memSurveyStore{}
	responseStore := &memResponseStore{}
	surveys := NewSurveyService(surveyStore, nil, 0, zerolog.Nop())
	responses := NewResponseService(surveys, responseStore, zerolog.Nop())
	return surveys, responses, responseStore
}

func textboxSurveyReq(maxLength *int) *model.CreateSurveyRequest {
	return &model.CreateSurveyRequest{
		Title: "Customer Feedback",
		Questions: []model.QuestionRequest{
			{Text: "Any feedback?", Type: "TEXTBOX", Spec: &model.QuestionSpec{MaxLength: maxLength}},
		},
	}
}

// ─── SurveyService tests ────────────────────────────────────────────────────

func TestSurveyServiceCreate(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, &model.CreateSurveyRequest{
		Title: "Team Pulse",
		Questions: []model.QuestionRequest{
			{Text: "Any feedback?", Type: "TEXTBOX", Spec: &model.QuestionSpec{MaxLength: intPtr(100)}},
			{Text: "Favorite color?", Type: "MULTIPLE_CHOICE", Spec: &model.QuestionSpec{Choices: []string{"Red", "Blue"}}},
			{Text: "Satisfaction?", Type: "LIKERT", Spec: &model.QuestionSpec{Min: intPtr(1), Max: intPtr(5)}},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Token == "" {
		t.Error("Create() left token empty")
	}
	if len(created.Questions) != 3 {
		t.Fatalf("Create() question count = %d, want 3", len(created.Questions))
	}

	seen := make(map[uuid.UUID]bool)
	for _, q := range created.Questions {
		if q.ID == uuid.Nil {
			t.Error("Create() left a question without an id")
		}
		if seen[q.ID] {
			t.Errorf("Create() duplicated question id %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSurveyServiceCreateRejectsMissingFields(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.CreateSurveyRequest
	}{
		{"empty title", &model.CreateSurveyRequest{Questions: textboxSurveyReq(nil).Questions}},
		{"no questions", &model.CreateSurveyRequest{Title: "Empty"}},
		{"question without text", &model.CreateSurveyRequest{
			Title:     "Bad",
			Questions: []model.QuestionRequest{{Type: "TEXTBOX", Spec: &model.QuestionSpec{}}},
		}},
		{"question without spec", &model.CreateSurveyRequest{
			Title:     "Bad",
			Questions: []model.QuestionRequest{{Text: "q", Type: "TEXTBOX"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := surveys.Create(ctx, tt.req); err != ErrMissingFields {
				t.Errorf("Create() error = %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestSurveyServiceCreateRejectsMismatchedSpec(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    model.QuestionRequest
	}{
		{"multiple choice without choices", model.QuestionRequest{Text: "q", Type: "MULTIPLE_CHOICE", Spec: &model.QuestionSpec{}}},
		{"likert without bounds", model.QuestionRequest{Text: "q", Type: "LIKERT", Spec: &model.QuestionSpec{}}},
		{"likert min above max", model.QuestionRequest{Text: "q", Type: "LIKERT", Spec: &model.QuestionSpec{Min: intPtr(5), Max: intPtr(1)}}},
		{"textbox with non-positive maxLength", model.QuestionRequest{Text: "q", Type: "TEXTBOX", Spec: &model.QuestionSpec{MaxLength: intPtr(0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := surveys.Create(ctx, &model.CreateSurveyRequest{
				Title:     "Shape check",
				Questions: []model.QuestionRequest{tt.q},
			})
			if err == nil || !strings.Contains(err.Error(), ErrInvalidQuestionSpec.Error()) {
				t.Errorf("Create() error = %v, want ErrInvalidQuestionSpec", err)
			}
		})
	}
}

func TestSurveyServiceUpdate(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(intPtr(5)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Title-only update keeps the question list.
	updated, err := surveys.Update(ctx, created.ID, &model.UpdateSurveyRequest{Title: "Renamed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Update() title = %q, want %q", updated.Title, "Renamed")
	}
	if len(updated.Questions) != 1 || updated.Questions[0].ID != created.Questions[0].ID {
		t.Error("Update() with title only must not touch questions")
	}

	// Question update replaces the list wholesale.
	updated, err = surveys.Update(ctx, created.ID, &model.UpdateSurveyRequest{
		Questions: []model.QuestionRequest{
			{Text: "Pick one", Type: "MULTIPLE_CHOICE", Spec: &model.QuestionSpec{Choices: []string{"A", "B"}}},
			{Text: "Rate it", Type: "LIKERT", Spec: &model.QuestionSpec{Min: intPtr(1), Max: intPtr(5)}},
		},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Questions) != 2 {
		t.Fatalf("Update() question count = %d, want 2", len(updated.Questions))
	}
	if updated.Questions[0].ID == created.Questions[0].ID {
		t.Error("Update() reused an old question id after wholesale replace")
	}
	if updated.Title != "Renamed" {
		t.Errorf("Update() title = %q, want %q", updated.Title, "Renamed")
	}
}

func TestSurveyServiceUpdateRejections(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(nil))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := surveys.Update(ctx, created.ID, &model.UpdateSurveyRequest{}); err != ErrNoFieldsProvided {
		t.Errorf("Update() with no fields error = %v, want ErrNoFieldsProvided", err)
	}

	if _, err := surveys.Update(ctx, created.ID, &model.UpdateSurveyRequest{
		Questions: []model.QuestionRequest{},
	}); err != ErrEmptyQuestions {
		t.Errorf("Update() with empty question list error = %v, want ErrEmptyQuestions", err)
	}

	if _, err := surveys.Update(ctx, uuid.New(), &model.UpdateSurveyRequest{Title: "x"}); err != ErrSurveyNotFound {
		t.Errorf("Update() with unknown id error = %v, want ErrSurveyNotFound", err)
	}

	// Rejected update must not have been persisted.
	current, err := surveys.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(current.Questions) != 1 {
		t.Errorf("rejected update was persisted: question count = %d, want 1", len(current.Questions))
	}
}

func TestSurveyServiceDelete(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(nil))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := surveys.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("Delete() returned survey %s, want %s", deleted.ID, created.ID)
	}

	if _, err := surveys.Delete(ctx, created.ID); err != ErrSurveyNotFound {
		t.Errorf("Delete() twice error = %v, want ErrSurveyNotFound", err)
	}
	if _, err := surveys.GetByToken(ctx, created.Token); err != ErrSurveyNotFound {
		t.Errorf("GetByToken() after delete error = %v, want ErrSurveyNotFound", err)
	}
}

func TestSurveyServiceGetByTokenIsIdempotent(t *testing.T) {
	surveys, _, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(intPtr(5)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, err := surveys.GetByToken(ctx, created.Token)
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}
	second, err := surveys.GetByToken(ctx, created.Token)
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}

	if first.ID != second.ID || first.Title != second.Title || len(first.Questions) != len(second.Questions) {
		t.Error("GetByToken() returned structurally different surveys for the same token")
	}
	for i := range first.Questions {
		if first.Questions[i].ID != second.Questions[i].ID {
			t.Error("GetByToken() question order or ids differ between calls")
		}
	}
}

// ─── ResponseService tests ──────────────────────────────────────────────────

func TestSubmitRejectsMissingTokenAndAnswers(t *testing.T) {
	_, responses, store := newTestServices(t)
	ctx := context.Background()

	if _, err := responses.Submit(ctx, "", &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{{QuestionID: uuid.NewString(), Value: "x"}},
	}); err != ErrMissingToken {
		t.Errorf("Submit() without token error = %v, want ErrMissingToken", err)
	}

	if _, err := responses.Submit(ctx, "sometoken", &model.SubmitResponseRequest{}); err != ErrMissingAnswers {
		t.Errorf("Submit() without answers error = %v, want ErrMissingAnswers", err)
	}

	if store.count() != 0 {
		t.Error("rejected submissions must not persist responses")
	}
}

func TestSubmitRejectsUnknownSurvey(t *testing.T) {
	_, responses, _ := newTestServices(t)

	_, err := responses.Submit(context.Background(), "no-such-token", &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{{QuestionID: uuid.NewString(), Value: "x"}},
	})
	if err != ErrSurveyNotFound {
		t.Errorf("Submit() error = %v, want ErrSurveyNotFound", err)
	}
}

func TestSubmitRejectsAnswerCountMismatch(t *testing.T) {
	surveys, responses, store := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(nil))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Too many answers; the per-answer checks must never run, so even an
	// answer with a bogus question id only yields the count error.
	_, err = responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{
			{QuestionID: created.Questions[0].ID.String(), Value: "ok"},
			{QuestionID: "not-even-a-uuid", Value: "ok"},
		},
	})
	if err != ErrAnswerCountMismatch {
		t.Errorf("Submit() error = %v, want ErrAnswerCountMismatch", err)
	}
	if store.count() != 0 {
		t.Error("mismatched submission persisted a response")
	}
}

func TestSubmitRejectsInvalidQuestionID(t *testing.T) {
	surveys, responses, store := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(nil))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, bogus := range []string{uuid.NewString(), "garbage-id"} {
		_, err = responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
			Answers: []model.SubmitAnswerRequest{{QuestionID: bogus, Value: "hello"}},
		})
		var invalid *InvalidQuestionError
		if err == nil || !errors.As(err, &invalid) {
			t.Fatalf("Submit() error = %v, want InvalidQuestionError", err)
		}
		if want := "Invalid question ID: " + bogus; err.Error() != want {
			t.Errorf("Submit() error = %q, want %q", err.Error(), want)
		}
	}
	if store.count() != 0 {
		t.Error("invalid-reference submission persisted a response")
	}
}

func TestSubmitShortCircuitsOnFirstFailingAnswer(t *testing.T) {
	surveys, responses, store := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, &model.CreateSurveyRequest{
		Title: "Two Questions",
		Questions: []model.QuestionRequest{
			{Text: "Short one", Type: "TEXTBOX", Spec: &model.QuestionSpec{MaxLength: intPtr(5)}},
			{Text: "Pick one", Type: "MULTIPLE_CHOICE", Spec: &model.QuestionSpec{Choices: []string{"A"}}},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// First answer fails; the second is also invalid, but the violation
	// reported must be the first one in submission order.
	_, err = responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{
			{QuestionID: created.Questions[0].ID.String(), Value: "way too long"},
			{QuestionID: created.Questions[1].ID.String(), Value: "Z"},
		},
	})
	var violation *ConstraintViolation
	if err == nil || !errors.As(err, &violation) {
		t.Fatalf("Submit() error = %v, want ConstraintViolation", err)
	}
	if violation.QuestionID != created.Questions[0].ID {
		t.Errorf("Submit() reported question %s, want first failing %s", violation.QuestionID, created.Questions[0].ID)
	}
	if !strings.Contains(err.Error(), "exceeds maximum length of 5") {
		t.Errorf("Submit() error = %q, want it to contain the length bound", err.Error())
	}
	if store.count() != 0 {
		t.Error("failed submission persisted a response")
	}
}

func TestSubmitAcceptsAndPreservesOrder(t *testing.T) {
	surveys, responses, store := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, &model.CreateSurveyRequest{
		Title: "Full Survey",
		Questions: []model.QuestionRequest{
			{Text: "Any feedback?", Type: "TEXTBOX", Spec: &model.QuestionSpec{MaxLength: intPtr(5)}},
			{Text: "Favorite color?", Type: "MULTIPLE_CHOICE", Spec: &model.QuestionSpec{Choices: []string{"Red", "Blue"}}},
			{Text: "Satisfaction?", Type: "LIKERT", Spec: &model.QuestionSpec{Min: intPtr(1), Max: intPtr(5)}},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{
			{QuestionID: created.Questions[0].ID.String(), Value: "hi"},
			{QuestionID: created.Questions[1].ID.String(), Value: "Blue"},
			{QuestionID: created.Questions[2].ID.String(), Value: "3"},
		},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if resp.SurveyID != created.ID {
		t.Errorf("Submit() surveyId = %s, want %s", resp.SurveyID, created.ID)
	}
	if len(resp.Answers) != len(created.Questions) {
		t.Fatalf("Submit() answer count = %d, want %d", len(resp.Answers), len(created.Questions))
	}
	for i, a := range resp.Answers {
		if a.QuestionID != created.Questions[i].ID {
			t.Errorf("Submit() answer %d references %s, want submission order preserved", i, a.QuestionID)
		}
	}
	if resp.Answers[0].Value != "hi" || resp.Answers[1].Value != "Blue" || resp.Answers[2].Value != "3" {
		t.Error("Submit() altered answer values")
	}
	if store.count() != 1 {
		t.Errorf("Submit() persisted %d responses, want 1", store.count())
	}
}

func TestSubmitLikertBounds(t *testing.T) {
	surveys, responses, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, &model.CreateSurveyRequest{
		Title: "Scale",
		Questions: []model.QuestionRequest{
			{Text: "Rate it", Type: "LIKERT", Spec: &model.QuestionSpec{Min: intPtr(1), Max: intPtr(5)}},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{{QuestionID: created.Questions[0].ID.String(), Value: "10"}},
	})
	if err == nil || !strings.Contains(err.Error(), "is out of range") {
		t.Errorf("Submit(\"10\") error = %v, want out-of-range violation", err)
	}

	if _, err := responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
		Answers: []model.SubmitAnswerRequest{{QuestionID: created.Questions[0].ID.String(), Value: "3"}},
	}); err != nil {
		t.Errorf("Submit(\"3\") error = %v, want accepted", err)
	}
}

func TestListBySurvey(t *testing.T) {
	surveys, responses, _ := newTestServices(t)
	ctx := context.Background()

	created, err := surveys.Create(ctx, textboxSurveyReq(nil))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := responses.ListBySurvey(ctx, uuid.New()); err != ErrSurveyNotFound {
		t.Errorf("ListBySurvey() unknown id error = %v, want ErrSurveyNotFound", err)
	}

	list, err := responses.ListBySurvey(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListBySurvey() error = %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("ListBySurvey() = %v, want empty non-nil slice", list)
	}

	for _, value := range []string{"one", "two"} {
		if _, err := responses.Submit(ctx, created.Token, &model.SubmitResponseRequest{
			Answers: []model.SubmitAnswerRequest{{QuestionID: created.Questions[0].ID.String(), Value: value}},
		}); err != nil {
			t.Fatalf("Submit(%q) error = %v", value, err)
		}
	}

	list, err = responses.ListBySurvey(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListBySurvey() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListBySurvey() count = %d, want 2", len(list))
	}
}
