package service

import (
	"context"
	"errors"
	"testing"

	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
	"github.com/rs/zerolog"
)

// fakeQuestionStore holds one question bank keyed by id and enforces
// created_by scoping the way the SQL layer does.
type fakeQuestionStore struct {
	questions map[int]*model.Question
	updated   bool
}

func newFakeQuestionStore(qs ...*model.Question) *fakeQuestionStore {
	store := &fakeQuestionStore{questions: map[int]*model.Question{}}
	for _, q := range qs {
		store.questions[q.ID] = q
	}
	return store
}

func (f *fakeQuestionStore) Create(ctx context.Context, q *model.Question) error {
	q.ID = len(f.questions) + 1
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionStore) CreateBatch(ctx context.Context, questions []model.Question) (int, error) {
	return len(questions), nil
}

func (f *fakeQuestionStore) GetOwned(ctx context.Context, id, ownerID int) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok || q.CreatedBy != ownerID {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuestionStore) ListByOwner(ctx context.Context, ownerID int, _ repository.ListFilter, _, _ int) ([]model.Question, int, error) {
	var out []model.Question
	for _, q := range f.questions {
		if q.CreatedBy == ownerID {
			out = append(out, *q)
		}
	}
	return out, len(out), nil
}

func (f *fakeQuestionStore) DistinctSubjectIDs(ctx context.Context, ownerID int) ([]int, error) {
	return nil, nil
}

func (f *fakeQuestionStore) DistinctChapterIDs(ctx context.Context, ownerID, subjectID int) ([]int, error) {
	return nil, nil
}

func (f *fakeQuestionStore) Update(ctx context.Context, q *model.Question) error {
	stored, ok := f.questions[q.ID]
	if !ok || stored.CreatedBy != q.CreatedBy {
		return nil
	}
	f.questions[q.ID] = q
	f.updated = true
	return nil
}

func (f *fakeQuestionStore) SetActive(ctx context.Context, id, ownerID int, active bool) (bool, error) {
	q, ok := f.questions[id]
	if !ok || q.CreatedBy != ownerID {
		return false, nil
	}
	q.IsActive = active
	return true, nil
}

func (f *fakeQuestionStore) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	q, ok := f.questions[id]
	if !ok || q.CreatedBy != ownerID {
		return false, nil
	}
	delete(f.questions, id)
	return true, nil
}

func bankQuestion(id, ownerID int) *model.Question {
	return &model.Question{
		ID:           id,
		BoardID:      1,
		Class:        10,
		SubjectID:    2,
		ChapterID:    3,
		QuestionType: model.QuestionTypeShort,
		Question:     "Define refraction.",
		Answer:       "Bending of light.",
		Marks:        3,
		Difficulty:   model.DifficultyEasy,
		CreatedBy:    ownerID,
	}
}

func updateRequest() *model.CreateQuestionRequest {
	return &model.CreateQuestionRequest{
		BoardID:      1,
		Class:        10,
		SubjectID:    2,
		ChapterID:    3,
		QuestionType: "SHORT",
		Question:     "Define total internal reflection.",
		Answer:       "Reflection past the critical angle.",
		Marks:        3,
		Difficulty:   "medium",
	}
}

func TestUpdateRejectsForeignQuestion(t *testing.T) {
	store := newFakeQuestionStore(bankQuestion(1, 1))
	svc := NewQuestionService(store, zerolog.Nop())

	_, err := svc.Update(context.Background(), 1, 2, updateRequest(), QuestionImages{})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("cross-owner update err = %v, want ErrQuestionNotFound", err)
	}
	if store.updated {
		t.Error("cross-owner update reached the store")
	}
	if got := store.questions[1].Question; got != "Define refraction." {
		t.Errorf("stored question changed to %q", got)
	}
}

func TestUpdateAppliesForOwner(t *testing.T) {
	store := newFakeQuestionStore(bankQuestion(1, 1))
	svc := NewQuestionService(store, zerolog.Nop())

	q, err := svc.Update(context.Background(), 1, 1, updateRequest(), QuestionImages{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if q.Question != "Define total internal reflection." || q.Difficulty != model.DifficultyMedium {
		t.Errorf("update not applied: %+v", q)
	}
	if !store.updated {
		t.Error("owner update did not reach the store")
	}
}

func TestSetActiveRejectsForeignQuestion(t *testing.T) {
	store := newFakeQuestionStore(bankQuestion(1, 1))
	svc := NewQuestionService(store, zerolog.Nop())

	err := svc.SetActive(context.Background(), 1, 2, true)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("cross-owner toggle err = %v, want ErrQuestionNotFound", err)
	}
	if store.questions[1].IsActive {
		t.Error("cross-owner toggle activated the question")
	}
}

func TestSetActiveAppliesForOwner(t *testing.T) {
	store := newFakeQuestionStore(bankQuestion(1, 1))
	svc := NewQuestionService(store, zerolog.Nop())

	if err := svc.SetActive(context.Background(), 1, 1, true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if !store.questions[1].IsActive {
		t.Error("question not activated")
	}
}
