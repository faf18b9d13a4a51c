package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
)

type findCall struct {
	filter    repository.QuestionFilter
	limit     int
	randomize bool
}

// fakeFinder serves canned questions and records every Find call. It is
// safe for concurrent use because SelectAll fans out per type.
type fakeFinder struct {
	mu        sync.Mutex
	calls     []findCall
	available int // questions returned per call, capped at limit
	err       error
}

func (f *fakeFinder) Find(_ context.Context, filter repository.QuestionFilter, limit int, randomize bool) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, findCall{filter: filter, limit: limit, randomize: randomize})
	if f.err != nil {
		return nil, f.err
	}
	n := f.available
	if limit > 0 && n > limit {
		n = limit
	}
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			ID:           len(f.calls)*100 + i,
			QuestionType: filter.Type,
			Difficulty:   filter.Difficulty,
			Question:     fmt.Sprintf("q%d", i),
		}
	}
	return qs, nil
}

func TestTierQuotas(t *testing.T) {
	tests := []struct {
		count               int
		easy, medium, hard  int
		wantE, wantM, wantH int
	}{
		{10, 20, 30, 50, 2, 3, 5},
		{10, 33, 33, 34, 3, 3, 4},
		{7, 34, 33, 33, 2, 2, 3},
		{5, 40, 40, 20, 2, 2, 1},
		{1, 33, 33, 34, 0, 0, 1},
	}
	for _, tt := range tests {
		dist := &model.DifficultyDistribution{Easy: tt.easy, Medium: tt.medium, Hard: tt.hard}
		e, m, h := tierQuotas(tt.count, dist)
		if e != tt.wantE || m != tt.wantM || h != tt.wantH {
			t.Errorf("tierQuotas(%d, %d/%d/%d) = %d/%d/%d, want %d/%d/%d",
				tt.count, tt.easy, tt.medium, tt.hard, e, m, h, tt.wantE, tt.wantM, tt.wantH)
		}
	}
}

func TestSelectDistributionMode(t *testing.T) {
	finder := &fakeFinder{available: 100}
	sel := NewSelector(finder)

	params := SelectionParams{
		BoardID:      1,
		Class:        10,
		SubjectIDs:   []int{3},
		Difficulty:   "all",
		Distribution: &model.DifficultyDistribution{Easy: 20, Medium: 30, Hard: 50},
	}
	qs, err := sel.Select(context.Background(), params, TypeRequest{Type: model.QuestionTypeMCQ, Count: 10})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("got %d questions, want 10", len(qs))
	}

	if len(finder.calls) != 3 {
		t.Fatalf("got %d Find calls, want 3", len(finder.calls))
	}
	wantTiers := []struct {
		difficulty model.Difficulty
		limit      int
	}{
		{model.DifficultyEasy, 2},
		{model.DifficultyMedium, 3},
		{model.DifficultyHard, 5},
	}
	for i, want := range wantTiers {
		call := finder.calls[i]
		if call.filter.Difficulty != want.difficulty || call.limit != want.limit {
			t.Errorf("call %d: difficulty=%s limit=%d, want %s/%d",
				i, call.filter.Difficulty, call.limit, want.difficulty, want.limit)
		}
		if !call.randomize {
			t.Errorf("call %d: randomize=false, want true", i)
		}
		if !call.filter.ActiveOnly {
			t.Errorf("call %d: ActiveOnly=false, want true", i)
		}
	}

	// Tier order in the result: easy block, then medium, then hard.
	for i, q := range qs {
		var want model.Difficulty
		switch {
		case i < 2:
			want = model.DifficultyEasy
		case i < 5:
			want = model.DifficultyMedium
		default:
			want = model.DifficultyHard
		}
		if q.Difficulty != want {
			t.Errorf("question %d: difficulty=%s, want %s", i, q.Difficulty, want)
		}
	}
}

func TestSelectSkipsEmptyTiers(t *testing.T) {
	finder := &fakeFinder{available: 100}
	sel := NewSelector(finder)

	params := SelectionParams{
		Difficulty:   "all",
		Distribution: &model.DifficultyDistribution{Easy: 0, Medium: 50, Hard: 50},
	}
	if _, err := sel.Select(context.Background(), params, TypeRequest{Type: model.QuestionTypeShort, Count: 10}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(finder.calls) != 2 {
		t.Fatalf("got %d Find calls, want 2 (easy quota is zero)", len(finder.calls))
	}
	if finder.calls[0].filter.Difficulty != model.DifficultyMedium {
		t.Errorf("first call difficulty=%s, want medium", finder.calls[0].filter.Difficulty)
	}
}

func TestSelectFixedDifficulty(t *testing.T) {
	finder := &fakeFinder{available: 100}
	sel := NewSelector(finder)

	params := SelectionParams{Difficulty: "hard"}
	if _, err := sel.Select(context.Background(), params, TypeRequest{Type: model.QuestionTypeLong, Count: 4}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(finder.calls) != 1 {
		t.Fatalf("got %d Find calls, want 1", len(finder.calls))
	}
	call := finder.calls[0]
	if call.filter.Difficulty != model.DifficultyHard {
		t.Errorf("difficulty=%s, want hard", call.filter.Difficulty)
	}
	if call.limit != 4 {
		t.Errorf("limit=%d, want 4", call.limit)
	}
	if call.randomize {
		t.Error("fixed difficulty must not randomize")
	}
}

func TestSelectAllWithoutDistribution(t *testing.T) {
	finder := &fakeFinder{available: 100}
	sel := NewSelector(finder)

	// Difficulty "all" without a distribution takes one unfiltered pass.
	params := SelectionParams{Difficulty: "all"}
	if _, err := sel.Select(context.Background(), params, TypeRequest{Type: model.QuestionTypeMCQ, Count: 5}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(finder.calls) != 1 {
		t.Fatalf("got %d Find calls, want 1", len(finder.calls))
	}
	if finder.calls[0].filter.Difficulty != "" {
		t.Errorf("difficulty=%q, want unset", finder.calls[0].filter.Difficulty)
	}
}

func TestSelectShortfallIsNotAnError(t *testing.T) {
	finder := &fakeFinder{available: 2}
	sel := NewSelector(finder)

	qs, err := sel.Select(context.Background(), SelectionParams{Difficulty: "easy"}, TypeRequest{Type: model.QuestionTypeMCQ, Count: 10})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
}

func TestSelectZeroCount(t *testing.T) {
	finder := &fakeFinder{available: 10}
	sel := NewSelector(finder)

	qs, err := sel.Select(context.Background(), SelectionParams{Difficulty: "easy"}, TypeRequest{Type: model.QuestionTypeMCQ, Count: 0})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(qs) != 0 || len(finder.calls) != 0 {
		t.Fatalf("zero count must not query: got %d questions, %d calls", len(qs), len(finder.calls))
	}
}

func TestSelectAllStampsMarksInRequestOrder(t *testing.T) {
	finder := &fakeFinder{available: 100}
	sel := NewSelector(finder)

	reqs := []TypeRequest{
		{Type: model.QuestionTypeMCQ, Count: 3, Marks: 1},
		{Type: model.QuestionTypeShort, Count: 2, Marks: 3},
		{Type: model.QuestionTypeLong, Count: 1, Marks: 5},
	}
	entries, err := sel.SelectAll(context.Background(), SelectionParams{Difficulty: "easy"}, reqs)
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("got %d entries, want 6", len(entries))
	}
	want := []struct {
		qtype model.QuestionType
		marks float64
	}{
		{model.QuestionTypeMCQ, 1}, {model.QuestionTypeMCQ, 1}, {model.QuestionTypeMCQ, 1},
		{model.QuestionTypeShort, 3}, {model.QuestionTypeShort, 3},
		{model.QuestionTypeLong, 5},
	}
	for i, e := range entries {
		if e.Type != want[i].qtype || e.Marks != want[i].marks {
			t.Errorf("entry %d: type=%s marks=%g, want %s/%g", i, e.Type, e.Marks, want[i].qtype, want[i].marks)
		}
	}
}

func TestSelectAllPropagatesError(t *testing.T) {
	finder := &fakeFinder{err: errors.New("db down")}
	sel := NewSelector(finder)

	_, err := sel.SelectAll(context.Background(), SelectionParams{Difficulty: "easy"}, []TypeRequest{
		{Type: model.QuestionTypeMCQ, Count: 3, Marks: 1},
	})
	if err == nil {
		t.Fatal("want error, got nil")
	}
}
