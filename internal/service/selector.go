package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
)

// QuestionFinder is the part of the question repository the selector needs.
type QuestionFinder interface {
	Find(ctx context.Context, filter repository.QuestionFilter, limit int, randomize bool) ([]model.Question, error)
}

// TypeRequest asks the selector for a number of questions of one type,
// each weighted with the given marks on the paper.
type TypeRequest struct {
	Type  model.QuestionType
	Count int
	Marks float64
}

// SelectionParams scopes the question pool and sets the difficulty policy
// for one paper generation.
type SelectionParams struct {
	BoardID      int
	Class        int
	SubjectIDs   []int
	ChapterIDs   []int
	Difficulty   string // "all", "easy", "medium" or "hard"
	Distribution *model.DifficultyDistribution
}

// Selector picks questions for a paper. With difficulty "all" and a
// distribution it fills per-tier quotas in randomized order; with a fixed
// difficulty it takes bank order without randomization. Shortfalls are not
// errors: the bank may simply have fewer questions than requested.
type Selector struct {
	finder QuestionFinder
}

// NewSelector creates a Selector over the given question source.
func NewSelector(finder QuestionFinder) *Selector {
	return &Selector{finder: finder}
}

// tierQuotas splits count across easy/medium/hard by percentage. Easy and
// medium round down; hard rounds up, so a three-way split favors the hard
// tier with the leftover question.
func tierQuotas(count int, dist *model.DifficultyDistribution) (easy, medium, hard int) {
	easy = int(math.Floor(float64(count) * float64(dist.Easy) / 100))
	medium = int(math.Floor(float64(count) * float64(dist.Medium) / 100))
	hard = int(math.Ceil(float64(count) * float64(dist.Hard) / 100))
	return easy, medium, hard
}

// Select picks questions of one type according to the difficulty policy.
func (s *Selector) Select(ctx context.Context, params SelectionParams, req TypeRequest) ([]model.Question, error) {
	if req.Count <= 0 {
		return nil, nil
	}

	base := repository.QuestionFilter{
		BoardID:    params.BoardID,
		Class:      params.Class,
		SubjectIDs: params.SubjectIDs,
		ChapterIDs: params.ChapterIDs,
		Type:       req.Type,
		ActiveOnly: true,
	}

	if params.Difficulty == "all" && params.Distribution != nil {
		easy, medium, hard := tierQuotas(req.Count, params.Distribution)

		var picked []model.Question
		for _, tier := range []struct {
			difficulty model.Difficulty
			quota      int
		}{
			{model.DifficultyEasy, easy},
			{model.DifficultyMedium, medium},
			{model.DifficultyHard, hard},
		} {
			if tier.quota == 0 {
				continue
			}
			filter := base
			filter.Difficulty = tier.difficulty
			qs, err := s.finder.Find(ctx, filter, tier.quota, true)
			if err != nil {
				return nil, fmt.Errorf("select %s %s: %w", tier.difficulty, req.Type, err)
			}
			picked = append(picked, qs...)
		}
		return picked, nil
	}

	if params.Difficulty != "all" {
		base.Difficulty = model.Difficulty(params.Difficulty)
	}
	qs, err := s.finder.Find(ctx, base, req.Count, false)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", req.Type, err)
	}
	return qs, nil
}

// SelectAll runs the per-type selections concurrently and returns the
// combined entries in request order with per-paper marks stamped on.
func (s *Selector) SelectAll(ctx context.Context, params SelectionParams, reqs []TypeRequest) ([]model.PaperEntry, error) {
	results := make([][]model.Question, len(reqs))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req TypeRequest) {
			defer wg.Done()
			qs, err := s.Select(ctx, params, req)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			results[i] = qs
		}(i, req)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	var entries []model.PaperEntry
	for i, req := range reqs {
		for _, q := range results[i] {
			entries = append(entries, model.PaperEntry{
				Question: q,
				Type:     req.Type,
				Marks:    req.Marks,
			})
		}
	}
	return entries, nil
}
