package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/papergen/papergen-backend/internal/config"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/pdf"
	"github.com/papergen/papergen-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrPaperNotFound is returned when a paper is missing or owned by someone else.
var ErrPaperNotFound = errors.New("paper not found")

// PaperService generates, persists and renders exam papers.
type PaperService struct {
	cfg       *config.Config
	paperRepo *repository.PaperRepository
	selector  *Selector
	media     *MediaService
	engine    *pdf.Engine
	log       zerolog.Logger
}

// NewPaperService creates a new PaperService.
func NewPaperService(cfg *config.Config, paperRepo *repository.PaperRepository, selector *Selector, media *MediaService, engine *pdf.Engine, log zerolog.Logger) *PaperService {
	return &PaperService{
		cfg:       cfg,
		paperRepo: paperRepo,
		selector:  selector,
		media:     media,
		engine:    engine,
		log:       log.With().Str("component", "paper_service").Logger(),
	}
}

func typeRequests(req *model.GeneratePaperRequest) []TypeRequest {
	return []TypeRequest{
		{Type: model.QuestionTypeMCQ, Count: req.MCQCount, Marks: req.MCQMarks},
		{Type: model.QuestionTypeShort, Count: req.ShortCount, Marks: req.ShortMarks},
		{Type: model.QuestionTypeLong, Count: req.LongCount, Marks: req.LongMarks},
	}
}

func selectionParams(req *model.GeneratePaperRequest) SelectionParams {
	params := SelectionParams{
		BoardID:    req.BoardID,
		Class:      req.Class,
		SubjectIDs: req.SubjectIDs,
		ChapterIDs: req.ChapterIDs,
		Difficulty: req.Difficulty,
	}
	if req.UseDifficultyDistribution {
		params.Distribution = req.DifficultyDistribution
	}
	return params
}

// Generate selects questions, persists the paper with its question links,
// and returns the paper plus the selected entries for rendering.
func (s *PaperService) Generate(ctx context.Context, req *model.GeneratePaperRequest, ownerID int) (*model.Paper, []model.PaperEntry, error) {
	entries, err := s.selector.SelectAll(ctx, selectionParams(req), typeRequests(req))
	if err != nil {
		return nil, nil, err
	}
	s.checkTotals(req, entries)

	paper := paperFromRequest(req, ownerID)
	if err := s.paperRepo.Create(ctx, paper); err != nil {
		return nil, nil, fmt.Errorf("create paper: %w", err)
	}
	if err := s.paperRepo.AddQuestions(ctx, paper.ID, entries); err != nil {
		return nil, nil, fmt.Errorf("link questions: %w", err)
	}

	s.log.Info().Int("paper_id", paper.ID).Int("questions", len(entries)).Msg("paper generated")
	return paper, entries, nil
}

// GenerateEphemeral selects questions without persisting anything. Each
// call re-runs selection, so repeated calls may produce different papers.
func (s *PaperService) GenerateEphemeral(ctx context.Context, req *model.GeneratePaperRequest, ownerID int) (*model.Paper, []model.PaperEntry, error) {
	entries, err := s.selector.SelectAll(ctx, selectionParams(req), typeRequests(req))
	if err != nil {
		return nil, nil, err
	}
	s.checkTotals(req, entries)
	return paperFromRequest(req, ownerID), entries, nil
}

// Render lays the paper out as a complete PDF. The document is fully
// rendered into the returned buffer so callers never stream a partial file.
func (s *PaperService) Render(paper *model.Paper, entries []model.PaperEntry, includeAnswers bool) (*bytes.Buffer, error) {
	doc := s.buildDocument(paper, entries, includeAnswers)

	canvas := pdf.NewPDFCanvas(s.cfg.FontDir)
	s.engine.Render(canvas, doc)

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return nil, fmt.Errorf("render paper: %w", err)
	}
	return &buf, nil
}

// Download reloads a persisted paper and re-renders it. The stored question
// links are used as-is, so repeated downloads produce the same paper.
func (s *PaperService) Download(ctx context.Context, paperID, ownerID int, includeAnswers bool) (*bytes.Buffer, string, error) {
	paper, err := s.Get(ctx, paperID, ownerID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.paperRepo.GetEntries(ctx, paperID)
	if err != nil {
		return nil, "", fmt.Errorf("load questions: %w", err)
	}

	buf, err := s.Render(paper, entries, includeAnswers)
	if err != nil {
		return nil, "", err
	}
	return buf, Filename(includeAnswers), nil
}

// Filename is the suggested download name for a rendered paper.
func Filename(includeAnswers bool) string {
	if includeAnswers {
		return "question_paper_with_answers.pdf"
	}
	return "question_paper.pdf"
}

// Get retrieves an owned paper.
func (s *PaperService) Get(ctx context.Context, id, ownerID int) (*model.Paper, error) {
	paper, err := s.paperRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get paper: %w", err)
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}
	return paper, nil
}

// List retrieves the owner's papers, newest first.
func (s *PaperService) List(ctx context.Context, ownerID, limit, offset int) ([]model.Paper, int, error) {
	return s.paperRepo.ListByOwner(ctx, ownerID, limit, offset)
}

// Update overwrites stored paper metadata.
func (s *PaperService) Update(ctx context.Context, id, ownerID int, req *model.UpdatePaperRequest) (*model.Paper, error) {
	paper, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.SchoolName != nil {
		paper.SchoolName = req.SchoolName
	}
	if req.SchoolLogo != nil {
		paper.SchoolLogo = req.SchoolLogo
	}
	if req.ExamName != nil {
		paper.ExamName = req.ExamName
	}
	if req.Duration != nil {
		paper.Duration = req.Duration
	}
	if req.Language != nil {
		paper.Language = *req.Language
	}

	if err := s.paperRepo.Update(ctx, paper); err != nil {
		return nil, fmt.Errorf("update paper: %w", err)
	}
	return paper, nil
}

// Delete removes a paper and its question links.
func (s *PaperService) Delete(ctx context.Context, id, ownerID int) error {
	ok, err := s.paperRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete paper: %w", err)
	}
	if !ok {
		return ErrPaperNotFound
	}
	return nil
}

// checkTotals compares the declared total against the sum of stamped marks.
// Mismatches are logged, never rejected: a short bank legitimately yields a
// lighter paper.
func (s *PaperService) checkTotals(req *model.GeneratePaperRequest, entries []model.PaperEntry) {
	if !s.cfg.ValidateTotalMarks || req.TotalMarks == 0 {
		return
	}
	var sum float64
	for _, e := range entries {
		sum += e.Marks
	}
	if int(sum) != req.TotalMarks {
		s.log.Warn().
			Int("declared", req.TotalMarks).
			Float64("actual", sum).
			Msg("paper total marks mismatch")
	}
}

func paperFromRequest(req *model.GeneratePaperRequest, ownerID int) *model.Paper {
	paper := &model.Paper{
		BoardName:    req.Board,
		Class:        req.Class,
		Language:     req.Language,
		SubjectNames: req.Subjects,
		ChapterNames: req.Chapters,
		Difficulty:   req.Difficulty,
		MCQCount:     req.MCQCount,
		ShortCount:   req.ShortCount,
		LongCount:    req.LongCount,
		MCQMarks:     req.MCQMarks,
		ShortMarks:   req.ShortMarks,
		LongMarks:    req.LongMarks,
		TotalMarks:   req.TotalMarks,
		CreatedBy:    ownerID,
	}
	if req.UseDifficultyDistribution && req.DifficultyDistribution != nil {
		paper.DifficultyDistribution = req.DifficultyDistribution
	}
	if req.SchoolName != "" {
		paper.SchoolName = &req.SchoolName
	}
	if req.SchoolLogo != "" {
		paper.SchoolLogo = &req.SchoolLogo
	}
	if req.ExamName != "" {
		paper.ExamName = &req.ExamName
	}
	if req.Duration != "" {
		paper.Duration = &req.Duration
	}
	return paper
}

// buildDocument partitions the entries into fixed-order sections and maps
// stored image URLs to disk paths for the layout engine.
func (s *PaperService) buildDocument(paper *model.Paper, entries []model.PaperEntry, includeAnswers bool) *pdf.Document {
	doc := &pdf.Document{
		ExamName:       deref(paper.ExamName),
		BoardName:      paper.BoardName,
		Class:          paper.Class,
		Subjects:       paper.SubjectNames,
		Chapters:       paper.ChapterNames,
		Difficulty:     paper.Difficulty,
		Duration:       deref(paper.Duration),
		TotalMarks:     paper.TotalMarks,
		Language:       paper.Language,
		IncludeAnswers: includeAnswers,
		SchoolName:     deref(paper.SchoolName),
	}
	if paper.SchoolLogo != nil {
		doc.SchoolLogoPath = s.imagePath(*paper.SchoolLogo)
	}

	sections := []struct {
		qType       model.QuestionType
		title       string
		answerTitle string
		marks       float64
		unit        string
	}{
		{model.QuestionTypeMCQ, "Section A: Multiple Choice Questions", "Section A Answers:", paper.MCQMarks, "Mark"},
		{model.QuestionTypeShort, "Section B: Short Answer Questions", "Section B Answers:", paper.ShortMarks, "Marks"},
		{model.QuestionTypeLong, "Section C: Long Answer Questions", "Section C Answers:", paper.LongMarks, "Marks"},
	}

	for _, sec := range sections {
		out := pdf.Section{
			Title:       fmt.Sprintf("%s (%g %s Each)", sec.title, sec.marks, sec.unit),
			AnswerTitle: sec.answerTitle,
			Marks:       sec.marks,
			MCQ:         sec.qType == model.QuestionTypeMCQ,
		}
		for _, e := range entries {
			if e.Type != sec.qType {
				continue
			}
			out.Entries = append(out.Entries, s.buildEntry(e))
		}
		doc.Sections = append(doc.Sections, out)
	}
	return doc
}

func (s *PaperService) buildEntry(e model.PaperEntry) pdf.Entry {
	entry := pdf.Entry{
		Text:    e.Question.Question,
		Marks:   e.Marks,
		Options: e.Question.Options,
		Answer:  e.Question.Answer,
	}
	if e.Question.QuestionImage != nil {
		entry.ImagePath = s.imagePath(*e.Question.QuestionImage)
	}
	if len(e.Question.OptionImages) > 0 {
		entry.OptionImages = make([]string, len(e.Question.OptionImages))
		for i, img := range e.Question.OptionImages {
			if img != nil {
				entry.OptionImages[i] = s.imagePath(*img)
			}
		}
	}
	return entry
}

// imagePath resolves a stored upload URL to its disk location. Unresolvable
// paths come back empty and the engine simply skips the image.
func (s *PaperService) imagePath(urlPath string) string {
	path, err := s.media.ResolvePath(urlPath)
	if err != nil {
		s.log.Warn().Err(err).Str("path", urlPath).Msg("image path not resolvable")
		return ""
	}
	return path
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
