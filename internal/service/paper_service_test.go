package service

import (
	"path/filepath"
	"testing"

	"github.com/papergen/papergen-backend/internal/config"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

func testPaperService(t *testing.T) *PaperService {
	t.Helper()
	cfg := &config.Config{UploadDir: t.TempDir()}
	return NewPaperService(cfg, nil, nil, NewMediaService(cfg), nil, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestBuildDocumentPartitionsByType(t *testing.T) {
	s := testPaperService(t)

	paper := &model.Paper{
		BoardName:  "CBSE",
		Class:      10,
		MCQMarks:   1,
		ShortMarks: 3,
		LongMarks:  5,
		TotalMarks: 40,
	}
	entries := []model.PaperEntry{
		{Type: model.QuestionTypeShort, Marks: 3, Question: model.Question{Question: "s1"}},
		{Type: model.QuestionTypeMCQ, Marks: 1, Question: model.Question{Question: "m1", Options: []string{"a", "b"}}},
		{Type: model.QuestionTypeLong, Marks: 5, Question: model.Question{Question: "l1"}},
		{Type: model.QuestionTypeMCQ, Marks: 1, Question: model.Question{Question: "m2"}},
	}

	doc := s.buildDocument(paper, entries, false)

	if len(doc.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(doc.Sections))
	}
	wantTitles := []string{
		"Section A: Multiple Choice Questions (1 Mark Each)",
		"Section B: Short Answer Questions (3 Marks Each)",
		"Section C: Long Answer Questions (5 Marks Each)",
	}
	wantCounts := []int{2, 1, 1}
	for i, sec := range doc.Sections {
		if sec.Title != wantTitles[i] {
			t.Errorf("section %d title = %q, want %q", i, sec.Title, wantTitles[i])
		}
		if len(sec.Entries) != wantCounts[i] {
			t.Errorf("section %d has %d entries, want %d", i, len(sec.Entries), wantCounts[i])
		}
	}
	if !doc.Sections[0].MCQ || doc.Sections[1].MCQ || doc.Sections[2].MCQ {
		t.Error("only section A may carry the MCQ flag")
	}
	// Entry order within a section follows selection order.
	if doc.Sections[0].Entries[0].Text != "m1" || doc.Sections[0].Entries[1].Text != "m2" {
		t.Errorf("MCQ entries out of order: %q, %q",
			doc.Sections[0].Entries[0].Text, doc.Sections[0].Entries[1].Text)
	}
}

func TestBuildDocumentResolvesImagePaths(t *testing.T) {
	s := testPaperService(t)

	paper := &model.Paper{SchoolLogo: strPtr("/uploads/logo.png")}
	entries := []model.PaperEntry{
		{Type: model.QuestionTypeMCQ, Question: model.Question{
			Question:      "m1",
			QuestionImage: strPtr("/uploads/q.png"),
			Options:       []string{"a", "b"},
			OptionImages:  []*string{strPtr("/uploads/opt.png"), nil},
		}},
	}

	doc := s.buildDocument(paper, entries, false)

	if want := filepath.Join(s.cfg.UploadDir, "logo.png"); doc.SchoolLogoPath != want {
		t.Errorf("logo path = %q, want %q", doc.SchoolLogoPath, want)
	}
	entry := doc.Sections[0].Entries[0]
	if want := filepath.Join(s.cfg.UploadDir, "q.png"); entry.ImagePath != want {
		t.Errorf("question image path = %q, want %q", entry.ImagePath, want)
	}
	if want := filepath.Join(s.cfg.UploadDir, "opt.png"); entry.OptionImages[0] != want {
		t.Errorf("option image path = %q, want %q", entry.OptionImages[0], want)
	}
	if entry.OptionImages[1] != "" {
		t.Errorf("missing option image must stay empty, got %q", entry.OptionImages[1])
	}
}

func TestBuildDocumentRejectsTraversalPaths(t *testing.T) {
	s := testPaperService(t)

	paper := &model.Paper{SchoolLogo: strPtr("/uploads/../../etc/passwd")}
	doc := s.buildDocument(paper, nil, false)

	if doc.SchoolLogoPath != "" {
		t.Errorf("traversal path resolved to %q, want empty", doc.SchoolLogoPath)
	}
}

func TestPaperFromRequestOptionalFields(t *testing.T) {
	req := &model.GeneratePaperRequest{
		Board:      "CBSE",
		Class:      10,
		Difficulty: "all",
		SchoolName: "Test School",
		// ExamName, SchoolLogo, Duration left empty.
	}
	paper := paperFromRequest(req, 9)

	if paper.SchoolName == nil || *paper.SchoolName != "Test School" {
		t.Errorf("school name = %v, want Test School", paper.SchoolName)
	}
	if paper.ExamName != nil || paper.SchoolLogo != nil || paper.Duration != nil {
		t.Error("empty optional fields must stay nil")
	}
	if paper.CreatedBy != 9 {
		t.Errorf("created_by = %d, want 9", paper.CreatedBy)
	}
}

func TestPaperFromRequestDistributionOnlyWhenEnabled(t *testing.T) {
	dist := &model.DifficultyDistribution{Easy: 20, Medium: 30, Hard: 50}

	req := &model.GeneratePaperRequest{Difficulty: "all", DifficultyDistribution: dist}
	if paper := paperFromRequest(req, 1); paper.DifficultyDistribution != nil {
		t.Error("distribution stored despite toggle off")
	}

	req.UseDifficultyDistribution = true
	if paper := paperFromRequest(req, 1); paper.DifficultyDistribution == nil {
		t.Error("distribution dropped despite toggle on")
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(false); got != "question_paper.pdf" {
		t.Errorf("Filename(false) = %q", got)
	}
	if got := Filename(true); got != "question_paper_with_answers.pdf" {
		t.Errorf("Filename(true) = %q", got)
	}
}
