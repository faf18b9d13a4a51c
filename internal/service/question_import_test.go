package service

import (
	"strings"
	"testing"

	"github.com/papergen/papergen-backend/internal/model"
)

func importRow(overrides map[int]string) []string {
	cells := make([]string, importColumns)
	copy(cells, []string{
		"1", "10", "2", "3", "MCQ", "What is light?",
		"Wave", "Particle", "Both", "Neither",
		"Both", "1", "easy",
	})
	for i, v := range overrides {
		cells[i] = v
	}
	return cells
}

func TestParseImportRow(t *testing.T) {
	row, err := parseImportRow(importRow(nil))
	if err != nil {
		t.Fatalf("parseImportRow: %v", err)
	}
	if row.BoardID != 1 || row.Class != 10 || row.SubjectID != 2 || row.ChapterID != 3 {
		t.Errorf("ids = %d/%d/%d/%d, want 1/10/2/3", row.BoardID, row.Class, row.SubjectID, row.ChapterID)
	}
	if row.QuestionType != "MCQ" || row.Question != "What is light?" || row.Answer != "Both" {
		t.Errorf("unexpected content: %+v", row)
	}
	if row.Option3 != "Both" || row.Option4 != "Neither" {
		t.Errorf("options = %q/%q, want Both/Neither", row.Option3, row.Option4)
	}
}

func TestParseImportRowBlank(t *testing.T) {
	row, err := parseImportRow([]string{"", "", "", "", "", "", "", "", "", "", ""})
	if err != nil {
		t.Fatalf("blank row must not error: %v", err)
	}
	if row != nil {
		t.Fatalf("blank row must be skipped, got %+v", row)
	}
}

func TestParseImportRowNormalizesCase(t *testing.T) {
	row, err := parseImportRow(importRow(map[int]string{colQuestionType: "short", colDifficulty: "HARD"}))
	if err != nil {
		t.Fatalf("parseImportRow: %v", err)
	}
	if row.QuestionType != "SHORT" {
		t.Errorf("type = %q, want SHORT", row.QuestionType)
	}
	if row.Difficulty != "hard" {
		t.Errorf("difficulty = %q, want hard", row.Difficulty)
	}
}

func TestParseImportRowRejectsBadValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[int]string
		wantIn    string
	}{
		{"bad board id", map[int]string{colBoardID: "x"}, "board_id"},
		{"bad class", map[int]string{colClass: ""}, "class"},
		{"bad type", map[int]string{colQuestionType: "ESSAY"}, "question_type"},
		{"bad marks", map[int]string{colMarks: "three"}, "marks"},
	}
	for _, tt := range tests {
		_, err := parseImportRow(importRow(tt.overrides))
		if err == nil {
			t.Errorf("%s: want error, got nil", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantIn) {
			t.Errorf("%s: error %q does not mention %s", tt.name, err, tt.wantIn)
		}
	}
}

func TestRowToQuestionDefaults(t *testing.T) {
	row := model.ImportQuestionRow{
		BoardID: 1, Class: 10, SubjectID: 2, ChapterID: 3,
		QuestionType: "SHORT", Question: "Define refraction.", Answer: "Bending of light.",
	}
	q := rowToQuestion(row, 7)

	if q.Marks != 1 {
		t.Errorf("marks = %d, want default 1", q.Marks)
	}
	if q.Difficulty != model.DifficultyEasy {
		t.Errorf("difficulty = %s, want default easy", q.Difficulty)
	}
	if q.IsActive {
		t.Error("imported questions must start inactive")
	}
	if q.CreatedBy != 7 {
		t.Errorf("created_by = %d, want 7", q.CreatedBy)
	}
	if q.Options != nil {
		t.Errorf("non-MCQ row must not carry options, got %v", q.Options)
	}
}

func TestRowToQuestionMCQOptions(t *testing.T) {
	row := model.ImportQuestionRow{
		BoardID: 1, Class: 10, SubjectID: 2, ChapterID: 3,
		QuestionType: "MCQ", Question: "Pick.", Answer: "A",
		Option1: "a", Option2: "b", Option3: "c", Option4: "d",
		Marks: 2, Difficulty: "medium",
	}
	q := rowToQuestion(row, 1)

	want := []string{"a", "b", "c", "d"}
	if len(q.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(q.Options))
	}
	for i, opt := range q.Options {
		if opt != want[i] {
			t.Errorf("option %d = %q, want %q", i, opt, want[i])
		}
	}
	if q.Marks != 2 || q.Difficulty != model.DifficultyMedium {
		t.Errorf("marks/difficulty = %d/%s, want 2/medium", q.Marks, q.Difficulty)
	}
}
