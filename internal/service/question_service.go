package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Common question errors.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrImportEmpty      = errors.New("import sheet has no data rows")
)

// QuestionImages carries the upload paths saved alongside a question.
// OptionImages is index-aligned with the parsed options.
type QuestionImages struct {
	Question *string
	Options  []*string
	Answer   *string
}

// QuestionStore is the part of the question repository the service needs.
// Mutating lookups are owner-scoped so one creator cannot touch another's
// questions.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	CreateBatch(ctx context.Context, questions []model.Question) (int, error)
	GetOwned(ctx context.Context, id, ownerID int) (*model.Question, error)
	ListByOwner(ctx context.Context, ownerID int, f repository.ListFilter, limit, offset int) ([]model.Question, int, error)
	DistinctSubjectIDs(ctx context.Context, ownerID int) ([]int, error)
	DistinctChapterIDs(ctx context.Context, ownerID, subjectID int) ([]int, error)
	Update(ctx context.Context, q *model.Question) error
	SetActive(ctx context.Context, id, ownerID int, active bool) (bool, error)
	Delete(ctx context.Context, id, ownerID int) (bool, error)
}

// QuestionService manages the question bank.
type QuestionService struct {
	questionRepo QuestionStore
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo QuestionStore, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Create adds a question to the bank in the inactive state. Options arrive
// as a JSON string and are only kept for MCQ questions. Marks defaults to 1
// and difficulty to easy when omitted.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest, images QuestionImages, createdBy int) (*model.Question, error) {
	q := &model.Question{
		BoardID:       req.BoardID,
		Class:         req.Class,
		SubjectID:     req.SubjectID,
		ChapterID:     req.ChapterID,
		QuestionType:  model.QuestionType(req.QuestionType),
		Question:      req.Question,
		QuestionImage: images.Question,
		Answer:        req.Answer,
		AnswerImage:   images.Answer,
		Marks:         req.Marks,
		Difficulty:    model.Difficulty(req.Difficulty),
		CreatedBy:     createdBy,
	}
	if q.Marks == 0 {
		q.Marks = 1
	}
	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyEasy
	}

	if q.QuestionType == model.QuestionTypeMCQ {
		if req.Options != "" {
			if err := json.Unmarshal([]byte(req.Options), &q.Options); err != nil {
				return nil, fmt.Errorf("parse options: %w", err)
			}
		}
		q.OptionImages = images.Options
	}

	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// BulkCreate inserts questions from flattened import rows.
func (s *QuestionService) BulkCreate(ctx context.Context, rows []model.ImportQuestionRow, createdBy int) (int, error) {
	questions := make([]model.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, rowToQuestion(row, createdBy))
	}

	created, err := s.questionRepo.CreateBatch(ctx, questions)
	if err != nil {
		return created, fmt.Errorf("bulk create: %w", err)
	}
	s.log.Info().Int("count", created).Msg("questions imported")
	return created, nil
}

// ImportExcel reads an exported question sheet and inserts its rows. The
// first sheet is used; row 1 must be the column header row matching the
// export layout.
func (s *QuestionService) ImportExcel(ctx context.Context, file io.Reader, createdBy int) (int, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return 0, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return 0, ErrImportEmpty
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return 0, ErrImportEmpty
	}

	var imported []model.ImportQuestionRow
	for i, cells := range rows[1:] {
		row, err := parseImportRow(cells)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		if row == nil {
			continue
		}
		imported = append(imported, *row)
	}
	if len(imported) == 0 {
		return 0, ErrImportEmpty
	}

	return s.BulkCreate(ctx, imported, createdBy)
}

// Spreadsheet column order for question imports.
const (
	colBoardID = iota
	colClass
	colSubjectID
	colChapterID
	colQuestionType
	colQuestion
	colOption1
	colOption2
	colOption3
	colOption4
	colAnswer
	colMarks
	colDifficulty
	importColumns
)

func parseImportRow(cells []string) (*model.ImportQuestionRow, error) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	if get(colQuestion) == "" && get(colAnswer) == "" {
		return nil, nil // blank row
	}

	atoi := func(name string, i int) (int, error) {
		v, err := strconv.Atoi(get(i))
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q", name, get(i))
		}
		return v, nil
	}

	boardID, err := atoi("board_id", colBoardID)
	if err != nil {
		return nil, err
	}
	class, err := atoi("class", colClass)
	if err != nil {
		return nil, err
	}
	subjectID, err := atoi("subject_id", colSubjectID)
	if err != nil {
		return nil, err
	}
	chapterID, err := atoi("chapter_id", colChapterID)
	if err != nil {
		return nil, err
	}

	qType := strings.ToUpper(get(colQuestionType))
	switch qType {
	case "MCQ", "SHORT", "LONG":
	default:
		return nil, fmt.Errorf("invalid question_type %q", get(colQuestionType))
	}

	marks := 0
	if raw := get(colMarks); raw != "" {
		marks, err = atoi("marks", colMarks)
		if err != nil {
			return nil, err
		}
	}

	return &model.ImportQuestionRow{
		BoardID:      boardID,
		Class:        class,
		SubjectID:    subjectID,
		ChapterID:    chapterID,
		QuestionType: qType,
		Question:     get(colQuestion),
		Option1:      get(colOption1),
		Option2:      get(colOption2),
		Option3:      get(colOption3),
		Option4:      get(colOption4),
		Answer:       get(colAnswer),
		Marks:        marks,
		Difficulty:   strings.ToLower(get(colDifficulty)),
	}, nil
}

func rowToQuestion(row model.ImportQuestionRow, createdBy int) model.Question {
	q := model.Question{
		BoardID:      row.BoardID,
		Class:        row.Class,
		SubjectID:    row.SubjectID,
		ChapterID:    row.ChapterID,
		QuestionType: model.QuestionType(row.QuestionType),
		Question:     row.Question,
		Answer:       row.Answer,
		Marks:        row.Marks,
		Difficulty:   model.Difficulty(row.Difficulty),
		CreatedBy:    createdBy,
	}
	if q.Marks == 0 {
		q.Marks = 1
	}
	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyEasy
	}
	if q.QuestionType == model.QuestionTypeMCQ {
		q.Options = []string{row.Option1, row.Option2, row.Option3, row.Option4}
	}
	return q
}

// Get retrieves one of the owner's questions.
func (s *QuestionService) Get(ctx context.Context, id, ownerID int) (*model.Question, error) {
	q, err := s.questionRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// List retrieves the owner's questions with optional filters.
func (s *QuestionService) List(ctx context.Context, ownerID int, filter repository.ListFilter, limit, offset int) ([]model.Question, int, error) {
	return s.questionRepo.ListByOwner(ctx, ownerID, filter, limit, offset)
}

// UsedSubjects lists the subject ids the owner has questions under.
func (s *QuestionService) UsedSubjects(ctx context.Context, ownerID int) ([]int, error) {
	return s.questionRepo.DistinctSubjectIDs(ctx, ownerID)
}

// UsedChapters lists the chapter ids the owner has questions under,
// optionally scoped to one subject.
func (s *QuestionService) UsedChapters(ctx context.Context, ownerID, subjectID int) ([]int, error) {
	return s.questionRepo.DistinctChapterIDs(ctx, ownerID, subjectID)
}

// Update overwrites the content of a question owned by ownerID. Image paths
// are only replaced when new uploads are present.
func (s *QuestionService) Update(ctx context.Context, id, ownerID int, req *model.CreateQuestionRequest, images QuestionImages) (*model.Question, error) {
	q, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	q.BoardID = req.BoardID
	q.Class = req.Class
	q.SubjectID = req.SubjectID
	q.ChapterID = req.ChapterID
	q.QuestionType = model.QuestionType(req.QuestionType)
	q.Question = req.Question
	q.Answer = req.Answer
	if req.Marks > 0 {
		q.Marks = req.Marks
	}
	if req.Difficulty != "" {
		q.Difficulty = model.Difficulty(req.Difficulty)
	}

	if q.QuestionType == model.QuestionTypeMCQ {
		if req.Options != "" {
			q.Options = nil
			if err := json.Unmarshal([]byte(req.Options), &q.Options); err != nil {
				return nil, fmt.Errorf("parse options: %w", err)
			}
		}
		if images.Options != nil {
			q.OptionImages = images.Options
		}
	} else {
		q.Options = nil
		q.OptionImages = nil
	}
	if images.Question != nil {
		q.QuestionImage = images.Question
	}
	if images.Answer != nil {
		q.AnswerImage = images.Answer
	}

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

// SetActive toggles whether one of the owner's questions can be selected
// for papers.
func (s *QuestionService) SetActive(ctx context.Context, id, ownerID int, active bool) error {
	ok, err := s.questionRepo.SetActive(ctx, id, ownerID, active)
	if err != nil {
		return fmt.Errorf("toggle question: %w", err)
	}
	if !ok {
		return ErrQuestionNotFound
	}
	return nil
}

// Delete removes an owned question.
func (s *QuestionService) Delete(ctx context.Context, id, ownerID int) error {
	ok, err := s.questionRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !ok {
		return ErrQuestionNotFound
	}
	return nil
}
