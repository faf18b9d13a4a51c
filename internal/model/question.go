package model

import "time"

// QuestionType classifies a question by the answer format it expects.
type QuestionType string

const (
	QuestionTypeMCQ   QuestionType = "MCQ"
	QuestionTypeShort QuestionType = "SHORT"
	QuestionTypeLong  QuestionType = "LONG"
)

// Difficulty is the authored difficulty tier of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single bank entry. Options and OptionImages are only
// populated for MCQ questions; OptionImages is index-aligned with Options
// and may contain gaps (nil entries).
type Question struct {
	ID            int          `json:"id"`
	BoardID       int          `json:"board_id"`
	Class         int          `json:"class"`
	SubjectID     int          `json:"subject_id"`
	ChapterID     int          `json:"chapter_id"`
	QuestionType  QuestionType `json:"question_type"`
	Question      string       `json:"question"`
	QuestionImage *string      `json:"question_image,omitempty"`
	Options       []string     `json:"options,omitempty"`
	OptionImages  []*string    `json:"option_images,omitempty"`
	Answer        string       `json:"answer"`
	AnswerImage   *string      `json:"answer_image,omitempty"`
	Marks         int          `json:"marks"`
	Difficulty    Difficulty   `json:"difficulty"`
	IsActive      bool         `json:"is_active"`
	CreatedBy     int          `json:"created_by"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// CreateQuestionRequest is the multipart form payload for adding a
// question. Options arrives as a JSON-encoded string array; images are
// handled separately by the media service.
type CreateQuestionRequest struct {
	BoardID      int    `form:"board_id" binding:"required,min=1"`
	Class        int    `form:"class" binding:"required,min=1,max=12"`
	SubjectID    int    `form:"subject_id" binding:"required,min=1"`
	ChapterID    int    `form:"chapter_id" binding:"required,min=1"`
	QuestionType string `form:"question_type" binding:"required,oneof=MCQ SHORT LONG"`
	Question     string `form:"question" binding:"required"`
	Options      string `form:"options"`
	Answer       string `form:"answer" binding:"required"`
	Marks        int    `form:"marks" binding:"omitempty,min=1"`
	Difficulty   string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ImportQuestionRow is one spreadsheet row in a bulk import. MCQ options
// arrive as four flat columns the way exported sheets lay them out.
type ImportQuestionRow struct {
	BoardID      int    `json:"board_id" binding:"required,min=1"`
	Class        int    `json:"class" binding:"required,min=1,max=12"`
	SubjectID    int    `json:"subject_id" binding:"required,min=1"`
	ChapterID    int    `json:"chapter_id" binding:"required,min=1"`
	QuestionType string `json:"question_type" binding:"required,oneof=MCQ SHORT LONG"`
	Question     string `json:"question" binding:"required"`
	Option1      string `json:"option1"`
	Option2      string `json:"option2"`
	Option3      string `json:"option3"`
	Option4      string `json:"option4"`
	Answer       string `json:"answer" binding:"required"`
	Marks        int    `json:"marks"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// BulkCreateQuestionsRequest is the payload for JSON bulk creation.
type BulkCreateQuestionsRequest struct {
	Questions []ImportQuestionRow `json:"questions" binding:"required,min=1,dive"`
}

// ToggleQuestionRequest flips a question's active flag.
type ToggleQuestionRequest struct {
	IsActive bool `json:"is_active"`
}
