package model

import "time"

// DifficultyDistribution is the percentage split applied when a paper is
// generated with difficulty "all". Percentages are whole numbers out of 100.
type DifficultyDistribution struct {
	Easy   int `json:"easy" binding:"min=0,max=100"`
	Medium int `json:"medium" binding:"min=0,max=100"`
	Hard   int `json:"hard" binding:"min=0,max=100"`
}

// Paper is one generated exam instance: the parameters it was generated
// with plus display metadata. BoardName/SubjectNames/ChapterNames are the
// display strings printed on the paper; the *ID fields scope selection.
type Paper struct {
	ID           int      `json:"id"`
	BoardName    string   `json:"board"`
	Class        int      `json:"class"`
	Language     string   `json:"language"`
	SubjectNames []string `json:"subjects"`
	ChapterNames []string `json:"chapters"`

	Difficulty             string                  `json:"difficulty"`
	DifficultyDistribution *DifficultyDistribution `json:"difficulty_distribution,omitempty"`

	MCQCount   int     `json:"mcq_count"`
	ShortCount int     `json:"short_count"`
	LongCount  int     `json:"long_count"`
	MCQMarks   float64 `json:"mcq_marks"`
	ShortMarks float64 `json:"short_marks"`
	LongMarks  float64 `json:"long_marks"`
	TotalMarks int     `json:"total_marks"`

	SchoolName *string `json:"school_name,omitempty"`
	SchoolLogo *string `json:"school_logo,omitempty"`
	ExamName   *string `json:"exam_name,omitempty"`
	Duration   *string `json:"duration,omitempty"`

	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaperQuestion is the join record binding a question to a paper. Type and
// Marks are the role and weight the question plays in this paper, stamped
// from the generation request rather than copied from the question row.
type PaperQuestion struct {
	PaperID    int          `json:"paper_id"`
	QuestionID int          `json:"question_id"`
	Type       QuestionType `json:"type"`
	Marks      float64      `json:"marks"`
}

// PaperEntry is a question joined with its per-paper link attributes,
// as loaded for re-rendering a persisted paper.
type PaperEntry struct {
	Question Question     `json:"question"`
	Type     QuestionType `json:"type"`
	Marks    float64      `json:"marks"`
}

// GeneratePaperRequest carries every parameter of a paper generation.
// The name fields (Board/Subjects/Chapters) are display strings; the id
// fields scope the question pool.
type GeneratePaperRequest struct {
	Board      string   `json:"board" binding:"required"`
	BoardID    int      `json:"board_id" binding:"required,min=1"`
	Class      int      `json:"class" binding:"required,min=1,max=12"`
	Subjects   []string `json:"subjects" binding:"required,min=1"`
	SubjectIDs []int    `json:"subject_ids" binding:"required,min=1"`
	Chapters   []string `json:"chapters" binding:"required,min=1"`
	ChapterIDs []int    `json:"chapter_ids" binding:"required,min=1"`

	Difficulty                string                  `json:"difficulty" binding:"required,oneof=all easy medium hard"`
	UseDifficultyDistribution bool                    `json:"use_difficulty_distribution"`
	DifficultyDistribution    *DifficultyDistribution `json:"difficulty_distribution"`

	MCQCount   int     `json:"mcq_count" binding:"min=0"`
	ShortCount int     `json:"short_count" binding:"min=0"`
	LongCount  int     `json:"long_count" binding:"min=0"`
	MCQMarks   float64 `json:"mcq_marks" binding:"min=0"`
	ShortMarks float64 `json:"short_marks" binding:"min=0"`
	LongMarks  float64 `json:"long_marks" binding:"min=0"`
	TotalMarks int     `json:"total_marks" binding:"min=0"`

	IncludeAnswers bool   `json:"include_answers"`
	SchoolName     string `json:"school_name"`
	SchoolLogo     string `json:"school_logo"`
	ExamName       string `json:"exam_name"`
	Duration       string `json:"duration"`
	Language       string `json:"language"`
}

// UpdatePaperRequest permits overwriting a stored paper's metadata.
type UpdatePaperRequest struct {
	SchoolName *string `json:"school_name"`
	SchoolLogo *string `json:"school_logo"`
	ExamName   *string `json:"exam_name"`
	Duration   *string `json:"duration"`
	Language   *string `json:"language"`
}
