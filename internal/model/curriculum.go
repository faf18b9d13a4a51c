package model

import "time"

// Board is the top-level curriculum authority (e.g. CBSE, GSEB).
type Board struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subject is a curriculum subject nested under a board.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	BoardID   int       `json:"board_id"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chapter is a curriculum chapter nested under a subject.
type Chapter struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SubjectID int       `json:"subject_id"`
	CreatedBy int       `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBoardRequest is the payload for adding a board.
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// CreateSubjectRequest is the payload for adding a subject to a board.
type CreateSubjectRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	BoardID int    `json:"board_id" binding:"required,min=1"`
}

// CreateChapterRequest is the payload for adding a chapter to a subject.
type CreateChapterRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	SubjectID int    `json:"subject_id" binding:"required,min=1"`
}
