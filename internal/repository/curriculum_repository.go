package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/papergen/papergen-backend/internal/model"
)

// CurriculumRepository handles board/subject/chapter taxonomy access.
type CurriculumRepository struct {
	pool *pgxpool.Pool
}

// NewCurriculumRepository creates a new CurriculumRepository.
func NewCurriculumRepository(pool *pgxpool.Pool) *CurriculumRepository {
	return &CurriculumRepository{pool: pool}
}

// CreateBoard inserts a new board.
func (r *CurriculumRepository) CreateBoard(ctx context.Context, b *model.Board) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO boards (name, created_by) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		b.Name, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// BoardExists reports whether a board with the given name exists.
func (r *CurriculumRepository) BoardExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM boards WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

// ListBoards retrieves all boards ordered by name.
func (r *CurriculumRepository) ListBoards(ctx context.Context) ([]model.Board, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_by, created_at, updated_at FROM boards ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []model.Board
	for rows.Next() {
		var b model.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// CreateSubject inserts a new subject under a board.
func (r *CurriculumRepository) CreateSubject(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, board_id, created_by) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.BoardID, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// SubjectExists reports whether a subject name is taken within a board.
func (r *CurriculumRepository) SubjectExists(ctx context.Context, name string, boardID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subjects WHERE name = $1 AND board_id = $2)`, name, boardID).Scan(&exists)
	return exists, err
}

// ListSubjects retrieves a board's subjects ordered by name.
func (r *CurriculumRepository) ListSubjects(ctx context.Context, boardID int) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, board_id, created_by, created_at, updated_at
		 FROM subjects WHERE board_id = $1 ORDER BY name ASC`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.BoardID, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// CreateChapter inserts a new chapter under a subject.
func (r *CurriculumRepository) CreateChapter(ctx context.Context, c *model.Chapter) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO chapters (name, subject_id, created_by) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.SubjectID, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// ChapterExists reports whether a chapter name is taken within a subject.
func (r *CurriculumRepository) ChapterExists(ctx context.Context, name string, subjectID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chapters WHERE name = $1 AND subject_id = $2)`, name, subjectID).Scan(&exists)
	return exists, err
}

// ListChapters retrieves a subject's chapters ordered by name.
func (r *CurriculumRepository) ListChapters(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, subject_id, created_by, created_at, updated_at
		 FROM chapters WHERE subject_id = $1 ORDER BY name ASC`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []model.Chapter
	for rows.Next() {
		var c model.Chapter
		if err := rows.Scan(&c.ID, &c.Name, &c.SubjectID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}
