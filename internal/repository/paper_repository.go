package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/papergen/papergen-backend/internal/model"
)

// PaperRepository handles generated paper persistence.
type PaperRepository struct {
	pool *pgxpool.Pool
}

// NewPaperRepository creates a new PaperRepository.
func NewPaperRepository(pool *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{pool: pool}
}

const paperColumns = `id, board_name, class, language, subject_names, chapter_names,
	difficulty, difficulty_distribution, mcq_count, short_count, long_count,
	mcq_marks, short_marks, long_marks, total_marks,
	school_name, school_logo, exam_name, duration, created_by, created_at, updated_at`

func scanPaper(row pgx.Row, p *model.Paper) error {
	return row.Scan(&p.ID, &p.BoardName, &p.Class, &p.Language, &p.SubjectNames, &p.ChapterNames,
		&p.Difficulty, &p.DifficultyDistribution, &p.MCQCount, &p.ShortCount, &p.LongCount,
		&p.MCQMarks, &p.ShortMarks, &p.LongMarks, &p.TotalMarks,
		&p.SchoolName, &p.SchoolLogo, &p.ExamName, &p.Duration, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a paper record.
func (r *PaperRepository) Create(ctx context.Context, p *model.Paper) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO papers (board_name, class, language, subject_names, chapter_names,
			difficulty, difficulty_distribution, mcq_count, short_count, long_count,
			mcq_marks, short_marks, long_marks, total_marks,
			school_name, school_logo, exam_name, duration, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING id, created_at, updated_at`,
		p.BoardName, p.Class, p.Language, p.SubjectNames, p.ChapterNames,
		p.Difficulty, p.DifficultyDistribution, p.MCQCount, p.ShortCount, p.LongCount,
		p.MCQMarks, p.ShortMarks, p.LongMarks, p.TotalMarks,
		p.SchoolName, p.SchoolLogo, p.ExamName, p.Duration, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// AddQuestions links the selected questions to a paper in one round trip.
func (r *PaperRepository) AddQuestions(ctx context.Context, paperID int, entries []model.PaperEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, e := range entries {
		batch.Queue(
			`INSERT INTO paper_questions (paper_id, question_id, type, marks, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			paperID, e.Question.ID, e.Type, e.Marks, i)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetOwned retrieves a paper only if it belongs to the given owner.
func (r *PaperRepository) GetOwned(ctx context.Context, id, ownerID int) (*model.Paper, error) {
	p := &model.Paper{}
	err := scanPaper(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM papers WHERE id = $1 AND created_by = $2`, paperColumns),
		id, ownerID), p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetEntries reloads a paper's linked questions in insertion order.
func (r *PaperRepository) GetEntries(ctx context.Context, paperID int) ([]model.PaperEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pq.type, pq.marks,
			q.id, q.board_id, q.class, q.subject_id, q.chapter_id, q.question_type,
			q.question, q.question_image, q.options, q.option_images, q.answer, q.answer_image,
			q.marks, q.difficulty, q.is_active, q.created_by, q.created_at, q.updated_at
		 FROM paper_questions pq
		 JOIN questions q ON q.id = pq.question_id
		 WHERE pq.paper_id = $1
		 ORDER BY pq.position ASC`, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.PaperEntry
	for rows.Next() {
		var e model.PaperEntry
		q := &e.Question
		if err := rows.Scan(&e.Type, &e.Marks,
			&q.ID, &q.BoardID, &q.Class, &q.SubjectID, &q.ChapterID, &q.QuestionType,
			&q.Question, &q.QuestionImage, &q.Options, &q.OptionImages, &q.Answer, &q.AnswerImage,
			&q.Marks, &q.Difficulty, &q.IsActive, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByOwner retrieves a creator's papers, newest first.
func (r *PaperRepository) ListByOwner(ctx context.Context, ownerID, limit, offset int) ([]model.Paper, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM papers WHERE created_by = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM papers WHERE created_by = $1
			 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, paperColumns),
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var papers []model.Paper
	for rows.Next() {
		var p model.Paper
		if err := scanPaper(rows, &p); err != nil {
			return nil, 0, err
		}
		papers = append(papers, p)
	}
	return papers, total, rows.Err()
}

// Update persists mutable paper metadata.
func (r *PaperRepository) Update(ctx context.Context, p *model.Paper) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE papers SET school_name = $1, school_logo = $2, exam_name = $3,
			duration = $4, language = $5, updated_at = NOW()
		 WHERE id = $6 AND created_by = $7`,
		p.SchoolName, p.SchoolLogo, p.ExamName, p.Duration, p.Language, p.ID, p.CreatedBy)
	return err
}

// Delete removes a paper and its question links. Returns true if a row was deleted.
func (r *PaperRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM papers WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
