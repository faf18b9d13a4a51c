package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/papergen/papergen-backend/internal/model"
)

// QuestionFilter narrows the question pool for selection and listing.
type QuestionFilter struct {
	BoardID    int
	Class      int
	SubjectIDs []int
	ChapterIDs []int
	Type       model.QuestionType
	Difficulty model.Difficulty // empty means any
	ActiveOnly bool
}

// QuestionRepository handles question bank persistence.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, board_id, class, subject_id, chapter_id, question_type,
	question, question_image, options, option_images, answer, answer_image,
	marks, difficulty, is_active, created_by, created_at, updated_at`

func scanQuestion(row pgx.Row, q *model.Question) error {
	return row.Scan(&q.ID, &q.BoardID, &q.Class, &q.SubjectID, &q.ChapterID, &q.QuestionType,
		&q.Question, &q.QuestionImage, &q.Options, &q.OptionImages, &q.Answer, &q.AnswerImage,
		&q.Marks, &q.Difficulty, &q.IsActive, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (board_id, class, subject_id, chapter_id, question_type,
			question, question_image, options, option_images, answer, answer_image,
			marks, difficulty, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at, updated_at`,
		q.BoardID, q.Class, q.SubjectID, q.ChapterID, q.QuestionType,
		q.Question, q.QuestionImage, q.Options, q.OptionImages, q.Answer, q.AnswerImage,
		q.Marks, q.Difficulty, q.IsActive, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// CreateBatch inserts many questions in a single round trip.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []model.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for i := range questions {
		q := &questions[i]
		batch.Queue(
			`INSERT INTO questions (board_id, class, subject_id, chapter_id, question_type,
				question, question_image, options, option_images, answer, answer_image,
				marks, difficulty, is_active, created_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			q.BoardID, q.Class, q.SubjectID, q.ChapterID, q.QuestionType,
			q.Question, q.QuestionImage, q.Options, q.OptionImages, q.Answer, q.AnswerImage,
			q.Marks, q.Difficulty, q.IsActive, q.CreatedBy)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range questions {
		if _, err := results.Exec(); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// GetOwned retrieves a question only if it belongs to the given owner.
// Returns nil when not found.
func (r *QuestionRepository) GetOwned(ctx context.Context, id, ownerID int) (*model.Question, error) {
	q := &model.Question{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1 AND created_by = $2`, questionColumns),
		id, ownerID), q)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Find retrieves questions matching the filter. When randomize is true the
// result order is shuffled by the database; limit <= 0 means no limit.
func (r *QuestionRepository) Find(ctx context.Context, filter QuestionFilter, limit int, randomize bool) ([]model.Question, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	add("board_id = $%d", filter.BoardID)
	add("class = $%d", filter.Class)
	add("subject_id = ANY($%d)", filter.SubjectIDs)
	add("chapter_id = ANY($%d)", filter.ChapterIDs)
	add("question_type = $%d", filter.Type)
	if filter.Difficulty != "" {
		add("difficulty = $%d", filter.Difficulty)
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}

	query := fmt.Sprintf(`SELECT %s FROM questions WHERE %s`,
		questionColumns, strings.Join(conds, " AND "))
	if randomize {
		query += " ORDER BY RANDOM()"
	} else {
		query += " ORDER BY id ASC"
	}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListFilter narrows an owner's question listing. Zero values mean no filter.
type ListFilter struct {
	BoardID   int
	Class     int
	SubjectID int
	ChapterID int
	Type      model.QuestionType
}

// ListByOwner retrieves a creator's questions with optional filters, newest first.
func (r *QuestionRepository) ListByOwner(ctx context.Context, ownerID int, f ListFilter, limit, offset int) ([]model.Question, int, error) {
	conds := []string{"created_by = $1"}
	args := []any{ownerID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.BoardID > 0 {
		add("board_id = $%d", f.BoardID)
	}
	if f.Class > 0 {
		add("class = $%d", f.Class)
	}
	if f.SubjectID > 0 {
		add("subject_id = $%d", f.SubjectID)
	}
	if f.ChapterID > 0 {
		add("chapter_id = $%d", f.ChapterID)
	}
	if f.Type != "" {
		add("question_type = $%d", f.Type)
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM questions WHERE %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM questions WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			questionColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// DistinctSubjectIDs lists the subjects a creator has authored questions for.
func (r *QuestionRepository) DistinctSubjectIDs(ctx context.Context, ownerID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT subject_id FROM questions WHERE created_by = $1 ORDER BY subject_id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// DistinctChapterIDs lists the chapters a creator has authored questions
// for, optionally scoped to one subject.
func (r *QuestionRepository) DistinctChapterIDs(ctx context.Context, ownerID, subjectID int) ([]int, error) {
	query := `SELECT DISTINCT chapter_id FROM questions WHERE created_by = $1`
	args := []any{ownerID}
	if subjectID > 0 {
		args = append(args, subjectID)
		query += ` AND subject_id = $2`
	}
	query += ` ORDER BY chapter_id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]int, error) {
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update persists mutable question fields.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET board_id = $1, class = $2, subject_id = $3, chapter_id = $4,
			question_type = $5, question = $6, question_image = $7, options = $8,
			option_images = $9, answer = $10, answer_image = $11, marks = $12,
			difficulty = $13, updated_at = NOW()
		 WHERE id = $14 AND created_by = $15`,
		q.BoardID, q.Class, q.SubjectID, q.ChapterID, q.QuestionType,
		q.Question, q.QuestionImage, q.Options, q.OptionImages, q.Answer, q.AnswerImage,
		q.Marks, q.Difficulty, q.ID, q.CreatedBy)
	return err
}

// SetActive toggles the availability of a question owned by the given user.
// Returns true if a row changed.
func (r *QuestionRepository) SetActive(ctx context.Context, id, ownerID int, active bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions SET is_active = $1, updated_at = NOW()
		 WHERE id = $2 AND created_by = $3`, active, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a question owned by the given user. Returns true if a row was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM questions WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
