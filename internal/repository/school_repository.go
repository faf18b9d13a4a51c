package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/papergen/papergen-backend/internal/model"
)

// SchoolRepository handles school profile persistence.
type SchoolRepository struct {
	pool *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository.
func NewSchoolRepository(pool *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{pool: pool}
}

// Create inserts a new school owned by the given user.
func (r *SchoolRepository) Create(ctx context.Context, s *model.School) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schools (name, logo, address, mobile_number, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Logo, s.Address, s.MobileNumber, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// ExistsByName reports whether the owner already has a school with this name.
func (r *SchoolRepository) ExistsByName(ctx context.Context, name string, ownerID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schools WHERE name = $1 AND created_by = $2)`,
		name, ownerID).Scan(&exists)
	return exists, err
}

// GetOwned retrieves a school only if it belongs to the given owner.
func (r *SchoolRepository) GetOwned(ctx context.Context, id, ownerID int) (*model.School, error) {
	s := &model.School{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, logo, address, mobile_number, created_by, created_at, updated_at
		 FROM schools WHERE id = $1 AND created_by = $2`,
		id, ownerID,
	).Scan(&s.ID, &s.Name, &s.Logo, &s.Address, &s.MobileNumber, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByOwner retrieves all schools created by the given user, newest first.
func (r *SchoolRepository) ListByOwner(ctx context.Context, ownerID int) ([]model.School, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, logo, address, mobile_number, created_by, created_at, updated_at
		 FROM schools WHERE created_by = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []model.School
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Logo, &s.Address, &s.MobileNumber, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

// ListAll retrieves every school regardless of owner, newest first.
func (r *SchoolRepository) ListAll(ctx context.Context) ([]model.School, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, logo, address, mobile_number, created_by, created_at, updated_at
		 FROM schools ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []model.School
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Logo, &s.Address, &s.MobileNumber, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

// Update persists mutable school fields.
func (r *SchoolRepository) Update(ctx context.Context, s *model.School) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE schools SET name = $1, logo = $2, address = $3, mobile_number = $4, updated_at = NOW()
		 WHERE id = $5 AND created_by = $6`,
		s.Name, s.Logo, s.Address, s.MobileNumber, s.ID, s.CreatedBy)
	return err
}

// Delete removes a school owned by the given user. Returns true if a row was deleted.
func (r *SchoolRepository) Delete(ctx context.Context, id, ownerID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM schools WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
