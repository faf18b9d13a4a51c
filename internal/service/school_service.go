package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrSchoolNotFound is returned when a school is missing or owned by someone else.
var ErrSchoolNotFound = errors.New("school not found")

// SchoolService manages per-teacher school profiles.
type SchoolService struct {
	schoolRepo *repository.SchoolRepository
	log        zerolog.Logger
}

// NewSchoolService creates a new SchoolService.
func NewSchoolService(schoolRepo *repository.SchoolRepository, log zerolog.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		log:        log.With().Str("component", "school_service").Logger(),
	}
}

// Create registers a school for the owner. Names are unique per owner.
func (s *SchoolService) Create(ctx context.Context, school *model.School) error {
	exists, err := s.schoolRepo.ExistsByName(ctx, school.Name, school.CreatedBy)
	if err != nil {
		return fmt.Errorf("check school: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

// Get retrieves a school owned by the given user.
func (s *SchoolService) Get(ctx context.Context, id, ownerID int) (*model.School, error) {
	school, err := s.schoolRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get school: %w", err)
	}
	if school == nil {
		return nil, ErrSchoolNotFound
	}
	return school, nil
}

// List retrieves the caller's schools. Admins see every school.
func (s *SchoolService) List(ctx context.Context, ownerID int, isAdmin bool) ([]model.School, error) {
	if isAdmin {
		return s.schoolRepo.ListAll(ctx)
	}
	return s.schoolRepo.ListByOwner(ctx, ownerID)
}

// Update applies changes to an owned school. A non-nil newLogo replaces the
// stored logo path.
func (s *SchoolService) Update(ctx context.Context, id, ownerID int, req *model.UpdateSchoolRequest, newLogo *string) (*model.School, error) {
	school, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Address = req.Address
	school.MobileNumber = req.MobileNumber
	if newLogo != nil {
		school.Logo = newLogo
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, fmt.Errorf("update school: %w", err)
	}
	return school, nil
}

// Delete removes an owned school.
func (s *SchoolService) Delete(ctx context.Context, id, ownerID int) error {
	ok, err := s.schoolRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if !ok {
		return ErrSchoolNotFound
	}
	return nil
}
