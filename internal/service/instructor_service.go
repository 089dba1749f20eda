package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type instructorRepository interface {
	List(ctx context.Context) ([]models.InstructorDetail, error)
	FindByID(ctx context.Context, id int64) (*models.InstructorDetail, error)
	ExistsForUsuario(ctx context.Context, usuarioID int64) (bool, error)
	Create(ctx context.Context, req *models.CreateInstructorRequest) (int64, error)
	Update(ctx context.Context, id int64, req *models.UpdateInstructorRequest) (int64, error)
	CountModulos(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type instructorUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// InstructorService provides instructor management use cases.
type InstructorService struct {
	repo      instructorRepository
	users     instructorUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs an InstructorService instance.
func NewInstructorService(repo instructorRepository, users instructorUserRepository, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &InstructorService{repo: repo, users: users, validator: validate, logger: logger}
}

// List returns all instructors.
func (s *InstructorService) List(ctx context.Context) ([]models.InstructorDetail, error) {
	instructores, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructores")
	}
	return instructores, nil
}

// Get returns one instructor.
func (s *InstructorService) Get(ctx context.Context, id int64) (*models.InstructorDetail, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	return instructor, nil
}

// Create links an existing user as instructor. The user must exist and must
// not already be an instructor.
func (s *InstructorService) Create(ctx context.Context, req models.CreateInstructorRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}

	if _, err := s.users.FindByID(ctx, req.UsuarioID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load usuario")
	}

	exists, err := s.repo.ExistsForUsuario(ctx, req.UsuarioID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor")
	}
	if exists {
		return 0, appErrors.Clone(appErrors.ErrConflict, "el usuario ya es instructor")
	}

	id, err := s.repo.Create(ctx, &req)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}
	return id, nil
}

// Update mutates the teaching fields.
func (s *InstructorService) Update(ctx context.Context, id int64, req models.UpdateInstructorRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	affected, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "instructor no encontrado")
	}
	return nil
}

// Delete removes an instructor unless modules reference it.
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountModulos(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor modulos")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el instructor tiene modulos asignados")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete instructor")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "instructor no encontrado")
	}
	return nil
}
