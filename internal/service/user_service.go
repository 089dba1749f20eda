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

type userAdminRepository interface {
	List(ctx context.Context) ([]models.UserDetail, error)
	FindDetailByID(ctx context.Context, id int64) (*models.UserDetail, error)
	Update(ctx context.Context, id int64, nombre, email string, paisID int64) (int64, error)
	Deactivate(ctx context.Context, id int64) (int64, error)
	ToggleEstado(ctx context.Context, id int64) (int64, error)
}

// UserService provides admin user management use cases.
type UserService struct {
	repo      userAdminRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userAdminRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns all users with role and country context.
func (s *UserService) List(ctx context.Context) ([]models.UserDetail, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list usuarios")
	}
	return users, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id int64) (*models.UserDetail, error) {
	user, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load usuario")
	}
	return user, nil
}

// Update mutates profile fields.
func (s *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid usuario payload")
	}
	affected, err := s.repo.Update(ctx, id, req.Nombre, req.Email, req.PaisID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update usuario")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
	}
	return nil
}

// Deactivate flips the user to INACTIVO instead of deleting the row.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	affected, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate usuario")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
	}
	return nil
}

// ToggleEstado flips between ACTIVO and INACTIVO.
func (s *UserService) ToggleEstado(ctx context.Context, id int64) error {
	affected, err := s.repo.ToggleEstado(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle usuario")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
	}
	return nil
}
