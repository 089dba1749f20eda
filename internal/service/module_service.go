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

type moduleRepository interface {
	List(ctx context.Context) ([]models.Modulo, error)
	FindByID(ctx context.Context, id int64) (*models.Modulo, error)
	Create(ctx context.Context, req *models.CreateModuloRequest) (int64, error)
	Update(ctx context.Context, id int64, req *models.UpdateModuloRequest) (int64, error)
	CountLecciones(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListConLecciones(ctx context.Context) ([]models.ModuloConLecciones, error)
}

type moduleInstructorRepository interface {
	FindByID(ctx context.Context, id int64) (*models.InstructorDetail, error)
}

// ModuleService provides course module use cases.
type ModuleService struct {
	repo         moduleRepository
	instructores moduleInstructorRepository
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewModuleService constructs a ModuleService instance.
func NewModuleService(repo moduleRepository, instructores moduleInstructorRepository, validate *validator.Validate, logger *zap.Logger) *ModuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ModuleService{repo: repo, instructores: instructores, validator: validate, logger: logger}
}

// List returns all modules in display order.
func (s *ModuleService) List(ctx context.Context) ([]models.Modulo, error) {
	modulos, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list modulos")
	}
	return modulos, nil
}

// Get returns one module.
func (s *ModuleService) Get(ctx context.Context, id int64) (*models.Modulo, error) {
	modulo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "modulo no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load modulo")
	}
	return modulo, nil
}

// Create inserts a module owned by an existing instructor.
func (s *ModuleService) Create(ctx context.Context, req models.CreateModuloRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid modulo payload")
	}
	if _, err := s.instructores.FindByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "instructor no encontrado")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	id, err := s.repo.Create(ctx, &req)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create modulo")
	}
	return id, nil
}

// Update mutates module fields.
func (s *ModuleService) Update(ctx context.Context, id int64, req models.UpdateModuloRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid modulo payload")
	}
	affected, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update modulo")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "modulo no encontrado")
	}
	return nil
}

// Delete removes a module unless lessons reference it.
func (s *ModuleService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountLecciones(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check modulo lecciones")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el modulo tiene lecciones asociadas")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete modulo")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "modulo no encontrado")
	}
	return nil
}

// ListConLecciones returns active modules with their lessons nested.
func (s *ModuleService) ListConLecciones(ctx context.Context) ([]models.ModuloConLecciones, error) {
	modulos, err := s.repo.ListConLecciones(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list modulos con lecciones")
	}
	return modulos, nil
}
