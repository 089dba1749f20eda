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

type lessonRepository interface {
	List(ctx context.Context) ([]models.LeccionDetail, error)
	ListByModulo(ctx context.Context, moduloID int64) ([]models.Leccion, error)
	FindByID(ctx context.Context, id int64) (*models.Leccion, error)
	ModuloExists(ctx context.Context, moduloID int64) (bool, error)
	Create(ctx context.Context, req *models.CreateLeccionRequest) (int64, error)
	Update(ctx context.Context, id int64, req *models.UpdateLeccionRequest) (int64, error)
	CountDependents(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// LessonService provides lesson use cases.
type LessonService struct {
	repo      lessonRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonService constructs a LessonService instance.
func NewLessonService(repo lessonRepository, validate *validator.Validate, logger *zap.Logger) *LessonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LessonService{repo: repo, validator: validate, logger: logger}
}

// List returns all lessons with module and instructor context.
func (s *LessonService) List(ctx context.Context) ([]models.LeccionDetail, error) {
	lecciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecciones")
	}
	return lecciones, nil
}

// ListByModulo returns the lessons of one module in order.
func (s *LessonService) ListByModulo(ctx context.Context, moduloID int64) ([]models.Leccion, error) {
	exists, err := s.repo.ModuloExists(ctx, moduloID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check modulo")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "modulo no encontrado")
	}
	lecciones, err := s.repo.ListByModulo(ctx, moduloID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecciones")
	}
	return lecciones, nil
}

// Get returns one lesson.
func (s *LessonService) Get(ctx context.Context, id int64) (*models.Leccion, error) {
	leccion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leccion no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leccion")
	}
	return leccion, nil
}

// Create inserts a lesson inside an existing module.
func (s *LessonService) Create(ctx context.Context, req models.CreateLeccionRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leccion payload")
	}
	exists, err := s.repo.ModuloExists(ctx, req.ModuloID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check modulo")
	}
	if !exists {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "modulo no encontrado")
	}
	id, err := s.repo.Create(ctx, &req)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create leccion")
	}
	return id, nil
}

// Update mutates lesson fields, allowing a move between modules.
func (s *LessonService) Update(ctx context.Context, id int64, req models.UpdateLeccionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leccion payload")
	}
	exists, err := s.repo.ModuloExists(ctx, req.ModuloID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check modulo")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "modulo no encontrado")
	}
	affected, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update leccion")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "leccion no encontrada")
	}
	return nil
}

// Delete removes a lesson unless questions or progress reference it.
func (s *LessonService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check leccion dependents")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "la leccion tiene preguntas o progreso asociado")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete leccion")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "leccion no encontrada")
	}
	return nil
}
