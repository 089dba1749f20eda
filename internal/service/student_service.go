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

type studentRepository interface {
	List(ctx context.Context) ([]models.AlumnoDetail, error)
	FindByID(ctx context.Context, id int64) (*models.AlumnoDetail, error)
	Create(ctx context.Context, req *models.CreateAlumnoRequest) (int64, error)
	Update(ctx context.Context, id int64, req *models.UpdateAlumnoRequest) (int64, error)
	ToggleEstado(ctx context.Context, id int64) (int64, error)
	CountProgress(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Stats(ctx context.Context) (*models.AlumnoStats, error)
	CountByPais(ctx context.Context) ([]models.PaisDistribution, error)
	FindPerfilByUsuarioID(ctx context.Context, usuarioID int64) (*models.AlumnoPerfil, error)
}

// StudentService provides student management use cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns all students.
func (s *StudentService) List(ctx context.Context) ([]models.AlumnoDetail, error) {
	alumnos, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list alumnos")
	}
	return alumnos, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.AlumnoDetail, error) {
	alumno, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno")
	}
	return alumno, nil
}

// Create registers a student record without a login account.
func (s *StudentService) Create(ctx context.Context, req models.CreateAlumnoRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid alumno payload")
	}
	id, err := s.repo.Create(ctx, &req)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create alumno")
	}
	return id, nil
}

// Update mutates a student, mirroring identity fields to the linked account.
func (s *StudentService) Update(ctx context.Context, id int64, req models.UpdateAlumnoRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid alumno payload")
	}
	affected, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update alumno")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
	}
	return nil
}

// ToggleEstado flips a student between ACTIVO and INACTIVO.
func (s *StudentService) ToggleEstado(ctx context.Context, id int64) error {
	affected, err := s.repo.ToggleEstado(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle alumno")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
	}
	return nil
}

// Delete removes a student unless lesson progress references it.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountProgress(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check alumno progress")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el alumno tiene progreso registrado")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete alumno")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
	}
	return nil
}

// Stats returns the aggregate counters for the admin dashboard.
func (s *StudentService) Stats(ctx context.Context) (*models.AlumnoStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno stats")
	}
	return stats, nil
}

// DistribucionPorPais returns the per-country student distribution.
func (s *StudentService) DistribucionPorPais(ctx context.Context) ([]models.PaisDistribution, error) {
	rows, err := s.repo.CountByPais(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno distribution")
	}
	return rows, nil
}

// Perfil returns the student profile linked to an authenticated account.
func (s *StudentService) Perfil(ctx context.Context, usuarioID int64) (*models.AlumnoPerfil, error) {
	perfil, err := s.repo.FindPerfilByUsuarioID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "perfil de alumno no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load perfil")
	}
	return perfil, nil
}
