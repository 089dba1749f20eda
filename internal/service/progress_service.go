package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type progressRepository interface {
	ListAll(ctx context.Context) ([]models.ProgressRow, error)
	ListByAlumno(ctx context.Context, alumnoID int64) ([]models.StudentProgressRow, error)
	Exists(ctx context.Context, alumnoID, leccionID int64) (bool, error)
	Create(ctx context.Context, alumnoID, leccionID int64, totalPreguntas int) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.LessonProgress, error)
	RecordAnswer(ctx context.Context, id int64, answered int, lastQuestion *int64, estado string, completedAt *time.Time) error
}

type progressStudentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.AlumnoDetail, error)
}

type progressLessonRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Leccion, error)
}

// ProgressService tracks per-student lesson progress and keeps the derived
// module aggregate consistent with it.
type ProgressService struct {
	repo      progressRepository
	alumnos   progressStudentRepository
	lecciones progressLessonRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProgressService constructs a ProgressService instance.
func NewProgressService(repo progressRepository, alumnos progressStudentRepository, lecciones progressLessonRepository, validate *validator.Validate, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProgressService{repo: repo, alumnos: alumnos, lecciones: lecciones, validator: validate, logger: logger, now: time.Now}
}

// List returns every student's lesson progress.
func (s *ProgressService) List(ctx context.Context) ([]models.ProgressRow, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list progress")
	}
	return rows, nil
}

// ListByAlumno returns one student's lesson progress with the module
// aggregate attached.
func (s *ProgressService) ListByAlumno(ctx context.Context, alumnoID int64) ([]models.StudentProgressRow, error) {
	if _, err := s.alumnos.FindByID(ctx, alumnoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno")
	}
	rows, err := s.repo.ListByAlumno(ctx, alumnoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list progress")
	}
	return rows, nil
}

// StartLesson opens a lesson for a student. At most one progress row may
// exist per (alumno, leccion) pair, so a second start is rejected.
func (s *ProgressService) StartLesson(ctx context.Context, req models.StartProgressRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}

	if _, err := s.alumnos.FindByID(ctx, req.AlumnoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno")
	}
	if _, err := s.lecciones.FindByID(ctx, req.LeccionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "leccion no encontrada")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leccion")
	}

	exists, err := s.repo.Exists(ctx, req.AlumnoID, req.LeccionID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check progress")
	}
	if exists {
		return 0, appErrors.Clone(appErrors.ErrConflict, "el alumno ya tiene progreso en esta leccion")
	}

	id, err := s.repo.Create(ctx, req.AlumnoID, req.LeccionID, req.TotalPreguntas)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create progress")
	}
	return id, nil
}

// RecordAnswer applies an answer submission to a progress row. Completion is
// recomputed here from the answered count, never taken from the client: the
// lesson flips to COMPLETADA exactly when every question has been answered,
// and a completed lesson never reverts. When the lesson completes, the owning
// module's aggregate is recomputed in the same transaction.
func (s *ProgressService) RecordAnswer(ctx context.Context, id int64, req models.UpdateProgressRequest) (*models.LessonProgress, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "progreso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load progress")
	}

	answered := req.TotalRespondidas
	if answered > current.TotalPreguntas {
		answered = current.TotalPreguntas
	}
	if answered < current.TotalRespondidas {
		answered = current.TotalRespondidas
	}

	estado := models.LessonInProgress
	completedAt := current.FechaCompletado
	if current.Estado == models.LessonCompleted {
		estado = models.LessonCompleted
	} else if answered >= current.TotalPreguntas {
		estado = models.LessonCompleted
		now := s.now().UTC()
		completedAt = &now
	}

	lastQuestion := req.UltimaPregunta
	if lastQuestion == nil {
		lastQuestion = current.UltimaPregunta
	}

	if err := s.repo.RecordAnswer(ctx, id, answered, lastQuestion, estado, completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "progreso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record answer")
	}

	updated := *current
	updated.TotalRespondidas = answered
	updated.UltimaPregunta = lastQuestion
	updated.Estado = estado
	updated.FechaCompletado = completedAt
	return &updated, nil
}
