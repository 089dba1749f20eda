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

type questionRepository interface {
	List(ctx context.Context) ([]models.PreguntaDetail, error)
	ListByLeccion(ctx context.Context, leccionID int64) ([]models.Pregunta, error)
	FindByID(ctx context.Context, id int64) (*models.Pregunta, error)
	LeccionExists(ctx context.Context, leccionID int64) (bool, error)
	Create(ctx context.Context, req *models.CreatePreguntaRequest) (int64, error)
	Update(ctx context.Context, id int64, req *models.UpdatePreguntaRequest) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// QuestionService provides lesson question use cases.
type QuestionService struct {
	repo      questionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(repo questionRepository, validate *validator.Validate, logger *zap.Logger) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &QuestionService{repo: repo, validator: validate, logger: logger}
}

// List returns all questions with lesson and module context.
func (s *QuestionService) List(ctx context.Context) ([]models.PreguntaDetail, error) {
	preguntas, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list preguntas")
	}
	return preguntas, nil
}

// ListByLeccion returns the active questions of one lesson in order.
func (s *QuestionService) ListByLeccion(ctx context.Context, leccionID int64) ([]models.Pregunta, error) {
	exists, err := s.repo.LeccionExists(ctx, leccionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check leccion")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "leccion no encontrada")
	}
	preguntas, err := s.repo.ListByLeccion(ctx, leccionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list preguntas")
	}
	return preguntas, nil
}

// Get returns one question.
func (s *QuestionService) Get(ctx context.Context, id int64) (*models.Pregunta, error) {
	pregunta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pregunta no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pregunta")
	}
	return pregunta, nil
}

// Create inserts a question inside an existing lesson.
func (s *QuestionService) Create(ctx context.Context, req models.CreatePreguntaRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pregunta payload")
	}
	exists, err := s.repo.LeccionExists(ctx, req.LeccionID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check leccion")
	}
	if !exists {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "leccion no encontrada")
	}
	id, err := s.repo.Create(ctx, &req)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create pregunta")
	}
	return id, nil
}

// Update mutates question fields.
func (s *QuestionService) Update(ctx context.Context, id int64, req models.UpdatePreguntaRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pregunta payload")
	}
	affected, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pregunta")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "pregunta no encontrada")
	}
	return nil
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pregunta")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "pregunta no encontrada")
	}
	return nil
}
