package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

// uniqueViolation is the Postgres error code for duplicate unique keys.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type countryRepository interface {
	ListContinentes(ctx context.Context) ([]models.Continente, error)
	CreateContinente(ctx context.Context, nombre string) (int64, error)
	BatchCreateContinentes(ctx context.Context, continentes []models.CreateContinenteRequest) (*models.BatchResult, error)
	CountPaisesByContinente(ctx context.Context, id int64) (int, error)
	DeleteContinente(ctx context.Context, id int64) (int64, error)
	ListPaises(ctx context.Context) ([]models.Pais, error)
	ListPaisesByContinente(ctx context.Context, continenteID int64) ([]models.Pais, error)
	ContinenteExists(ctx context.Context, id int64) (bool, error)
	CreatePais(ctx context.Context, req *models.CreatePaisRequest) (int64, error)
	BatchCreatePaises(ctx context.Context, paises []models.CreatePaisRequest) (*models.BatchResult, error)
	CountPaisReferences(ctx context.Context, id int64) (int, error)
	DeletePais(ctx context.Context, id int64) (int64, error)
}

// CountryService provides continent and country reference-data use cases.
type CountryService struct {
	repo      countryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCountryService constructs a CountryService instance.
func NewCountryService(repo countryRepository, validate *validator.Validate, logger *zap.Logger) *CountryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CountryService{repo: repo, validator: validate, logger: logger}
}

// ListContinentes returns all continents.
func (s *CountryService) ListContinentes(ctx context.Context) ([]models.Continente, error) {
	continentes, err := s.repo.ListContinentes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list continentes")
	}
	return continentes, nil
}

// CreateContinente inserts one continent.
func (s *CountryService) CreateContinente(ctx context.Context, req models.CreateContinenteRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid continente payload")
	}
	id, err := s.repo.CreateContinente(ctx, req.NombreContinente)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, appErrors.Clone(appErrors.ErrConflict, "el continente ya existe")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create continente")
	}
	return id, nil
}

// BatchCreateContinentes inserts several continents with a per-row outcome.
func (s *CountryService) BatchCreateContinentes(ctx context.Context, req models.BatchContinentesRequest) (*models.BatchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid continentes payload")
	}
	result, err := s.repo.BatchCreateContinentes(ctx, req.Continentes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert continentes")
	}
	return result, nil
}

// DeleteContinente removes a continent unless countries reference it.
func (s *CountryService) DeleteContinente(ctx context.Context, id int64) error {
	count, err := s.repo.CountPaisesByContinente(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check continente")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el continente tiene paises asociados")
	}
	affected, err := s.repo.DeleteContinente(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete continente")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "continente no encontrado")
	}
	return nil
}

// ListPaises returns all countries, optionally filtered by continent.
func (s *CountryService) ListPaises(ctx context.Context, continenteID *int64) ([]models.Pais, error) {
	var (
		paises []models.Pais
		err    error
	)
	if continenteID != nil {
		paises, err = s.repo.ListPaisesByContinente(ctx, *continenteID)
	} else {
		paises, err = s.repo.ListPaises(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list paises")
	}
	return paises, nil
}

// CreatePais inserts one country under an existing continent.
func (s *CountryService) CreatePais(ctx context.Context, req models.CreatePaisRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pais payload")
	}
	exists, err := s.repo.ContinenteExists(ctx, req.ContinenteID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check continente")
	}
	if !exists {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "continente no encontrado")
	}
	id, err := s.repo.CreatePais(ctx, &req)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, appErrors.Clone(appErrors.ErrConflict, "el pais ya existe en este continente")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create pais")
	}
	return id, nil
}

// BatchCreatePaises inserts several countries with a per-row outcome.
func (s *CountryService) BatchCreatePaises(ctx context.Context, req models.BatchPaisesRequest) (*models.BatchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid paises payload")
	}
	result, err := s.repo.BatchCreatePaises(ctx, req.Paises)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert paises")
	}
	return result, nil
}

// DeletePais removes a country unless students or users reference it.
func (s *CountryService) DeletePais(ctx context.Context, id int64) error {
	count, err := s.repo.CountPaisReferences(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check pais")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "el pais tiene alumnos o usuarios asociados")
	}
	affected, err := s.repo.DeletePais(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pais")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "pais no encontrado")
	}
	return nil
}
