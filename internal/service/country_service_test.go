package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type fakeCountryRepo struct {
	continentes   map[int64]bool
	createErr     error
	createPaisErr error
	paisReferences     int
	paisesEnContinente int
}

func (f *fakeCountryRepo) ListContinentes(_ context.Context) ([]models.Continente, error) {
	return nil, nil
}

func (f *fakeCountryRepo) CreateContinente(_ context.Context, _ string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return 1, nil
}

func (f *fakeCountryRepo) BatchCreateContinentes(_ context.Context, _ []models.CreateContinenteRequest) (*models.BatchResult, error) {
	return &models.BatchResult{}, nil
}

func (f *fakeCountryRepo) CountPaisesByContinente(_ context.Context, _ int64) (int, error) {
	return f.paisesEnContinente, nil
}

func (f *fakeCountryRepo) DeleteContinente(_ context.Context, _ int64) (int64, error) {
	return 1, nil
}

func (f *fakeCountryRepo) ListPaises(_ context.Context) ([]models.Pais, error) { return nil, nil }

func (f *fakeCountryRepo) ListPaisesByContinente(_ context.Context, _ int64) ([]models.Pais, error) {
	return nil, nil
}

func (f *fakeCountryRepo) ContinenteExists(_ context.Context, id int64) (bool, error) {
	return f.continentes[id], nil
}

func (f *fakeCountryRepo) CreatePais(_ context.Context, _ *models.CreatePaisRequest) (int64, error) {
	if f.createPaisErr != nil {
		return 0, f.createPaisErr
	}
	return 1, nil
}

func (f *fakeCountryRepo) BatchCreatePaises(_ context.Context, _ []models.CreatePaisRequest) (*models.BatchResult, error) {
	return &models.BatchResult{}, nil
}

func (f *fakeCountryRepo) CountPaisReferences(_ context.Context, _ int64) (int, error) {
	return f.paisReferences, nil
}

func (f *fakeCountryRepo) DeletePais(_ context.Context, _ int64) (int64, error) { return 1, nil }

func wrappedUniqueViolation(op string) error {
	return fmt.Errorf("%s: %w", op, &pq.Error{Code: "23505"})
}

func TestCountryServiceCreateContinenteDuplicate(t *testing.T) {
	repo := &fakeCountryRepo{createErr: wrappedUniqueViolation("create continente")}
	svc := NewCountryService(repo, nil, nil)

	_, err := svc.CreateContinente(context.Background(), models.CreateContinenteRequest{NombreContinente: "America"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCountryServiceCreatePaisDuplicate(t *testing.T) {
	repo := &fakeCountryRepo{
		continentes:   map[int64]bool{1: true},
		createPaisErr: wrappedUniqueViolation("create pais"),
	}
	svc := NewCountryService(repo, nil, nil)

	_, err := svc.CreatePais(context.Background(), models.CreatePaisRequest{NombrePais: "Chile", ContinenteID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCountryServiceCreatePaisUnknownContinente(t *testing.T) {
	repo := &fakeCountryRepo{continentes: map[int64]bool{}}
	svc := NewCountryService(repo, nil, nil)

	_, err := svc.CreatePais(context.Background(), models.CreatePaisRequest{NombrePais: "Chile", ContinenteID: 9})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCountryServiceDeleteContinenteBlockedByPaises(t *testing.T) {
	repo := &fakeCountryRepo{paisesEnContinente: 2}
	svc := NewCountryService(repo, nil, nil)

	err := svc.DeleteContinente(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}
