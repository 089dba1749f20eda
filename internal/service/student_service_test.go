package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type fakeStudentRepo struct {
	alumnos       map[int64]*models.AlumnoDetail
	progressCount map[int64]int
	deleted       []int64
	stats         *models.AlumnoStats
	porPais       []models.PaisDistribution
}

func (f *fakeStudentRepo) List(_ context.Context) ([]models.AlumnoDetail, error) {
	out := make([]models.AlumnoDetail, 0, len(f.alumnos))
	for _, a := range f.alumnos {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id int64) (*models.AlumnoDetail, error) {
	if a, ok := f.alumnos[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Create(_ context.Context, _ *models.CreateAlumnoRequest) (int64, error) {
	return int64(len(f.alumnos) + 1), nil
}

func (f *fakeStudentRepo) Update(_ context.Context, id int64, _ *models.UpdateAlumnoRequest) (int64, error) {
	if _, ok := f.alumnos[id]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeStudentRepo) ToggleEstado(_ context.Context, id int64) (int64, error) {
	if _, ok := f.alumnos[id]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeStudentRepo) CountProgress(_ context.Context, id int64) (int, error) {
	return f.progressCount[id], nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.alumnos[id]; !ok {
		return 0, nil
	}
	delete(f.alumnos, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeStudentRepo) Stats(_ context.Context) (*models.AlumnoStats, error) {
	return f.stats, nil
}

func (f *fakeStudentRepo) CountByPais(_ context.Context) ([]models.PaisDistribution, error) {
	return f.porPais, nil
}

func (f *fakeStudentRepo) FindPerfilByUsuarioID(_ context.Context, usuarioID int64) (*models.AlumnoPerfil, error) {
	for _, a := range f.alumnos {
		if a.UsuarioID != nil && *a.UsuarioID == usuarioID {
			return &models.AlumnoPerfil{AlumnoID: a.AlumnoID, Nombre: a.Nombre, Email: a.Email}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newStudentRepoWith(ids ...int64) *fakeStudentRepo {
	repo := &fakeStudentRepo{alumnos: map[int64]*models.AlumnoDetail{}, progressCount: map[int64]int{}}
	for _, id := range ids {
		repo.alumnos[id] = &models.AlumnoDetail{Alumno: models.Alumno{AlumnoID: id, Nombre: "Ana", Email: "ana@academia.com", Estado: models.EstadoActivo}}
	}
	return repo
}

func TestStudentServiceDeleteBlockedByProgress(t *testing.T) {
	repo := newStudentRepoWith(1)
	repo.progressCount[1] = 3
	svc := NewStudentService(repo, nil, nil)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := newStudentRepoWith(1)
	svc := NewStudentService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestStudentServiceDeleteMissing(t *testing.T) {
	svc := NewStudentService(newStudentRepoWith(), nil, nil)

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	svc := NewStudentService(newStudentRepoWith(), nil, nil)

	err := svc.Update(context.Background(), 99, models.UpdateAlumnoRequest{Nombre: "Ana", Email: "ana@academia.com", PaisID: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceCreateValidatesPayload(t *testing.T) {
	svc := NewStudentService(newStudentRepoWith(), nil, nil)

	_, err := svc.Create(context.Background(), models.CreateAlumnoRequest{Nombre: "Ana"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServicePerfil(t *testing.T) {
	repo := newStudentRepoWith(1)
	usuarioID := int64(10)
	repo.alumnos[1].UsuarioID = &usuarioID
	svc := NewStudentService(repo, nil, nil)

	perfil, err := svc.Perfil(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), perfil.AlumnoID)

	_, err = svc.Perfil(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
