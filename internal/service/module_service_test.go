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

type fakeModuleRepo struct {
	modulos      map[int64]*models.Modulo
	leccionCount map[int64]int
	deleted      []int64
}

func (f *fakeModuleRepo) List(_ context.Context) ([]models.Modulo, error) {
	out := make([]models.Modulo, 0, len(f.modulos))
	for _, m := range f.modulos {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeModuleRepo) FindByID(_ context.Context, id int64) (*models.Modulo, error) {
	if m, ok := f.modulos[id]; ok {
		return m, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeModuleRepo) Create(_ context.Context, _ *models.CreateModuloRequest) (int64, error) {
	return int64(len(f.modulos) + 1), nil
}

func (f *fakeModuleRepo) Update(_ context.Context, id int64, _ *models.UpdateModuloRequest) (int64, error) {
	if _, ok := f.modulos[id]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeModuleRepo) CountLecciones(_ context.Context, id int64) (int, error) {
	return f.leccionCount[id], nil
}

func (f *fakeModuleRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.modulos[id]; !ok {
		return 0, nil
	}
	delete(f.modulos, id)
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeModuleRepo) ListConLecciones(_ context.Context) ([]models.ModuloConLecciones, error) {
	return nil, nil
}

type fakeModuleInstructors struct {
	ids map[int64]bool
}

func (f *fakeModuleInstructors) FindByID(_ context.Context, id int64) (*models.InstructorDetail, error) {
	if f.ids[id] {
		return &models.InstructorDetail{}, nil
	}
	return nil, sql.ErrNoRows
}

func newModuleRepoWith(ids ...int64) *fakeModuleRepo {
	repo := &fakeModuleRepo{modulos: map[int64]*models.Modulo{}, leccionCount: map[int64]int{}}
	for _, id := range ids {
		repo.modulos[id] = &models.Modulo{ModuloID: id, Nombre: "Modulo 1", Estado: models.EstadoActivo}
	}
	return repo
}

func TestModuleServiceDeleteBlockedByLessons(t *testing.T) {
	repo := newModuleRepoWith(1)
	repo.leccionCount[1] = 3
	svc := NewModuleService(repo, &fakeModuleInstructors{}, nil, nil)

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)
}

func TestModuleServiceDelete(t *testing.T) {
	repo := newModuleRepoWith(1)
	svc := NewModuleService(repo, &fakeModuleInstructors{}, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestModuleServiceDeleteMissing(t *testing.T) {
	svc := NewModuleService(newModuleRepoWith(), &fakeModuleInstructors{}, nil, nil)

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestModuleServiceCreateRequiresInstructor(t *testing.T) {
	repo := newModuleRepoWith()
	svc := NewModuleService(repo, &fakeModuleInstructors{ids: map[int64]bool{2: true}}, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateModuloRequest{Nombre: "Modulo 1", InstructorID: 9})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	id, err := svc.Create(context.Background(), models.CreateModuloRequest{Nombre: "Modulo 1", InstructorID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}
