package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type fakeCacheRepo struct {
	entries map[string][]byte
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = payload
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.deleted = append(f.deleted, pattern)
	for key := range f.entries {
		delete(f.entries, key)
	}
	return nil
}

type fakeDashboardStudents struct {
	stats   *models.AlumnoStats
	porPais []models.PaisDistribution
	calls   int
}

func (f *fakeDashboardStudents) Stats(_ context.Context) (*models.AlumnoStats, error) {
	f.calls++
	return f.stats, nil
}

func (f *fakeDashboardStudents) CountByPais(_ context.Context) ([]models.PaisDistribution, error) {
	return f.porPais, nil
}

func TestDashboardServiceCachesPayload(t *testing.T) {
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	students := &fakeDashboardStudents{
		stats:   &models.AlumnoStats{Total: 10, Activos: 8, Inactivos: 2, TotalPaises: 3},
		porPais: []models.PaisDistribution{{Pais: "Chile", Cantidad: 5}},
	}
	svc := NewDashboardService(students, cache, nil, DashboardServiceConfig{CacheTTL: time.Minute})

	first, cached, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 10, first.Alumnos.Total)
	assert.Equal(t, 1, students.calls)

	second, cached, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.Alumnos, second.Alumnos)
	assert.Equal(t, 1, students.calls)
}

func TestDashboardServiceInvalidateDropsCache(t *testing.T) {
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	students := &fakeDashboardStudents{stats: &models.AlumnoStats{Total: 1}, porPais: nil}
	svc := NewDashboardService(students, cache, nil, DashboardServiceConfig{})

	_, _, err := svc.Admin(context.Background())
	require.NoError(t, err)
	svc.Invalidate(context.Background())

	_, cached, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, students.calls)
	assert.Contains(t, cacheRepo.deleted, adminDashboardCacheKey)
}

func TestDashboardServiceWorksWithoutCache(t *testing.T) {
	cache := NewCacheService(nil, nil, time.Minute, nil, false)
	students := &fakeDashboardStudents{stats: &models.AlumnoStats{Total: 4}, porPais: nil}
	svc := NewDashboardService(students, cache, nil, DashboardServiceConfig{})

	dashboard, cached, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 4, dashboard.Alumnos.Total)
}
