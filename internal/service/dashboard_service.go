package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

const adminDashboardCacheKey = "dashboard:admin"

type dashboardStudentRepository interface {
	Stats(ctx context.Context) (*models.AlumnoStats, error)
	CountByPais(ctx context.Context) ([]models.PaisDistribution, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the admin dashboard payload, caching it for the
// configured TTL.
type DashboardService struct {
	alumnos dashboardStudentRepository
	cache   *CacheService
	logger  *zap.Logger
	cfg     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(alumnos dashboardStudentRepository, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{alumnos: alumnos, cache: cache, logger: logger, cfg: cfg}
}

// Admin returns the admin dashboard payload and whether it was served from
// cache.
func (s *DashboardService) Admin(ctx context.Context) (*models.AdminDashboard, bool, error) {
	if s.cache.Enabled() {
		var cached models.AdminDashboard
		hit, err := s.cache.Get(ctx, adminDashboardCacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	stats, err := s.alumnos.Stats(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno stats")
	}
	porPais, err := s.alumnos.CountByPais(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumno distribution")
	}

	dashboard := &models.AdminDashboard{Alumnos: *stats, PorPais: porPais}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, adminDashboardCacheKey, dashboard, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache admin dashboard", zap.Error(err))
		}
	}
	return dashboard, false, nil
}

// Invalidate drops the cached dashboard. Called after student mutations.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, adminDashboardCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
