package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type roleRepository interface {
	List(ctx context.Context) ([]models.RoleRecord, error)
}

// RoleService exposes the roles reference table.
type RoleService struct {
	repo   roleRepository
	logger *zap.Logger
}

// NewRoleService constructs a RoleService instance.
func NewRoleService(repo roleRepository, logger *zap.Logger) *RoleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{repo: repo, logger: logger}
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]models.RoleRecord, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roles")
	}
	return roles, nil
}
