package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// RoleRepository reads the roles reference table.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository constructs the repository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// List returns all roles ordered by name.
func (r *RoleRepository) List(ctx context.Context) ([]models.RoleRecord, error) {
	const query = `SELECT rol_id, nombre_rol FROM roles ORDER BY nombre_rol`
	var roles []models.RoleRecord
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// FindIDByName resolves a role name to its id.
func (r *RoleRepository) FindIDByName(ctx context.Context, name string) (int64, error) {
	const query = `SELECT rol_id FROM roles WHERE nombre_rol = $1 LIMIT 1`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, name); err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}
		return 0, fmt.Errorf("find role id: %w", err)
	}
	return id, nil
}
