package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// UserRepository provides database access for accounts and credentials.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmailWithRole returns a user joined with its role name.
func (r *UserRepository) FindByEmailWithRole(ctx context.Context, email string) (*models.UserWithRole, error) {
	const query = `SELECT u.usuario_id, u.nombre, u.email, u.password_hash, u.rol_id, u.pais_id, u.estado, u.reset_token, u.reset_token_expires, u.fecha_registro, r.nombre_rol
		FROM usuarios u
		JOIN roles r ON u.rol_id = r.rol_id
		WHERE u.email = $1 LIMIT 1`
	var user models.UserWithRole
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT usuario_id, nombre, email, password_hash, rol_id, pais_id, estado, reset_token, reset_token_expires, fecha_registro FROM usuarios WHERE usuario_id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// CreateStudentAccount inserts the usuarios row and its linked alumnos row
// inside one transaction. Either both rows persist or neither does.
func (r *UserRepository) CreateStudentAccount(ctx context.Context, user *models.User, telefono string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin register tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertUser = `INSERT INTO usuarios (nombre, email, password_hash, pais_id, rol_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING usuario_id`
	var usuarioID int64
	if err := tx.GetContext(ctx, &usuarioID, insertUser, user.Nombre, user.Email, user.PasswordHash, user.PaisID, user.RolID); err != nil {
		return 0, fmt.Errorf("insert usuario: %w", err)
	}

	const insertAlumno = `INSERT INTO alumnos (usuario_id, nombre, email, telefono, pais_id)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertAlumno, usuarioID, user.Nombre, user.Email, telefono, user.PaisID); err != nil {
		return 0, fmt.Errorf("insert alumno: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit register tx: %w", err)
	}
	return usuarioID, nil
}

// List returns users joined with role and country names.
func (r *UserRepository) List(ctx context.Context) ([]models.UserDetail, error) {
	const query = `SELECT u.usuario_id, u.nombre, u.email, u.estado, r.nombre_rol, p.nombre_pais
		FROM usuarios u
		JOIN roles r ON u.rol_id = r.rol_id
		LEFT JOIN paises p ON u.pais_id = p.pais_id
		ORDER BY u.nombre`
	var users []models.UserDetail
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindDetailByID returns one user joined with role and country names.
func (r *UserRepository) FindDetailByID(ctx context.Context, id int64) (*models.UserDetail, error) {
	const query = `SELECT u.usuario_id, u.nombre, u.email, u.estado, r.nombre_rol, p.nombre_pais
		FROM usuarios u
		JOIN roles r ON u.rol_id = r.rol_id
		LEFT JOIN paises p ON u.pais_id = p.pais_id
		WHERE u.usuario_id = $1`
	var user models.UserDetail
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user detail: %w", err)
	}
	return &user, nil
}

// Update mutates profile fields, returning the number of affected rows.
func (r *UserRepository) Update(ctx context.Context, id int64, nombre, email string, paisID int64) (int64, error) {
	const query = `UPDATE usuarios SET nombre = $2, email = $3, pais_id = $4 WHERE usuario_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, nombre, email, paisID)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	return res.RowsAffected()
}

// Deactivate flips the user to INACTIVO. Users are never hard-deleted.
func (r *UserRepository) Deactivate(ctx context.Context, id int64) (int64, error) {
	const query = `UPDATE usuarios SET estado = 'INACTIVO' WHERE usuario_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("deactivate user: %w", err)
	}
	return res.RowsAffected()
}

// ToggleEstado flips between ACTIVO and INACTIVO.
func (r *UserRepository) ToggleEstado(ctx context.Context, id int64) (int64, error) {
	const query = `UPDATE usuarios SET estado = CASE WHEN estado = 'ACTIVO' THEN 'INACTIVO' ELSE 'ACTIVO' END WHERE usuario_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("toggle user estado: %w", err)
	}
	return res.RowsAffected()
}

// SetResetToken stores the reset credential and its expiry on the user row.
func (r *UserRepository) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	const query = `UPDATE usuarios SET reset_token = $2, reset_token_expires = $3 WHERE usuario_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, token, expires); err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// FindByValidResetToken returns the user holding the token, provided the
// token has not expired and the account is still active.
func (r *UserRepository) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	const query = `SELECT usuario_id, nombre, email, password_hash, rol_id, pais_id, estado, reset_token, reset_token_expires, fecha_registro
		FROM usuarios
		WHERE reset_token = $1 AND reset_token_expires > $2 AND estado = 'ACTIVO' LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, token, now); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}
	return &user, nil
}

// UpdatePasswordAndClearReset replaces the hash and consumes the token in a
// single statement so the token cannot be replayed.
func (r *UserRepository) UpdatePasswordAndClearReset(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE usuarios SET password_hash = $2, reset_token = NULL, reset_token_expires = NULL WHERE usuario_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
