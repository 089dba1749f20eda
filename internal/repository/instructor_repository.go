package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// InstructorRepository provides database access for instructor records.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs the repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns all instructors joined with their user identity.
func (r *InstructorRepository) List(ctx context.Context) ([]models.InstructorDetail, error) {
	const query = `SELECT i.instructor_id, i.usuario_id, i.especialidad, i.biografia, u.nombre, u.email, u.estado
		FROM instructores i
		INNER JOIN usuarios u ON i.usuario_id = u.usuario_id
		ORDER BY u.nombre`
	var instructores []models.InstructorDetail
	if err := r.db.SelectContext(ctx, &instructores, query); err != nil {
		return nil, fmt.Errorf("list instructores: %w", err)
	}
	return instructores, nil
}

// FindByID returns one instructor with user context.
func (r *InstructorRepository) FindByID(ctx context.Context, id int64) (*models.InstructorDetail, error) {
	const query = `SELECT i.instructor_id, i.usuario_id, i.especialidad, i.biografia, u.nombre, u.email, u.estado
		FROM instructores i
		INNER JOIN usuarios u ON i.usuario_id = u.usuario_id
		WHERE i.instructor_id = $1`
	var instructor models.InstructorDetail
	if err := r.db.GetContext(ctx, &instructor, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find instructor: %w", err)
	}
	return &instructor, nil
}

// ExistsForUsuario reports whether the user is already an instructor.
func (r *InstructorRepository) ExistsForUsuario(ctx context.Context, usuarioID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM instructores WHERE usuario_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, usuarioID); err != nil {
		return false, fmt.Errorf("check instructor exists: %w", err)
	}
	return count > 0, nil
}

// Create links an existing user as instructor.
func (r *InstructorRepository) Create(ctx context.Context, req *models.CreateInstructorRequest) (int64, error) {
	const query = `INSERT INTO instructores (usuario_id, especialidad, biografia)
		VALUES ($1, $2, $3) RETURNING instructor_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, req.UsuarioID, req.Especialidad, req.Biografia); err != nil {
		return 0, fmt.Errorf("create instructor: %w", err)
	}
	return id, nil
}

// Update mutates the teaching fields, returning affected rows.
func (r *InstructorRepository) Update(ctx context.Context, id int64, req *models.UpdateInstructorRequest) (int64, error) {
	const query = `UPDATE instructores SET especialidad = $2, biografia = $3 WHERE instructor_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, req.Especialidad, req.Biografia)
	if err != nil {
		return 0, fmt.Errorf("update instructor: %w", err)
	}
	return res.RowsAffected()
}

// CountModulos returns how many modules the instructor owns.
func (r *InstructorRepository) CountModulos(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM modulos WHERE instructor_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count instructor modulos: %w", err)
	}
	return count, nil
}

// Delete removes the instructor row. Callers must check CountModulos first.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM instructores WHERE instructor_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete instructor: %w", err)
	}
	return res.RowsAffected()
}
