package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// StudentRepository provides database access for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students joined with their country name.
func (r *StudentRepository) List(ctx context.Context) ([]models.AlumnoDetail, error) {
	const query = `SELECT a.alumno_id, a.usuario_id, a.nombre, a.email, a.telefono, a.pais_id, a.estado, a.fecha_registro, p.nombre_pais
		FROM alumnos a
		LEFT JOIN paises p ON a.pais_id = p.pais_id
		ORDER BY a.nombre`
	var alumnos []models.AlumnoDetail
	if err := r.db.SelectContext(ctx, &alumnos, query); err != nil {
		return nil, fmt.Errorf("list alumnos: %w", err)
	}
	return alumnos, nil
}

// FindByID returns one student with country context.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.AlumnoDetail, error) {
	const query = `SELECT a.alumno_id, a.usuario_id, a.nombre, a.email, a.telefono, a.pais_id, a.estado, a.fecha_registro, p.nombre_pais
		FROM alumnos a
		LEFT JOIN paises p ON a.pais_id = p.pais_id
		WHERE a.alumno_id = $1`
	var alumno models.AlumnoDetail
	if err := r.db.GetContext(ctx, &alumno, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find alumno: %w", err)
	}
	return &alumno, nil
}

// Create inserts a standalone student record (no login account).
func (r *StudentRepository) Create(ctx context.Context, req *models.CreateAlumnoRequest) (int64, error) {
	const query = `INSERT INTO alumnos (nombre, email, telefono, pais_id)
		VALUES ($1, $2, $3, $4) RETURNING alumno_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, req.Nombre, req.Email, req.Telefono, req.PaisID); err != nil {
		return 0, fmt.Errorf("create alumno: %w", err)
	}
	return id, nil
}

// Update mutates the student row and, when the student has a linked account,
// mirrors nombre/email/pais onto the usuarios row in the same transaction.
func (r *StudentRepository) Update(ctx context.Context, id int64, req *models.UpdateAlumnoRequest) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin alumno tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateAlumno = `UPDATE alumnos SET nombre = $2, email = $3, telefono = $4, pais_id = $5 WHERE alumno_id = $1`
	res, err := tx.ExecContext(ctx, updateAlumno, id, req.Nombre, req.Email, req.Telefono, req.PaisID)
	if err != nil {
		return 0, fmt.Errorf("update alumno: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update alumno rows: %w", err)
	}
	if affected == 0 {
		return 0, nil
	}

	const mirrorUser = `UPDATE usuarios SET nombre = $2, email = $3, pais_id = $4
		WHERE usuario_id = (SELECT usuario_id FROM alumnos WHERE alumno_id = $1 AND usuario_id IS NOT NULL)`
	if _, err := tx.ExecContext(ctx, mirrorUser, id, req.Nombre, req.Email, req.PaisID); err != nil {
		return 0, fmt.Errorf("mirror alumno to usuario: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit alumno tx: %w", err)
	}
	return affected, nil
}

// ToggleEstado flips a student between ACTIVO and INACTIVO.
func (r *StudentRepository) ToggleEstado(ctx context.Context, id int64) (int64, error) {
	const query = `UPDATE alumnos SET estado = CASE WHEN estado = 'ACTIVO' THEN 'INACTIVO' ELSE 'ACTIVO' END WHERE alumno_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("toggle alumno estado: %w", err)
	}
	return res.RowsAffected()
}

// CountProgress returns how many lesson progress rows reference the student.
func (r *StudentRepository) CountProgress(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM progreso_lecciones WHERE alumno_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count alumno progress: %w", err)
	}
	return count, nil
}

// Delete removes the student row. Callers must check CountProgress first.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM alumnos WHERE alumno_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete alumno: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the aggregate counters for the admin dashboard. COALESCE keeps
// the counters at zero on an empty table.
func (r *StudentRepository) Stats(ctx context.Context) (*models.AlumnoStats, error) {
	const query = `SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN estado = 'ACTIVO' THEN 1 ELSE 0 END), 0) AS activos,
			COALESCE(SUM(CASE WHEN estado = 'INACTIVO' THEN 1 ELSE 0 END), 0) AS inactivos,
			COUNT(DISTINCT pais_id) AS total_paises
		FROM alumnos`
	var stats models.AlumnoStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("alumno stats: %w", err)
	}
	return &stats, nil
}

// CountByPais returns the per-country student distribution, largest first.
func (r *StudentRepository) CountByPais(ctx context.Context) ([]models.PaisDistribution, error) {
	const query = `SELECT p.nombre_pais AS pais, COUNT(a.alumno_id) AS cantidad
		FROM alumnos a
		INNER JOIN paises p ON a.pais_id = p.pais_id
		GROUP BY p.nombre_pais
		ORDER BY cantidad DESC`
	var rows []models.PaisDistribution
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("alumnos por pais: %w", err)
	}
	return rows, nil
}

// FindPerfilByUsuarioID returns the student profile linked to an account.
func (r *StudentRepository) FindPerfilByUsuarioID(ctx context.Context, usuarioID int64) (*models.AlumnoPerfil, error) {
	const query = `SELECT a.alumno_id, a.nombre, a.email, a.telefono, a.pais_id, a.estado, a.fecha_registro, p.nombre_pais
		FROM alumnos a
		LEFT JOIN paises p ON a.pais_id = p.pais_id
		WHERE a.usuario_id = $1`
	var perfil models.AlumnoPerfil
	if err := r.db.GetContext(ctx, &perfil, query, usuarioID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find alumno perfil: %w", err)
	}
	return &perfil, nil
}
