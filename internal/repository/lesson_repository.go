package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// LessonRepository provides database access for lessons.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs the repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// List returns all lessons joined with module and instructor names.
func (r *LessonRepository) List(ctx context.Context) ([]models.LeccionDetail, error) {
	const query = `SELECT l.leccion_id, l.titulo_leccion, l.contenido, l.modulo_id, l.estado,
			m.nombre AS nombre_modulo, u.nombre AS nombre_instructor
		FROM lecciones l
		INNER JOIN modulos m ON l.modulo_id = m.modulo_id
		LEFT JOIN instructores i ON m.instructor_id = i.instructor_id
		LEFT JOIN usuarios u ON i.usuario_id = u.usuario_id
		ORDER BY m.orden, l.orden`
	var lecciones []models.LeccionDetail
	if err := r.db.SelectContext(ctx, &lecciones, query); err != nil {
		return nil, fmt.Errorf("list lecciones: %w", err)
	}
	return lecciones, nil
}

// ListByModulo returns the lessons of one module in order.
func (r *LessonRepository) ListByModulo(ctx context.Context, moduloID int64) ([]models.Leccion, error) {
	const query = `SELECT leccion_id, modulo_id, titulo_leccion, contenido, orden, estado
		FROM lecciones WHERE modulo_id = $1 ORDER BY orden`
	var lecciones []models.Leccion
	if err := r.db.SelectContext(ctx, &lecciones, query, moduloID); err != nil {
		return nil, fmt.Errorf("list lecciones by modulo: %w", err)
	}
	return lecciones, nil
}

// FindByID returns one lesson.
func (r *LessonRepository) FindByID(ctx context.Context, id int64) (*models.Leccion, error) {
	const query = `SELECT leccion_id, modulo_id, titulo_leccion, contenido, orden, estado
		FROM lecciones WHERE leccion_id = $1`
	var leccion models.Leccion
	if err := r.db.GetContext(ctx, &leccion, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find leccion: %w", err)
	}
	return &leccion, nil
}

// ModuloExists reports whether the target module is present.
func (r *LessonRepository) ModuloExists(ctx context.Context, moduloID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM modulos WHERE modulo_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, moduloID); err != nil {
		return false, fmt.Errorf("check modulo exists: %w", err)
	}
	return count > 0, nil
}

// Create inserts a lesson. A zero orden places it at the end of the module.
func (r *LessonRepository) Create(ctx context.Context, req *models.CreateLeccionRequest) (int64, error) {
	const query = `INSERT INTO lecciones (modulo_id, titulo_leccion, contenido, orden)
		VALUES ($1, $2, $3, CASE WHEN $4 > 0 THEN $4 ELSE (SELECT COALESCE(MAX(orden), 0) + 1 FROM lecciones WHERE modulo_id = $1) END)
		RETURNING leccion_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, req.ModuloID, req.Titulo, req.Contenido, req.Orden); err != nil {
		return 0, fmt.Errorf("create leccion: %w", err)
	}
	return id, nil
}

// Update mutates lesson fields, returning affected rows.
func (r *LessonRepository) Update(ctx context.Context, id int64, req *models.UpdateLeccionRequest) (int64, error) {
	const query = `UPDATE lecciones SET titulo_leccion = $2, contenido = $3, modulo_id = $4, orden = $5
		WHERE leccion_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, req.Titulo, req.Contenido, req.ModuloID, req.Orden)
	if err != nil {
		return 0, fmt.Errorf("update leccion: %w", err)
	}
	return res.RowsAffected()
}

// CountDependents returns how many questions and progress rows reference the
// lesson. Either blocks deletion.
func (r *LessonRepository) CountDependents(ctx context.Context, id int64) (int, error) {
	const query = `SELECT (SELECT COUNT(*) FROM preguntas WHERE leccion_id = $1)
		+ (SELECT COUNT(*) FROM progreso_lecciones WHERE leccion_id = $1)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count leccion dependents: %w", err)
	}
	return count, nil
}

// Delete removes the lesson row. Callers must check CountDependents first.
func (r *LessonRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM lecciones WHERE leccion_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete leccion: %w", err)
	}
	return res.RowsAffected()
}
