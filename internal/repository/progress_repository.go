package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// ProgressRepository persists lesson progress and the derived module
// aggregate.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository constructs the repository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ListAll returns every student's lesson progress with student, module and
// lesson context.
func (r *ProgressRepository) ListAll(ctx context.Context) ([]models.ProgressRow, error) {
	const query = `SELECT pl.progreso_leccion_id, a.alumno_id, a.nombre AS nombre_alumno,
			m.modulo_id, m.nombre AS nombre_modulo, l.leccion_id, l.titulo_leccion,
			pl.total_preguntas_respondidas, pl.total_preguntas, pl.estado, pl.fecha_inicio, pl.fecha_completado
		FROM progreso_lecciones pl
		INNER JOIN alumnos a ON pl.alumno_id = a.alumno_id
		INNER JOIN lecciones l ON pl.leccion_id = l.leccion_id
		INNER JOIN modulos m ON l.modulo_id = m.modulo_id
		ORDER BY a.nombre, m.nombre, l.orden`
	var rows []models.ProgressRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}

// ListByAlumno returns one student's lesson progress. The module aggregate is
// left-joined and stays null for modules without a progreso_modulos row.
func (r *ProgressRepository) ListByAlumno(ctx context.Context, alumnoID int64) ([]models.StudentProgressRow, error) {
	const query = `SELECT pl.progreso_leccion_id, m.modulo_id, m.nombre AS nombre_modulo,
			l.leccion_id, l.titulo_leccion,
			pl.total_preguntas_respondidas, pl.total_preguntas, pl.estado, pl.fecha_inicio, pl.fecha_completado,
			pm.lecciones_completadas AS lecciones_completadas_modulo,
			pm.total_lecciones AS total_lecciones_modulo,
			pm.estado AS estado_modulo
		FROM progreso_lecciones pl
		INNER JOIN lecciones l ON pl.leccion_id = l.leccion_id
		INNER JOIN modulos m ON l.modulo_id = m.modulo_id
		LEFT JOIN progreso_modulos pm ON pm.alumno_id = pl.alumno_id AND pm.modulo_id = m.modulo_id
		WHERE pl.alumno_id = $1
		ORDER BY m.nombre, l.orden`
	var rows []models.StudentProgressRow
	if err := r.db.SelectContext(ctx, &rows, query, alumnoID); err != nil {
		return nil, fmt.Errorf("list progress by alumno: %w", err)
	}
	return rows, nil
}

// Exists reports whether a progress row already exists for the pair.
func (r *ProgressRepository) Exists(ctx context.Context, alumnoID, leccionID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM progreso_lecciones WHERE alumno_id = $1 AND leccion_id = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, alumnoID, leccionID); err != nil {
		return false, fmt.Errorf("check progress exists: %w", err)
	}
	return count > 0, nil
}

// Create opens a lesson for a student in EN_PROGRESO state.
func (r *ProgressRepository) Create(ctx context.Context, alumnoID, leccionID int64, totalPreguntas int) (int64, error) {
	const query = `INSERT INTO progreso_lecciones (alumno_id, leccion_id, total_preguntas)
		VALUES ($1, $2, $3) RETURNING progreso_leccion_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, alumnoID, leccionID, totalPreguntas); err != nil {
		return 0, fmt.Errorf("create progress: %w", err)
	}
	return id, nil
}

// FindByID returns one lesson progress row.
func (r *ProgressRepository) FindByID(ctx context.Context, id int64) (*models.LessonProgress, error) {
	const query = `SELECT progreso_leccion_id, alumno_id, leccion_id, total_preguntas, total_preguntas_respondidas, ultima_pregunta_respondida, estado, fecha_inicio, fecha_completado
		FROM progreso_lecciones WHERE progreso_leccion_id = $1`
	var row models.LessonProgress
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}
	return &row, nil
}

// RecordAnswer applies an answer submission and, when the lesson reaches
// COMPLETADA, recomputes the owning module's aggregate. Both writes happen in
// one transaction so the aggregate cannot drift from its source rows, and the
// progress row is locked to serialise concurrent submissions for the same
// student.
func (r *ProgressRepository) RecordAnswer(ctx context.Context, id int64, answered int, lastQuestion *int64, estado string, completedAt *time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin progress tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const lockQuery = `SELECT alumno_id, leccion_id FROM progreso_lecciones WHERE progreso_leccion_id = $1 FOR UPDATE`
	var ref struct {
		AlumnoID  int64 `db:"alumno_id"`
		LeccionID int64 `db:"leccion_id"`
	}
	if err := tx.GetContext(ctx, &ref, lockQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("lock progress row: %w", err)
	}

	const updateQuery = `UPDATE progreso_lecciones
		SET total_preguntas_respondidas = $2,
			ultima_pregunta_respondida = $3,
			estado = $4,
			fecha_completado = $5
		WHERE progreso_leccion_id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, id, answered, lastQuestion, estado, completedAt); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	if estado == models.LessonCompleted {
		if err := r.rollupModule(ctx, tx, ref.AlumnoID, ref.LeccionID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress tx: %w", err)
	}
	return nil
}

// rollupModule upserts the progreso_modulos aggregate for the module owning
// the lesson: lecciones_completadas recounted from COMPLETADA rows,
// total_lecciones recounted from the module's lessons, estado COMPLETADO iff
// the two are equal.
func (r *ProgressRepository) rollupModule(ctx context.Context, tx *sqlx.Tx, alumnoID, leccionID int64) error {
	const moduleQuery = `SELECT modulo_id FROM lecciones WHERE leccion_id = $1`
	var moduloID int64
	if err := tx.GetContext(ctx, &moduloID, moduleQuery, leccionID); err != nil {
		return fmt.Errorf("resolve module for lesson: %w", err)
	}

	const upsertQuery = `INSERT INTO progreso_modulos (alumno_id, modulo_id, lecciones_completadas, total_lecciones, estado, fecha_completado)
		SELECT $1, $2,
			(SELECT COUNT(*) FROM progreso_lecciones pl
				INNER JOIN lecciones l ON pl.leccion_id = l.leccion_id
				WHERE l.modulo_id = $2 AND pl.alumno_id = $1 AND pl.estado = 'COMPLETADA'),
			(SELECT COUNT(*) FROM lecciones WHERE modulo_id = $2),
			'EN_PROGRESO', NULL
		ON CONFLICT (alumno_id, modulo_id) DO UPDATE
		SET lecciones_completadas = EXCLUDED.lecciones_completadas,
			total_lecciones = EXCLUDED.total_lecciones`
	if _, err := tx.ExecContext(ctx, upsertQuery, alumnoID, moduloID); err != nil {
		return fmt.Errorf("upsert module progress: %w", err)
	}

	const finalizeQuery = `UPDATE progreso_modulos
		SET estado = CASE WHEN lecciones_completadas = total_lecciones THEN 'COMPLETADO' ELSE 'EN_PROGRESO' END,
			fecha_completado = CASE WHEN lecciones_completadas = total_lecciones THEN CURRENT_TIMESTAMP ELSE NULL END
		WHERE alumno_id = $1 AND modulo_id = $2`
	if _, err := tx.ExecContext(ctx, finalizeQuery, alumnoID, moduloID); err != nil {
		return fmt.Errorf("finalize module progress: %w", err)
	}
	return nil
}

// FindModuleProgress returns the derived aggregate for one (student, module)
// pair.
func (r *ProgressRepository) FindModuleProgress(ctx context.Context, alumnoID, moduloID int64) (*models.ModuleProgress, error) {
	const query = `SELECT progreso_modulo_id, alumno_id, modulo_id, lecciones_completadas, total_lecciones, estado, fecha_completado
		FROM progreso_modulos WHERE alumno_id = $1 AND modulo_id = $2`
	var row models.ModuleProgress
	if err := r.db.GetContext(ctx, &row, query, alumnoID, moduloID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find module progress: %w", err)
	}
	return &row, nil
}
