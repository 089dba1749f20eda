package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// QuestionRepository provides database access for lesson questions.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository constructs the repository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns all questions joined with lesson and module context, ordered
// for the grouped admin listing.
func (r *QuestionRepository) List(ctx context.Context) ([]models.PreguntaDetail, error) {
	const query = `SELECT q.pregunta_id, q.leccion_id, q.contenido_previo, q.pregunta, q.orden, q.estado,
			l.titulo_leccion, m.modulo_id, m.nombre AS nombre_modulo
		FROM preguntas q
		INNER JOIN lecciones l ON q.leccion_id = l.leccion_id
		INNER JOIN modulos m ON l.modulo_id = m.modulo_id
		ORDER BY m.orden, l.orden, q.orden`
	var preguntas []models.PreguntaDetail
	if err := r.db.SelectContext(ctx, &preguntas, query); err != nil {
		return nil, fmt.Errorf("list preguntas: %w", err)
	}
	return preguntas, nil
}

// ListByLeccion returns the active questions of one lesson in order.
func (r *QuestionRepository) ListByLeccion(ctx context.Context, leccionID int64) ([]models.Pregunta, error) {
	const query = `SELECT pregunta_id, leccion_id, contenido_previo, pregunta, orden, estado
		FROM preguntas WHERE leccion_id = $1 AND estado = 'ACTIVO' ORDER BY orden`
	var preguntas []models.Pregunta
	if err := r.db.SelectContext(ctx, &preguntas, query, leccionID); err != nil {
		return nil, fmt.Errorf("list preguntas by leccion: %w", err)
	}
	return preguntas, nil
}

// FindByID returns one question.
func (r *QuestionRepository) FindByID(ctx context.Context, id int64) (*models.Pregunta, error) {
	const query = `SELECT pregunta_id, leccion_id, contenido_previo, pregunta, orden, estado
		FROM preguntas WHERE pregunta_id = $1`
	var pregunta models.Pregunta
	if err := r.db.GetContext(ctx, &pregunta, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find pregunta: %w", err)
	}
	return &pregunta, nil
}

// LeccionExists reports whether the target lesson is present.
func (r *QuestionRepository) LeccionExists(ctx context.Context, leccionID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM lecciones WHERE leccion_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, leccionID); err != nil {
		return false, fmt.Errorf("check leccion exists: %w", err)
	}
	return count > 0, nil
}

// Create inserts a question. A zero orden places it at the end of the lesson.
func (r *QuestionRepository) Create(ctx context.Context, req *models.CreatePreguntaRequest) (int64, error) {
	const query = `INSERT INTO preguntas (leccion_id, contenido_previo, pregunta, orden)
		VALUES ($1, $2, $3, CASE WHEN $4 > 0 THEN $4 ELSE (SELECT COALESCE(MAX(orden), 0) + 1 FROM preguntas WHERE leccion_id = $1) END)
		RETURNING pregunta_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, req.LeccionID, req.ContenidoPrevio, req.Pregunta, req.Orden); err != nil {
		return 0, fmt.Errorf("create pregunta: %w", err)
	}
	return id, nil
}

// Update mutates question fields, returning affected rows.
func (r *QuestionRepository) Update(ctx context.Context, id int64, req *models.UpdatePreguntaRequest) (int64, error) {
	const query = `UPDATE preguntas SET contenido_previo = $2, pregunta = $3, orden = $4 WHERE pregunta_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, req.ContenidoPrevio, req.Pregunta, req.Orden)
	if err != nil {
		return 0, fmt.Errorf("update pregunta: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the question row.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM preguntas WHERE pregunta_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete pregunta: %w", err)
	}
	return res.RowsAffected()
}
