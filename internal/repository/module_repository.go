package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// ModuleRepository provides database access for course modules.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs the repository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// List returns all modules in display order.
func (r *ModuleRepository) List(ctx context.Context) ([]models.Modulo, error) {
	const query = `SELECT modulo_id, nombre, descripcion, instructor_id, duracion, fecha_inicio, fecha_fin, orden, estado
		FROM modulos ORDER BY orden, nombre`
	var modulos []models.Modulo
	if err := r.db.SelectContext(ctx, &modulos, query); err != nil {
		return nil, fmt.Errorf("list modulos: %w", err)
	}
	return modulos, nil
}

// FindByID returns one module.
func (r *ModuleRepository) FindByID(ctx context.Context, id int64) (*models.Modulo, error) {
	const query = `SELECT modulo_id, nombre, descripcion, instructor_id, duracion, fecha_inicio, fecha_fin, orden, estado
		FROM modulos WHERE modulo_id = $1`
	var modulo models.Modulo
	if err := r.db.GetContext(ctx, &modulo, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find modulo: %w", err)
	}
	return &modulo, nil
}

// Create inserts a module at the end of the display order.
func (r *ModuleRepository) Create(ctx context.Context, req *models.CreateModuloRequest) (int64, error) {
	const query = `INSERT INTO modulos (nombre, descripcion, instructor_id, duracion, fecha_inicio, fecha_fin, orden)
		VALUES ($1, $2, $3, $4, $5, $6, (SELECT COALESCE(MAX(orden), 0) + 1 FROM modulos))
		RETURNING modulo_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, req.Nombre, req.Descripcion, req.InstructorID, req.Duracion, req.FechaInicio, req.FechaFin); err != nil {
		return 0, fmt.Errorf("create modulo: %w", err)
	}
	return id, nil
}

// Update mutates module fields, returning affected rows.
func (r *ModuleRepository) Update(ctx context.Context, id int64, req *models.UpdateModuloRequest) (int64, error) {
	const query = `UPDATE modulos SET nombre = $2, descripcion = $3, duracion = $4, fecha_inicio = $5, fecha_fin = $6
		WHERE modulo_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, req.Nombre, req.Descripcion, req.Duracion, req.FechaInicio, req.FechaFin)
	if err != nil {
		return 0, fmt.Errorf("update modulo: %w", err)
	}
	return res.RowsAffected()
}

// CountLecciones returns how many lessons the module contains.
func (r *ModuleRepository) CountLecciones(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM lecciones WHERE modulo_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count modulo lecciones: %w", err)
	}
	return count, nil
}

// Delete removes the module row. Callers must check CountLecciones first.
func (r *ModuleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM modulos WHERE modulo_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete modulo: %w", err)
	}
	return res.RowsAffected()
}

// moduloLeccionRow is the flat join scanned before grouping into the
// accordion view.
type moduloLeccionRow struct {
	ModuloID           int64   `db:"modulo_id"`
	NombreModulo       string  `db:"nombre_modulo"`
	DescripcionModulo  *string `db:"descripcion_modulo"`
	LeccionID          *int64  `db:"leccion_id"`
	TituloLeccion      *string `db:"titulo_leccion"`
	DescripcionLeccion *string `db:"descripcion_leccion"`
}

// ListConLecciones returns active modules with their lessons nested, ordered
// by module then lesson position. Modules without lessons appear with an
// empty list.
func (r *ModuleRepository) ListConLecciones(ctx context.Context) ([]models.ModuloConLecciones, error) {
	const query = `SELECT m.modulo_id, m.nombre AS nombre_modulo, m.descripcion AS descripcion_modulo,
			l.leccion_id, l.titulo_leccion, l.contenido AS descripcion_leccion
		FROM modulos m
		LEFT JOIN lecciones l ON l.modulo_id = m.modulo_id AND l.estado = 'ACTIVO'
		WHERE m.estado = 'ACTIVO'
		ORDER BY m.orden, m.nombre, l.orden`
	var rows []moduloLeccionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list modulos con lecciones: %w", err)
	}

	modulos := make([]models.ModuloConLecciones, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		pos, ok := index[row.ModuloID]
		if !ok {
			modulos = append(modulos, models.ModuloConLecciones{
				ModuloID:    row.ModuloID,
				Titulo:      row.NombreModulo,
				Descripcion: row.DescripcionModulo,
				Lecciones:   []models.LeccionResumen{},
			})
			pos = len(modulos) - 1
			index[row.ModuloID] = pos
		}
		if row.LeccionID != nil {
			modulos[pos].Lecciones = append(modulos[pos].Lecciones, models.LeccionResumen{
				LeccionID:   *row.LeccionID,
				Titulo:      *row.TituloLeccion,
				Descripcion: row.DescripcionLeccion,
			})
		}
	}
	return modulos, nil
}
