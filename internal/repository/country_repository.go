package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frankvera/academia-api/internal/models"
)

// CountryRepository provides database access for the continentes and paises
// reference tables.
type CountryRepository struct {
	db *sqlx.DB
}

// NewCountryRepository constructs the repository.
func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// ListContinentes returns all continents ordered by name.
func (r *CountryRepository) ListContinentes(ctx context.Context) ([]models.Continente, error) {
	const query = `SELECT continente_id, nombre_continente FROM continentes ORDER BY nombre_continente`
	var continentes []models.Continente
	if err := r.db.SelectContext(ctx, &continentes, query); err != nil {
		return nil, fmt.Errorf("list continentes: %w", err)
	}
	return continentes, nil
}

// CreateContinente inserts one continent.
func (r *CountryRepository) CreateContinente(ctx context.Context, nombre string) (int64, error) {
	const query = `INSERT INTO continentes (nombre_continente) VALUES ($1) RETURNING continente_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, nombre); err != nil {
		return 0, fmt.Errorf("create continente: %w", err)
	}
	return id, nil
}

// BatchCreateContinentes inserts several continents in one transaction,
// recording a per-row outcome. The transaction commits only when at least one
// row succeeded.
func (r *CountryRepository) BatchCreateContinentes(ctx context.Context, continentes []models.CreateContinenteRequest) (*models.BatchResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin continentes tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result := &models.BatchResult{Exitosos: []int64{}, Fallidos: []models.BatchFailure{}}
	const insert = `INSERT INTO continentes (nombre_continente) VALUES ($1)
		ON CONFLICT (nombre_continente) DO NOTHING RETURNING continente_id`
	for _, c := range continentes {
		var id int64
		err := tx.GetContext(ctx, &id, insert, c.NombreContinente)
		if err == sql.ErrNoRows {
			result.Fallidos = append(result.Fallidos, models.BatchFailure{Nombre: c.NombreContinente, Error: "ya existe"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("batch insert continente: %w", err)
		}
		result.Exitosos = append(result.Exitosos, id)
	}

	if len(result.Exitosos) == 0 {
		return result, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit continentes tx: %w", err)
	}
	return result, nil
}

// CountPaisesByContinente returns how many countries reference the continent.
func (r *CountryRepository) CountPaisesByContinente(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM paises WHERE continente_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count paises by continente: %w", err)
	}
	return count, nil
}

// DeleteContinente removes the continent row. Callers must check
// CountPaisesByContinente first.
func (r *CountryRepository) DeleteContinente(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM continentes WHERE continente_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete continente: %w", err)
	}
	return res.RowsAffected()
}

// ListPaises returns all countries ordered by name.
func (r *CountryRepository) ListPaises(ctx context.Context) ([]models.Pais, error) {
	const query = `SELECT pais_id, nombre_pais, continente_id FROM paises ORDER BY nombre_pais`
	var paises []models.Pais
	if err := r.db.SelectContext(ctx, &paises, query); err != nil {
		return nil, fmt.Errorf("list paises: %w", err)
	}
	return paises, nil
}

// ListPaisesByContinente returns the countries of one continent.
func (r *CountryRepository) ListPaisesByContinente(ctx context.Context, continenteID int64) ([]models.Pais, error) {
	const query = `SELECT pais_id, nombre_pais, continente_id FROM paises WHERE continente_id = $1 ORDER BY nombre_pais`
	var paises []models.Pais
	if err := r.db.SelectContext(ctx, &paises, query, continenteID); err != nil {
		return nil, fmt.Errorf("list paises by continente: %w", err)
	}
	return paises, nil
}

// ContinenteExists reports whether the continent is present.
func (r *CountryRepository) ContinenteExists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM continentes WHERE continente_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return false, fmt.Errorf("check continente exists: %w", err)
	}
	return count > 0, nil
}

// CreatePais inserts one country.
func (r *CountryRepository) CreatePais(ctx context.Context, req *models.CreatePaisRequest) (int64, error) {
	const query = `INSERT INTO paises (nombre_pais, continente_id) VALUES ($1, $2) RETURNING pais_id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, req.NombrePais, req.ContinenteID); err != nil {
		return 0, fmt.Errorf("create pais: %w", err)
	}
	return id, nil
}

// BatchCreatePaises inserts several countries in one transaction with a
// per-row outcome, committing only when at least one row succeeded.
func (r *CountryRepository) BatchCreatePaises(ctx context.Context, paises []models.CreatePaisRequest) (*models.BatchResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin paises tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result := &models.BatchResult{Exitosos: []int64{}, Fallidos: []models.BatchFailure{}}
	const checkContinente = `SELECT COUNT(*) FROM continentes WHERE continente_id = $1`
	const insert = `INSERT INTO paises (nombre_pais, continente_id) VALUES ($1, $2)
		ON CONFLICT (nombre_pais, continente_id) DO NOTHING RETURNING pais_id`
	for _, p := range paises {
		var exists int
		if err := tx.GetContext(ctx, &exists, checkContinente, p.ContinenteID); err != nil {
			return nil, fmt.Errorf("batch check continente: %w", err)
		}
		if exists == 0 {
			result.Fallidos = append(result.Fallidos, models.BatchFailure{Nombre: p.NombrePais, Error: "continente no existe"})
			continue
		}
		var id int64
		err := tx.GetContext(ctx, &id, insert, p.NombrePais, p.ContinenteID)
		if err == sql.ErrNoRows {
			result.Fallidos = append(result.Fallidos, models.BatchFailure{Nombre: p.NombrePais, Error: "ya existe"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("batch insert pais: %w", err)
		}
		result.Exitosos = append(result.Exitosos, id)
	}

	if len(result.Exitosos) == 0 {
		return result, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit paises tx: %w", err)
	}
	return result, nil
}

// CountPaisReferences returns how many students and users reference the
// country. Either blocks deletion.
func (r *CountryRepository) CountPaisReferences(ctx context.Context, id int64) (int, error) {
	const query = `SELECT (SELECT COUNT(*) FROM alumnos WHERE pais_id = $1)
		+ (SELECT COUNT(*) FROM usuarios WHERE pais_id = $1)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count pais references: %w", err)
	}
	return count, nil
}

// DeletePais removes the country row. Callers must check CountPaisReferences
// first.
func (r *CountryRepository) DeletePais(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM paises WHERE pais_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete pais: %w", err)
	}
	return res.RowsAffected()
}
