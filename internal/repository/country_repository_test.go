package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/models"
)

func newCountryMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCountryRepositoryBatchCreateContinentesMixed(t *testing.T) {
	db, mock, cleanup := newCountryMock(t)
	defer cleanup()
	repo := NewCountryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO continentes").
		WithArgs("America").
		WillReturnRows(sqlmock.NewRows([]string{"continente_id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO continentes").
		WithArgs("Europa").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	result, err := repo.BatchCreateContinentes(context.Background(), []models.CreateContinenteRequest{
		{NombreContinente: "America"},
		{NombreContinente: "Europa"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Exitosos)
	require.Len(t, result.Fallidos, 1)
	assert.Equal(t, "Europa", result.Fallidos[0].Nombre)
	assert.Equal(t, "ya existe", result.Fallidos[0].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryRepositoryBatchCreateContinentesAllDuplicates(t *testing.T) {
	db, mock, cleanup := newCountryMock(t)
	defer cleanup()
	repo := NewCountryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO continentes").
		WithArgs("America").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	result, err := repo.BatchCreateContinentes(context.Background(), []models.CreateContinenteRequest{
		{NombreContinente: "America"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Exitosos)
	require.Len(t, result.Fallidos, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryRepositoryBatchCreatePaisesChecksContinente(t *testing.T) {
	db, mock, cleanup := newCountryMock(t)
	defer cleanup()
	repo := NewCountryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM continentes").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO paises").
		WithArgs("Chile", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"pais_id"}).AddRow(int64(10)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM continentes").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	result, err := repo.BatchCreatePaises(context.Background(), []models.CreatePaisRequest{
		{NombrePais: "Chile", ContinenteID: 1},
		{NombrePais: "Atlantida", ContinenteID: 99},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, result.Exitosos)
	require.Len(t, result.Fallidos, 1)
	assert.Equal(t, "Atlantida", result.Fallidos[0].Nombre)
	assert.Equal(t, "continente no existe", result.Fallidos[0].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryRepositoryBatchCreatePaisesDuplicatePerContinente(t *testing.T) {
	db, mock, cleanup := newCountryMock(t)
	defer cleanup()
	repo := NewCountryRepository(db)

	// Duplication is scoped to (nombre_pais, continente_id): the same name
	// under another continent is a fresh row, the same pair is rejected.
	const insertPattern = `INSERT INTO paises \(nombre_pais, continente_id\) VALUES \(\$1, \$2\)\s+ON CONFLICT \(nombre_pais, continente_id\) DO NOTHING RETURNING pais_id`

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM continentes").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(insertPattern).
		WithArgs("Georgia", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"pais_id"}).AddRow(int64(11)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM continentes").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(insertPattern).
		WithArgs("Georgia", int64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	result, err := repo.BatchCreatePaises(context.Background(), []models.CreatePaisRequest{
		{NombrePais: "Georgia", ContinenteID: 2},
		{NombrePais: "Georgia", ContinenteID: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, result.Exitosos)
	require.Len(t, result.Fallidos, 1)
	assert.Equal(t, "Georgia", result.Fallidos[0].Nombre)
	assert.Equal(t, "ya existe", result.Fallidos[0].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryRepositoryCountPaisReferences(t *testing.T) {
	db, mock, cleanup := newCountryMock(t)
	defer cleanup()
	repo := NewCountryRepository(db)

	mock.ExpectQuery("SELECT \\(SELECT COUNT\\(\\*\\) FROM alumnos").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountPaisReferences(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
