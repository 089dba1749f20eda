package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/models"
)

func newModuleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestModuleRepositoryCountLecciones(t *testing.T) {
	db, mock, cleanup := newModuleMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM lecciones").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountLecciones(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryListConLeccionesGroups(t *testing.T) {
	db, mock, cleanup := newModuleMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	leccion1 := int64(1)
	leccion2 := int64(2)
	titulo1 := "Leccion A"
	titulo2 := "Leccion B"
	rows := sqlmock.NewRows([]string{"modulo_id", "nombre_modulo", "descripcion_modulo", "leccion_id", "titulo_leccion", "descripcion_leccion"}).
		AddRow(int64(5), "Modulo 1", nil, &leccion1, &titulo1, nil).
		AddRow(int64(5), "Modulo 1", nil, &leccion2, &titulo2, nil).
		AddRow(int64(6), "Modulo 2", nil, nil, nil, nil)
	mock.ExpectQuery("SELECT m.modulo_id, m.nombre AS nombre_modulo").
		WillReturnRows(rows)

	modulos, err := repo.ListConLecciones(context.Background())
	require.NoError(t, err)
	require.Len(t, modulos, 2)
	assert.Equal(t, "Modulo 1", modulos[0].Titulo)
	assert.Len(t, modulos[0].Lecciones, 2)
	assert.Equal(t, "Leccion A", modulos[0].Lecciones[0].Titulo)
	assert.Empty(t, modulos[1].Lecciones)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryCreateAppendsOrder(t *testing.T) {
	db, mock, cleanup := newModuleMock(t)
	defer cleanup()
	repo := NewModuleRepository(db)

	req := &models.CreateModuloRequest{Nombre: "Modulo 1", Descripcion: "Fundamentos", InstructorID: 2, Duracion: 30}

	mock.ExpectQuery("INSERT INTO modulos").
		WithArgs("Modulo 1", "Fundamentos", int64(2), 30, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"modulo_id"}).AddRow(int64(5)))

	id, err := repo.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
