package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestProgressRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectQuery("INSERT INTO progreso_lecciones").
		WithArgs(int64(7), int64(3), 10).
		WillReturnRows(sqlmock.NewRows([]string{"progreso_leccion_id"}).AddRow(int64(42)))

	id, err := repo.Create(context.Background(), 7, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryExists(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM progreso_lecciones").
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryRecordAnswerInProgress(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT alumno_id, leccion_id FROM progreso_lecciones").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"alumno_id", "leccion_id"}).AddRow(int64(7), int64(3)))
	mock.ExpectExec("UPDATE progreso_lecciones").
		WithArgs(int64(42), 4, nil, "EN_PROGRESO", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordAnswer(context.Background(), 42, 4, nil, "EN_PROGRESO", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryRecordAnswerCompletesAndRollsUp(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	completedAt := time.Now().UTC()
	lastQuestion := int64(99)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT alumno_id, leccion_id FROM progreso_lecciones").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"alumno_id", "leccion_id"}).AddRow(int64(7), int64(3)))
	mock.ExpectExec("UPDATE progreso_lecciones").
		WithArgs(int64(42), 10, &lastQuestion, "COMPLETADA", &completedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT modulo_id FROM lecciones").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"modulo_id"}).AddRow(int64(5)))
	mock.ExpectExec("INSERT INTO progreso_modulos").
		WithArgs(int64(7), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE progreso_modulos").
		WithArgs(int64(7), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordAnswer(context.Background(), 42, 10, &lastQuestion, "COMPLETADA", &completedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryRecordAnswerMissingRow(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT alumno_id, leccion_id FROM progreso_lecciones").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.RecordAnswer(context.Background(), 42, 4, nil, "EN_PROGRESO", nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryFindModuleProgress(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	completedAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"progreso_modulo_id", "alumno_id", "modulo_id", "lecciones_completadas", "total_lecciones", "estado", "fecha_completado"}).
		AddRow(int64(1), int64(7), int64(5), 3, 3, "COMPLETADO", &completedAt)
	mock.ExpectQuery("SELECT progreso_modulo_id, alumno_id, modulo_id").
		WithArgs(int64(7), int64(5)).
		WillReturnRows(rows)

	mp, err := repo.FindModuleProgress(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETADO", mp.Estado)
	assert.Equal(t, 3, mp.LeccionesCompletadas)
	require.NotNil(t, mp.FechaCompletado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryListByAlumno(t *testing.T) {
	db, mock, cleanup := newProgressMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	completadas := 2
	total := 3
	estadoModulo := "EN_PROGRESO"
	rows := sqlmock.NewRows([]string{
		"progreso_leccion_id", "modulo_id", "nombre_modulo", "leccion_id", "titulo_leccion",
		"total_preguntas_respondidas", "total_preguntas", "estado", "fecha_inicio", "fecha_completado",
		"lecciones_completadas_modulo", "total_lecciones_modulo", "estado_modulo",
	}).AddRow(int64(42), int64(5), "Modulo 1", int64(3), "Leccion 1", 4, 10, "EN_PROGRESO", time.Now(), nil, &completadas, &total, &estadoModulo)

	mock.ExpectQuery("SELECT pl.progreso_leccion_id, m.modulo_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	result, err := repo.ListByAlumno(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Modulo 1", result[0].NombreModulo)
	require.NotNil(t, result[0].LeccionesCompletadas)
	assert.Equal(t, 2, *result[0].LeccionesCompletadas)
	assert.NoError(t, mock.ExpectationsWereMet())
}
