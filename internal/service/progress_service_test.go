package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/models"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
)

type fakeProgressRepo struct {
	rows       map[int64]*models.LessonProgress
	existing   map[[2]int64]bool
	nextID     int64
	lastUpdate struct {
		id          int64
		answered    int
		estado      string
		completedAt *time.Time
	}
}

func (f *fakeProgressRepo) ListAll(_ context.Context) ([]models.ProgressRow, error) {
	return []models.ProgressRow{}, nil
}

func (f *fakeProgressRepo) ListByAlumno(_ context.Context, _ int64) ([]models.StudentProgressRow, error) {
	return []models.StudentProgressRow{}, nil
}

func (f *fakeProgressRepo) Exists(_ context.Context, alumnoID, leccionID int64) (bool, error) {
	return f.existing[[2]int64{alumnoID, leccionID}], nil
}

func (f *fakeProgressRepo) Create(_ context.Context, alumnoID, leccionID int64, totalPreguntas int) (int64, error) {
	f.nextID++
	f.existing[[2]int64{alumnoID, leccionID}] = true
	return f.nextID, nil
}

func (f *fakeProgressRepo) FindByID(_ context.Context, id int64) (*models.LessonProgress, error) {
	if row, ok := f.rows[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProgressRepo) RecordAnswer(_ context.Context, id int64, answered int, _ *int64, estado string, completedAt *time.Time) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	f.lastUpdate.id = id
	f.lastUpdate.answered = answered
	f.lastUpdate.estado = estado
	f.lastUpdate.completedAt = completedAt
	return nil
}

type fakeProgressStudents struct {
	ids map[int64]bool
}

func (f *fakeProgressStudents) FindByID(_ context.Context, id int64) (*models.AlumnoDetail, error) {
	if f.ids[id] {
		return &models.AlumnoDetail{Alumno: models.Alumno{AlumnoID: id}}, nil
	}
	return nil, sql.ErrNoRows
}

type fakeProgressLessons struct {
	ids map[int64]bool
}

func (f *fakeProgressLessons) FindByID(_ context.Context, id int64) (*models.Leccion, error) {
	if f.ids[id] {
		return &models.Leccion{LeccionID: id}, nil
	}
	return nil, sql.ErrNoRows
}

func newProgressServiceForTest(repo *fakeProgressRepo) *ProgressService {
	students := &fakeProgressStudents{ids: map[int64]bool{7: true}}
	lessons := &fakeProgressLessons{ids: map[int64]bool{3: true}}
	return NewProgressService(repo, students, lessons, nil, nil)
}

func inProgressRow(id int64, answered, total int) *models.LessonProgress {
	return &models.LessonProgress{
		ProgresoLeccionID: id,
		AlumnoID:          7,
		LeccionID:         3,
		TotalPreguntas:    total,
		TotalRespondidas:  answered,
		Estado:            models.LessonInProgress,
		FechaInicio:       time.Now().UTC(),
	}
}

func TestProgressServiceStartLesson(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	id, err := svc.StartLesson(context.Background(), models.StartProgressRequest{AlumnoID: 7, LeccionID: 3, TotalPreguntas: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestProgressServiceStartLessonRejectsSecondStart(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{}, existing: map[[2]int64]bool{{7, 3}: true}}
	svc := newProgressServiceForTest(repo)

	_, err := svc.StartLesson(context.Background(), models.StartProgressRequest{AlumnoID: 7, LeccionID: 3, TotalPreguntas: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestProgressServiceStartLessonUnknownAlumno(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	_, err := svc.StartLesson(context.Background(), models.StartProgressRequest{AlumnoID: 99, LeccionID: 3, TotalPreguntas: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestProgressServiceRecordAnswerStaysInProgress(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{42: inProgressRow(42, 2, 10)}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	updated, err := svc.RecordAnswer(context.Background(), 42, models.UpdateProgressRequest{TotalRespondidas: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalRespondidas)
	assert.Equal(t, models.LessonInProgress, updated.Estado)
	assert.Nil(t, updated.FechaCompletado)
}

func TestProgressServiceRecordAnswerCompletesAtTotal(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{42: inProgressRow(42, 9, 10)}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	updated, err := svc.RecordAnswer(context.Background(), 42, models.UpdateProgressRequest{TotalRespondidas: 10, Estado: models.LessonInProgress})
	require.NoError(t, err)
	assert.Equal(t, models.LessonCompleted, updated.Estado)
	require.NotNil(t, updated.FechaCompletado)
	assert.Equal(t, models.LessonCompleted, repo.lastUpdate.estado)
}

func TestProgressServiceRecordAnswerIgnoresClientCompletion(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{42: inProgressRow(42, 2, 10)}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	updated, err := svc.RecordAnswer(context.Background(), 42, models.UpdateProgressRequest{TotalRespondidas: 5, Estado: models.LessonCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.LessonInProgress, updated.Estado)
}

func TestProgressServiceRecordAnswerClampsCount(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{42: inProgressRow(42, 6, 10)}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	updated, err := svc.RecordAnswer(context.Background(), 42, models.UpdateProgressRequest{TotalRespondidas: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.TotalRespondidas)

	updated, err = svc.RecordAnswer(context.Background(), 42, models.UpdateProgressRequest{TotalRespondidas: 50})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.TotalRespondidas)
	assert.Equal(t, models.LessonCompleted, updated.Estado)
}

func TestProgressServiceRecordAnswerCompletionIsSticky(t *testing.T) {
	row := inProgressRow(42, 10, 10)
	row.Estado = models.LessonCompleted
	done := time.Now().UTC().Add(-time.Hour)
	row.FechaCompletado = &done
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{42: row}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	updated, err := svc.RecordAnswer(context.Background(), 42, models.UpdateProgressRequest{TotalRespondidas: 3, Estado: models.LessonInProgress})
	require.NoError(t, err)
	assert.Equal(t, models.LessonCompleted, updated.Estado)
	assert.Equal(t, 10, updated.TotalRespondidas)
	require.NotNil(t, updated.FechaCompletado)
	assert.True(t, updated.FechaCompletado.Equal(done))
}

func TestProgressServiceRecordAnswerMissingRow(t *testing.T) {
	repo := &fakeProgressRepo{rows: map[int64]*models.LessonProgress{}, existing: map[[2]int64]bool{}}
	svc := newProgressServiceForTest(repo)

	_, err := svc.RecordAnswer(context.Background(), 99, models.UpdateProgressRequest{TotalRespondidas: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
