package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/middleware"
	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
)

type stubProgressRepo struct{}

func (stubProgressRepo) ListAll(context.Context) ([]models.ProgressRow, error) {
	return []models.ProgressRow{}, nil
}

func (stubProgressRepo) ListByAlumno(_ context.Context, alumnoID int64) ([]models.StudentProgressRow, error) {
	return []models.StudentProgressRow{{ProgresoLeccionID: alumnoID, NombreModulo: "Modulo 1"}}, nil
}

func (stubProgressRepo) Exists(context.Context, int64, int64) (bool, error) { return false, nil }

func (stubProgressRepo) Create(context.Context, int64, int64, int) (int64, error) { return 1, nil }

func (stubProgressRepo) FindByID(context.Context, int64) (*models.LessonProgress, error) {
	return nil, sql.ErrNoRows
}

func (stubProgressRepo) RecordAnswer(context.Context, int64, int, *int64, string, *time.Time) error {
	return nil
}

type stubStudentRepo struct {
	perfilAlumnoID map[int64]int64
}

func (s stubStudentRepo) List(context.Context) ([]models.AlumnoDetail, error) { return nil, nil }

func (s stubStudentRepo) FindByID(_ context.Context, id int64) (*models.AlumnoDetail, error) {
	return &models.AlumnoDetail{Alumno: models.Alumno{AlumnoID: id}}, nil
}

func (s stubStudentRepo) Create(context.Context, *models.CreateAlumnoRequest) (int64, error) {
	return 1, nil
}

func (s stubStudentRepo) Update(context.Context, int64, *models.UpdateAlumnoRequest) (int64, error) {
	return 1, nil
}

func (s stubStudentRepo) ToggleEstado(context.Context, int64) (int64, error) { return 1, nil }

func (s stubStudentRepo) CountProgress(context.Context, int64) (int, error) { return 0, nil }

func (s stubStudentRepo) Delete(context.Context, int64) (int64, error) { return 1, nil }

func (s stubStudentRepo) Stats(context.Context) (*models.AlumnoStats, error) {
	return &models.AlumnoStats{}, nil
}

func (s stubStudentRepo) CountByPais(context.Context) ([]models.PaisDistribution, error) {
	return nil, nil
}

func (s stubStudentRepo) FindPerfilByUsuarioID(_ context.Context, usuarioID int64) (*models.AlumnoPerfil, error) {
	alumnoID, ok := s.perfilAlumnoID[usuarioID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.AlumnoPerfil{AlumnoID: alumnoID}, nil
}

type stubLessonRepo struct{}

func (stubLessonRepo) FindByID(_ context.Context, id int64) (*models.Leccion, error) {
	return &models.Leccion{LeccionID: id}, nil
}

func newProgressRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	students := stubStudentRepo{perfilAlumnoID: map[int64]int64{10: 7}}
	progressSvc := service.NewProgressService(stubProgressRepo{}, students, stubLessonRepo{}, nil, nil)
	studentSvc := service.NewStudentService(students, nil, nil)
	h := NewProgressHandler(progressSvc, studentSvc, nil)

	r := gin.New()
	r.GET("/progreso-alumnos/alumno/:alumnoId",
		func(c *gin.Context) {
			rol := models.Role(c.GetHeader("X-Test-Rol"))
			if rol != "" {
				c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 10, Rol: rol})
			}
			c.Next()
		},
		h.ListByAlumno,
	)
	return r
}

func performProgressRequest(r *gin.Engine, alumnoID int64, rol models.Role) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/progreso-alumnos/alumno/%d", alumnoID), nil)
	if rol != "" {
		req.Header.Set("X-Test-Rol", string(rol))
	}
	r.ServeHTTP(w, req)
	return w
}

func TestProgressHandlerStudentReadsOwnProgress(t *testing.T) {
	r := newProgressRouter(t)

	w := performProgressRequest(r, 7, models.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"progreso_leccion_id":7`)
}

func TestProgressHandlerStudentCannotReadOthers(t *testing.T) {
	r := newProgressRouter(t)

	w := performProgressRequest(r, 8, models.RoleStudent)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "solo puedes consultar tu propio progreso")
}

func TestProgressHandlerStaffReadsAnyProgress(t *testing.T) {
	r := newProgressRouter(t)

	assert.Equal(t, http.StatusOK, performProgressRequest(r, 8, models.RoleAdmin).Code)
	assert.Equal(t, http.StatusOK, performProgressRequest(r, 8, models.RoleInstructor).Code)
}

func TestProgressHandlerRejectsBadID(t *testing.T) {
	r := newProgressRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progreso-alumnos/alumno/abc", nil)
	req.Header.Set("X-Test-Rol", string(models.RoleAdmin))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
