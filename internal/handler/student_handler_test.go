package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankvera/academia-api/internal/middleware"
	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
)

func newStudentRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	students := stubStudentRepo{perfilAlumnoID: map[int64]int64{10: 7}}
	h := NewStudentHandler(service.NewStudentService(students, nil, nil), nil)

	r := gin.New()
	r.GET("/alumnos/perfil/:id",
		func(c *gin.Context) {
			rol := models.Role(c.GetHeader("X-Test-Rol"))
			if rol != "" {
				c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 10, Rol: rol})
			}
			c.Next()
		},
		h.Perfil,
	)
	return r
}

func performPerfilRequest(r *gin.Engine, usuarioID int64, rol models.Role) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/alumnos/perfil/%d", usuarioID), nil)
	if rol != "" {
		req.Header.Set("X-Test-Rol", string(rol))
	}
	r.ServeHTTP(w, req)
	return w
}

func TestStudentHandlerPerfilReadsOwn(t *testing.T) {
	r := newStudentRouter(t)

	w := performPerfilRequest(r, 10, models.RoleStudent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alumno_id":7`)
}

func TestStudentHandlerPerfilForbidsOtherStudents(t *testing.T) {
	r := newStudentRouter(t)

	w := performPerfilRequest(r, 11, models.RoleStudent)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "solo puedes consultar tu propio perfil")
}

func TestStudentHandlerPerfilStaffReadsAny(t *testing.T) {
	r := newStudentRouter(t)

	assert.Equal(t, http.StatusOK, performPerfilRequest(r, 10, models.RoleAdmin).Code)
}

func TestStudentHandlerPerfilMissingProfile(t *testing.T) {
	r := newStudentRouter(t)

	w := performPerfilRequest(r, 99, models.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlerPerfilRejectsBadID(t *testing.T) {
	r := newStudentRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alumnos/perfil/abc", nil)
	req.Header.Set("X-Test-Rol", string(models.RoleStudent))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
