package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// StudentHandler wires HTTP endpoints to the student service.
type StudentHandler struct {
	service   *service.StudentService
	dashboard *service.DashboardService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc *service.StudentService, dashboard *service.DashboardService) *StudentHandler {
	return &StudentHandler{service: svc, dashboard: dashboard}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /alumnos [get]
func (h *StudentHandler) List(c *gin.Context) {
	alumnos, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alumnos, nil)
}

// Stats godoc
// @Summary Student statistics
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /alumnos/stats [get]
func (h *StudentHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// PorPais godoc
// @Summary Students per country
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /alumnos/por-pais [get]
func (h *StudentHandler) PorPais(c *gin.Context) {
	rows, err := h.service.DistribucionPorPais(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Perfil godoc
// @Summary Student profile for an account
// @Description Students may only read their own profile; staff may read any.
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alumnos/perfil/{id} [get]
func (h *StudentHandler) Perfil(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if claims.Rol == models.RoleStudent && claims.UserID != usuarioID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "solo puedes consultar tu propio perfil"))
		return
	}
	perfil, err := h.service.Perfil(c.Request.Context(), usuarioID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, perfil, nil)
}

// Get godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alumnos/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	alumno, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alumno, nil)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateAlumnoRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /alumnos [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.CreateAlumnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid alumno payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, gin.H{"alumno_id": id})
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param payload body models.UpdateAlumnoRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alumnos/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	var req models.UpdateAlumnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid alumno payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, gin.H{"message": "alumno actualizado"}, nil)
}

// ToggleEstado godoc
// @Summary Toggle student state
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alumnos/{id}/estado [patch]
func (h *StudentHandler) ToggleEstado(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	if err := h.service.ToggleEstado(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, gin.H{"message": "estado actualizado"}, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /alumnos/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}
