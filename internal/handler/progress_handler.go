package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// ProgressHandler wires HTTP endpoints to the progress service.
type ProgressHandler struct {
	service  *service.ProgressService
	students *service.StudentService
	export   *service.ExportService
}

// NewProgressHandler creates a new handler.
func NewProgressHandler(svc *service.ProgressService, students *service.StudentService, export *service.ExportService) *ProgressHandler {
	return &ProgressHandler{service: svc, students: students, export: export}
}

// List godoc
// @Summary List all students' lesson progress
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /progreso-alumnos [get]
func (h *ProgressHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// ListByAlumno godoc
// @Summary List one student's lesson progress
// @Description Students may only read their own progress; staff may read any.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param alumnoId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /progreso-alumnos/alumno/{alumnoId} [get]
func (h *ProgressHandler) ListByAlumno(c *gin.Context) {
	alumnoID, ok := parseIDParam(c, "alumnoId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if claims.Rol == models.RoleStudent {
		perfil, err := h.students.Perfil(c.Request.Context(), claims.UserID)
		if err != nil || perfil.AlumnoID != alumnoID {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "solo puedes consultar tu propio progreso"))
			return
		}
	}

	rows, err := h.service.ListByAlumno(c.Request.Context(), alumnoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Start godoc
// @Summary Open a lesson for a student
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.StartProgressRequest true "Progress payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /progreso-alumnos [post]
func (h *ProgressHandler) Start(c *gin.Context) {
	var req models.StartProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid progress payload"))
		return
	}
	id, err := h.service.StartLesson(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"progreso_leccion_id": id})
}

// Update godoc
// @Summary Record an answer submission
// @Description Completion is recomputed server-side from the answered count.
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Progress ID"
// @Param payload body models.UpdateProgressRequest true "Progress payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /progreso-alumnos/{id} [put]
func (h *ProgressHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	var req models.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid progress payload"))
		return
	}
	updated, err := h.service.RecordAnswer(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// Export godoc
// @Summary Export the progress listing
// @Tags Progress
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} byte
// @Router /progreso-alumnos/export [get]
func (h *ProgressHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	payload, contentType, err := h.export.ExportProgress(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	ext := "csv"
	if format == service.ExportPDF {
		ext = "pdf"
	}
	filename := fmt.Sprintf("progreso-alumnos-%s.%s", time.Now().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
