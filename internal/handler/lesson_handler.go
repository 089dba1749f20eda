package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// LessonHandler wires HTTP endpoints to the lesson service.
type LessonHandler struct {
	service   *service.LessonService
	questions *service.QuestionService
}

// NewLessonHandler creates a new handler.
func NewLessonHandler(svc *service.LessonService, questions *service.QuestionService) *LessonHandler {
	return &LessonHandler{service: svc, questions: questions}
}

// List godoc
// @Summary List lessons
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /lecciones [get]
func (h *LessonHandler) List(c *gin.Context) {
	lecciones, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecciones, nil)
}

// Get godoc
// @Summary Get one lesson
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecciones/{id} [get]
func (h *LessonHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	leccion, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leccion, nil)
}

// Preguntas godoc
// @Summary List the questions of one lesson
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecciones/{id}/preguntas [get]
func (h *LessonHandler) Preguntas(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	preguntas, err := h.questions.ListByLeccion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preguntas, nil)
}

// Create godoc
// @Summary Create lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateLeccionRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecciones [post]
func (h *LessonHandler) Create(c *gin.Context) {
	var req models.CreateLeccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leccion payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"leccion_id": id})
}

// Update godoc
// @Summary Update lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param payload body models.UpdateLeccionRequest true "Lesson payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecciones/{id} [put]
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	var req models.UpdateLeccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leccion payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "leccion actualizada"}, nil)
}

// Delete godoc
// @Summary Delete lesson
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /lecciones/{id} [delete]
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
