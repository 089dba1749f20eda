package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// QuestionHandler wires HTTP endpoints to the question service.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new handler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// List godoc
// @Summary List questions grouped by module and lesson
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /preguntas [get]
func (h *QuestionHandler) List(c *gin.Context) {
	preguntas, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preguntas, nil)
}

// Get godoc
// @Summary Get one question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preguntas/{id} [get]
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	pregunta, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pregunta, nil)
}

// Create godoc
// @Summary Create question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreatePreguntaRequest true "Question payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preguntas [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	var req models.CreatePreguntaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pregunta payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"pregunta_id": id})
}

// Update godoc
// @Summary Update question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param payload body models.UpdatePreguntaRequest true "Question payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preguntas/{id} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	var req models.UpdatePreguntaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pregunta payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "pregunta actualizada"}, nil)
}

// Delete godoc
// @Summary Delete question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /preguntas/{id} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
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
