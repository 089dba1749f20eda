package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// InstructorHandler wires HTTP endpoints to the instructor service.
type InstructorHandler struct {
	service *service.InstructorService
}

// NewInstructorHandler creates a new handler.
func NewInstructorHandler(svc *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{service: svc}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /instructores [get]
func (h *InstructorHandler) List(c *gin.Context) {
	instructores, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructores, nil)
}

// Get godoc
// @Summary Get one instructor
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructores/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	instructor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, nil)
}

// Create godoc
// @Summary Create instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateInstructorRequest true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /instructores [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	var req models.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid instructor payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"instructor_id": id})
}

// Update godoc
// @Summary Update instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param payload body models.UpdateInstructorRequest true "Instructor payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructores/{id} [put]
func (h *InstructorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	var req models.UpdateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid instructor payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "instructor actualizado"}, nil)
}

// Delete godoc
// @Summary Delete instructor
// @Tags Instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /instructores/{id} [delete]
func (h *InstructorHandler) Delete(c *gin.Context) {
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
