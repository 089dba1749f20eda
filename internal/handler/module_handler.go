package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// ModuleHandler wires HTTP endpoints to the module service.
type ModuleHandler struct {
	service *service.ModuleService
	lessons *service.LessonService
}

// NewModuleHandler creates a new handler.
func NewModuleHandler(svc *service.ModuleService, lessons *service.LessonService) *ModuleHandler {
	return &ModuleHandler{service: svc, lessons: lessons}
}

// List godoc
// @Summary List modules
// @Tags Modules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /modulos [get]
func (h *ModuleHandler) List(c *gin.Context) {
	modulos, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modulos, nil)
}

// ListConLecciones godoc
// @Summary List modules with nested lessons
// @Tags Modules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /modulos/con-lecciones [get]
func (h *ModuleHandler) ListConLecciones(c *gin.Context) {
	modulos, err := h.service.ListConLecciones(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modulos, nil)
}

// Get godoc
// @Summary Get one module
// @Tags Modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /modulos/{id} [get]
func (h *ModuleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	modulo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modulo, nil)
}

// Lecciones godoc
// @Summary List the lessons of one module
// @Tags Modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /modulos/{id}/lecciones [get]
func (h *ModuleHandler) Lecciones(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	lecciones, err := h.lessons.ListByModulo(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecciones, nil)
}

// Create godoc
// @Summary Create module
// @Tags Modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateModuloRequest true "Module payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /modulos [post]
func (h *ModuleHandler) Create(c *gin.Context) {
	var req models.CreateModuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid modulo payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"modulo_id": id})
}

// Update godoc
// @Summary Update module
// @Tags Modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param payload body models.UpdateModuloRequest true "Module payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /modulos/{id} [put]
func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	var req models.UpdateModuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid modulo payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "modulo actualizado"}, nil)
}

// Delete godoc
// @Summary Delete module
// @Tags Modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /modulos/{id} [delete]
func (h *ModuleHandler) Delete(c *gin.Context) {
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
