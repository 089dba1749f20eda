package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/service"
	"github.com/frankvera/academia-api/pkg/response"
)

// RoleHandler exposes the roles reference table.
type RoleHandler struct {
	service *service.RoleService
}

// NewRoleHandler creates a new handler.
func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{service: svc}
}

// List godoc
// @Summary List roles
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roles, nil)
}
