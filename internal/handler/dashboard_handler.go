package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/service"
	"github.com/frankvera/academia-api/pkg/response"
)

// DashboardHandler wires HTTP endpoints to the dashboard service.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Admin godoc
// @Summary Admin dashboard
// @Description Aggregated student counters and per-country distribution
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	dashboard, cached, err := h.service.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil, map[string]interface{}{"cached": cached})
}
