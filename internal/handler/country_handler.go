package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/service"
	appErrors "github.com/frankvera/academia-api/pkg/errors"
	"github.com/frankvera/academia-api/pkg/response"
)

// CountryHandler wires HTTP endpoints to the country service.
type CountryHandler struct {
	service *service.CountryService
}

// NewCountryHandler creates a new handler.
func NewCountryHandler(svc *service.CountryService) *CountryHandler {
	return &CountryHandler{service: svc}
}

// ListContinentes godoc
// @Summary List continents
// @Tags Countries
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /continentes [get]
func (h *CountryHandler) ListContinentes(c *gin.Context) {
	continentes, err := h.service.ListContinentes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, continentes, nil)
}

// CreateContinente godoc
// @Summary Create continent
// @Tags Countries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateContinenteRequest true "Continent payload"
// @Success 201 {object} response.Envelope
// @Router /continentes [post]
func (h *CountryHandler) CreateContinente(c *gin.Context) {
	var req models.CreateContinenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid continente payload"))
		return
	}
	id, err := h.service.CreateContinente(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"continente_id": id})
}

// BatchContinentes godoc
// @Summary Batch create continents
// @Tags Countries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.BatchContinentesRequest true "Continents payload"
// @Success 201 {object} response.Envelope
// @Router /continentes/batch [post]
func (h *CountryHandler) BatchContinentes(c *gin.Context) {
	var req models.BatchContinentesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid continentes payload"))
		return
	}
	result, err := h.service.BatchCreateContinentes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusCreated
	if len(result.Exitosos) == 0 {
		status = http.StatusBadRequest
	}
	response.JSON(c, status, result, nil)
}

// DeleteContinente godoc
// @Summary Delete continent
// @Tags Countries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Continent ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /continentes/{id} [delete]
func (h *CountryHandler) DeleteContinente(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	if err := h.service.DeleteContinente(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListPaises godoc
// @Summary List countries
// @Tags Countries
// @Produce json
// @Param continente_id query int false "Filter by continent"
// @Success 200 {object} response.Envelope
// @Router /paises [get]
func (h *CountryHandler) ListPaises(c *gin.Context) {
	var continenteID *int64
	if raw := c.Query("continente_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "continente_id invalido"))
			return
		}
		continenteID = &id
	}
	paises, err := h.service.ListPaises(c.Request.Context(), continenteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, paises, nil)
}

// CreatePais godoc
// @Summary Create country
// @Tags Countries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreatePaisRequest true "Country payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /paises [post]
func (h *CountryHandler) CreatePais(c *gin.Context) {
	var req models.CreatePaisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pais payload"))
		return
	}
	id, err := h.service.CreatePais(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"pais_id": id})
}

// BatchPaises godoc
// @Summary Batch create countries
// @Tags Countries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.BatchPaisesRequest true "Countries payload"
// @Success 201 {object} response.Envelope
// @Router /paises/batch [post]
func (h *CountryHandler) BatchPaises(c *gin.Context) {
	var req models.BatchPaisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid paises payload"))
		return
	}
	result, err := h.service.BatchCreatePaises(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusCreated
	if len(result.Exitosos) == 0 {
		status = http.StatusBadRequest
	}
	response.JSON(c, status, result, nil)
}

// DeletePais godoc
// @Summary Delete country
// @Tags Countries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /paises/{id} [delete]
func (h *CountryHandler) DeletePais(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id invalido"))
		return
	}
	if err := h.service.DeletePais(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
