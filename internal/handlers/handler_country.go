package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
	"github.com/transferpro/transferpro_backend/internal/middleware"
)

// countryHandler handles HTTP requests related to countries.
type countryHandler struct {
	countryService portssvc.CountrySvcFacade
}

func newCountryHandler(cs portssvc.CountrySvcFacade) *countryHandler {
	return &countryHandler{
		countryService: cs,
	}
}

// registerCountryRoutes registers routes related to countries.
func registerCountryRoutes(rg *gin.RouterGroup, countryService portssvc.CountrySvcFacade) {
	h := newCountryHandler(countryService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	countries := rg.Group("/countries")
	{
		countries.POST("", adminOnly, h.createCountry)
		countries.GET("", h.listCountries)
		countries.GET("/:countryID", h.getCountry)
		countries.PUT("/:countryID", adminOnly, h.updateCountry)
	}
}

// createCountry godoc
// @Summary Create a new country
// @Description Adds a new send/receive country tied to a settlement currency (admin operation)
// @Tags countries
// @Accept json
// @Produce json
// @Param country body dto.CreateCountryRequest true "Country details"
// @Success 201 {object} dto.CountryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /countries [post]
func (h *countryHandler) createCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCountry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	req.ISOCode = strings.ToUpper(req.ISOCode)

	creatorUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.countryService.CreateCountry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create country")
		return
	}

	logger.Info("Country created", slog.String("country_id", created.CountryID), slog.String("name", created.Name))
	c.JSON(http.StatusCreated, dto.ToCountryResponse(created))
}

// getCountry godoc
// @Summary Get a country
// @Description Retrieves a country by its ID
// @Tags countries
// @Produce json
// @Param countryID path string true "Country ID"
// @Success 200 {object} dto.CountryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /countries/{countryID} [get]
func (h *countryHandler) getCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	countryID := c.Param("countryID")

	country, err := h.countryService.GetCountryByID(c.Request.Context(), countryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve country")
		return
	}

	c.JSON(http.StatusOK, dto.ToCountryResponse(country))
}

// listCountries godoc
// @Summary List countries
// @Description Retrieves countries; pass onlyActive=true for the new-transaction pickers
// @Tags countries
// @Produce json
// @Param onlyActive query bool false "Only active countries"
// @Success 200 {array} dto.CountryResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /countries [get]
func (h *countryHandler) listCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("onlyActive", "false"))

	countries, err := h.countryService.ListCountries(c.Request.Context(), onlyActive)
	if err != nil {
		logger.Error("Failed to list countries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list countries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCountryResponse(countries))
}

// updateCountry godoc
// @Summary Update a country
// @Description Updates a country's fields, including deactivation (admin operation)
// @Tags countries
// @Accept json
// @Produce json
// @Param countryID path string true "Country ID"
// @Param country body dto.UpdateCountryRequest true "Fields to update"
// @Success 200 {object} dto.CountryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /countries/{countryID} [put]
func (h *countryHandler) updateCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	countryID := c.Param("countryID")

	var req dto.UpdateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCountry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	updated, err := h.countryService.UpdateCountry(c.Request.Context(), countryID, req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update country")
		return
	}

	logger.Info("Country updated", slog.String("country_id", countryID))
	c.JSON(http.StatusOK, dto.ToCountryResponse(updated))
}
