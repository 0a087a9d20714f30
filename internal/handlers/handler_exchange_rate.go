package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
	"github.com/transferpro/transferpro_backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
// Rate changes are admin only; reads and suggestions are open to all roles.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", adminOnly, h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/suggest", h.suggestRate)
		rates.GET("/:rateID", h.getExchangeRate)
		rates.PUT("/:rateID", adminOnly, h.updateExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Create an exchange rate
// @Description Stores a directed conversion rate; saving over an existing pair supersedes it (admin operation)
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created",
		slog.String("source_currency_id", created.SourceCurrencyID),
		slog.String("target_currency_id", created.TargetCurrencyID),
	)
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(created))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves a stored exchange rate record by its ID
// @Tags exchange-rates
// @Produce json
// @Param rateID path string true "Exchange rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	rateID := c.Param("rateID")

	rate, err := h.rateService.GetExchangeRateByID(c.Request.Context(), rateID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves all stored exchange rate records
// @Tags exchange-rates
// @Produce json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	rates, err := h.rateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// suggestRate godoc
// @Summary Suggest a live market rate
// @Description Fetches an advisory market rate for an ISO code pair to pre-fill the rate form; never applied automatically
// @Tags exchange-rates
// @Produce json
// @Param source query string true "Source ISO 4217 code"
// @Param target query string true "Target ISO 4217 code"
// @Success 200 {object} dto.SuggestedRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/suggest [get]
func (h *exchangeRateHandler) suggestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	source := strings.ToUpper(c.Query("source"))
	target := strings.ToUpper(c.Query("target"))
	if len(source) != 3 || len(target) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "source and target must be 3-letter ISO codes"})
		return
	}

	suggestion, err := h.rateService.SuggestRate(c.Request.Context(), source, target)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to fetch rate suggestion")
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Description Supersedes a stored rate in place, or deactivates it (admin operation)
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rateID path string true "Exchange rate ID"
// @Param rate body dto.UpdateExchangeRateRequest true "Fields to update"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	rateID := c.Param("rateID")

	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	updated, err := h.rateService.UpdateExchangeRate(c.Request.Context(), rateID, req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update exchange rate")
		return
	}

	logger.Info("Exchange rate updated", slog.String("rate_id", rateID))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(updated))
}
