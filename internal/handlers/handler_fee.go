package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
	"github.com/transferpro/transferpro_backend/internal/middleware"
)

// feeHandler handles HTTP requests related to fee rules and settings.
type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

func newFeeHandler(fs portssvc.FeeSvcFacade) *feeHandler {
	return &feeHandler{
		feeService: fs,
	}
}

// registerFeeRoutes registers routes related to fee configuration. Changing
// rules or settings is admin only; reads and quotes are open to all roles.
func registerFeeRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newFeeHandler(feeService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	fees := rg.Group("/fees")
	{
		fees.POST("/rules", adminOnly, h.createFeeRule)
		fees.GET("/rules", h.listFeeRules)
		fees.GET("/rules/:ruleID", h.getFeeRule)
		fees.PUT("/rules/:ruleID", adminOnly, h.updateFeeRule)
		fees.DELETE("/rules/:ruleID", adminOnly, h.deleteFeeRule)
		fees.GET("/settings", h.getFeeSettings)
		fees.PUT("/settings", adminOnly, h.updateFeeSettings)
		fees.POST("/quote", h.quoteFee)
	}
}

// createFeeRule godoc
// @Summary Create a fee rule
// @Description Adds a fee rule; TIERED rules carry their tier set (admin operation)
// @Tags fees
// @Accept json
// @Produce json
// @Param rule body dto.CreateFeeRuleRequest true "Rule details"
// @Success 201 {object} dto.FeeRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/rules [post]
func (h *feeHandler) createFeeRule(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateFeeRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFeeRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.feeService.CreateFeeRule(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fee rule")
		return
	}

	logger.Info("Fee rule created", slog.String("rule_id", created.FeeRuleID), slog.String("name", created.Name))
	c.JSON(http.StatusCreated, dto.ToFeeRuleResponse(created))
}

// getFeeRule godoc
// @Summary Get a fee rule
// @Description Retrieves a fee rule with its tiers
// @Tags fees
// @Produce json
// @Param ruleID path string true "Fee rule ID"
// @Success 200 {object} dto.FeeRuleResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/rules/{ruleID} [get]
func (h *feeHandler) getFeeRule(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ruleID := c.Param("ruleID")

	rule, err := h.feeService.GetFeeRuleByID(c.Request.Context(), ruleID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve fee rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeRuleResponse(rule))
}

// listFeeRules godoc
// @Summary List fee rules
// @Description Retrieves all fee rules with their tiers
// @Tags fees
// @Produce json
// @Success 200 {array} dto.FeeRuleResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/rules [get]
func (h *feeHandler) listFeeRules(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	rules, err := h.feeService.ListFeeRules(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fee rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list fee rules"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeeRuleResponse(rules))
}

// updateFeeRule godoc
// @Summary Update a fee rule
// @Description Updates a fee rule; a provided tier set replaces the existing tiers wholesale (admin operation)
// @Tags fees
// @Accept json
// @Produce json
// @Param ruleID path string true "Fee rule ID"
// @Param rule body dto.UpdateFeeRuleRequest true "Fields to update"
// @Success 200 {object} dto.FeeRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/rules/{ruleID} [put]
func (h *feeHandler) updateFeeRule(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ruleID := c.Param("ruleID")

	var req dto.UpdateFeeRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateFeeRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	updated, err := h.feeService.UpdateFeeRule(c.Request.Context(), ruleID, req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update fee rule")
		return
	}

	logger.Info("Fee rule updated", slog.String("rule_id", ruleID))
	c.JSON(http.StatusOK, dto.ToFeeRuleResponse(updated))
}

// deleteFeeRule godoc
// @Summary Delete a fee rule
// @Description Removes a fee rule and its tiers; the currently selected rule cannot be deleted (admin operation)
// @Tags fees
// @Produce json
// @Param ruleID path string true "Fee rule ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/rules/{ruleID} [delete]
func (h *feeHandler) deleteFeeRule(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ruleID := c.Param("ruleID")

	userID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	if err := h.feeService.DeleteFeeRule(c.Request.Context(), ruleID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete fee rule")
		return
	}

	logger.Info("Fee rule deleted", slog.String("rule_id", ruleID))
	c.Status(http.StatusNoContent)
}

// getFeeSettings godoc
// @Summary Get fee settings
// @Description Retrieves the global fee configuration
// @Tags fees
// @Produce json
// @Success 200 {object} dto.FeeSettingsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/settings [get]
func (h *feeHandler) getFeeSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	settings, err := h.feeService.GetFeeSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve fee settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeSettingsResponse(settings))
}

// updateFeeSettings godoc
// @Summary Update fee settings
// @Description Patches the global fee configuration (admin operation)
// @Tags fees
// @Accept json
// @Produce json
// @Param settings body dto.UpdateFeeSettingsRequest true "Fields to update"
// @Success 200 {object} dto.FeeSettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/settings [put]
func (h *feeHandler) updateFeeSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.UpdateFeeSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateFeeSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	updated, err := h.feeService.UpdateFeeSettings(c.Request.Context(), req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update fee settings")
		return
	}

	logger.Info("Fee settings updated")
	c.JSON(http.StatusOK, dto.ToFeeSettingsResponse(updated))
}

// quoteFee godoc
// @Summary Quote a fee
// @Description Computes the fee for an amount under the current configuration without persisting anything
// @Tags fees
// @Accept json
// @Produce json
// @Param quote body dto.FeeQuoteRequest true "Amount to quote"
// @Success 200 {object} dto.FeeQuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/quote [post]
func (h *feeHandler) quoteFee(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.FeeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for quoteFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	fee, err := h.feeService.QuoteFee(c.Request.Context(), req.Amount, req.Exempt)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to quote fee")
		return
	}

	c.JSON(http.StatusOK, dto.FeeQuoteResponse{
		Amount: req.Amount,
		Fee:    fee,
	})
}
