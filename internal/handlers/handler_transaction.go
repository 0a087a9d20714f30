package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
	"github.com/transferpro/transferpro_backend/internal/middleware"
)

// transactionHandler handles HTTP requests related to transfers and withdrawals.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to the transaction
// ledger. Forcing a transfer to WITHDRAWN outside the normal withdrawal
// flow is an admin repair operation.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/transfers", h.createTransfer)
		transactions.POST("/withdrawals", h.createWithdrawal)
		transactions.GET("", h.listTransactions)
		transactions.GET("/statistics", h.getStatistics)
		transactions.GET("/numero/:numero", h.getTransactionByNumero)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.POST("/:transactionID/validate", h.validateTransaction)
		transactions.POST("/:transactionID/cancel", h.cancelTransaction)
		transactions.POST("/:transactionID/mark-withdrawn", adminOnly, h.markTransactionWithdrawn)
	}
}

// createTransfer godoc
// @Summary Create a transfer
// @Description Prices a money transfer against the current rates and fee configuration and stores it as PENDING
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No exchange rate configured for the country pair"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/transfers [post]
func (h *transactionHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	agentID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.transactionService.CreateTransfer(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transfer")
		return
	}

	logger.Info("Transfer created",
		slog.String("numero", created.Numero),
		slog.String("amount_sent", created.AmountSent.String()),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// createWithdrawal godoc
// @Summary Create a withdrawal
// @Description Prices a payout against a validated transfer and stores it as PENDING
// @Tags transactions
// @Accept json
// @Produce json
// @Param withdrawal body dto.CreateWithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/withdrawals [post]
func (h *transactionHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	agentID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.transactionService.CreateWithdrawal(c.Request.Context(), req, agentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create withdrawal")
		return
	}

	logger.Info("Withdrawal created",
		slog.String("numero", created.Numero),
		slog.String("source_transfer", created.SourceTransferNumero),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction by its ID
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getTransactionByNumero godoc
// @Summary Get a transaction by reference
// @Description Retrieves a transaction by its human-readable reference number
// @Tags transactions
// @Produce json
// @Param numero path string true "Reference number (e.g. TRF-2026-0001)"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/numero/{numero} [get]
func (h *transactionHandler) getTransactionByNumero(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	numero := c.Param("numero")

	txn, err := h.transactionService.GetTransactionByNumero(c.Request.Context(), numero)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves transactions matching the filters, newest first
// @Tags transactions
// @Produce json
// @Param kind query string false "TRANSFER or WITHDRAWAL"
// @Param status query string false "PENDING, VALIDATED, CANCELLED or WITHDRAWN"
// @Param search query string false "Reference number search"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.TransactionFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Kind != "" {
		kind := domain.TransactionKind(req.Kind)
		filter.Kind = &kind
	}
	if req.Status != "" {
		status := domain.TransactionStatus(req.Status)
		filter.Status = &status
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getStatistics godoc
// @Summary Transaction statistics
// @Description Computes the dashboard rollup over the whole ledger
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.TransactionStatisticsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/statistics [get]
func (h *transactionHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	stats, err := h.transactionService.GetStatistics(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionStatisticsResponse(stats))
}

// validateTransaction godoc
// @Summary Validate a transaction
// @Description Moves a PENDING transaction to VALIDATED; a validated transfer receives its withdrawal code
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction already transitioned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/validate [post]
func (h *transactionHandler) validateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	transactionID := c.Param("transactionID")

	userID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.ValidateTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to validate transaction")
		return
	}

	logger.Info("Transaction validated", slog.String("numero", txn.Numero))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// cancelTransaction godoc
// @Summary Cancel a transaction
// @Description Moves a PENDING transaction to CANCELLED
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction already transitioned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/cancel [post]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	transactionID := c.Param("transactionID")

	userID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.CancelTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel transaction")
		return
	}

	logger.Info("Transaction cancelled", slog.String("numero", txn.Numero))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// markTransactionWithdrawn godoc
// @Summary Mark a transfer withdrawn
// @Description Forces a VALIDATED transfer to WITHDRAWN when the payout happened outside the normal flow (admin operation)
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction already transitioned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/mark-withdrawn [post]
func (h *transactionHandler) markTransactionWithdrawn(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	transactionID := c.Param("transactionID")

	userID, ok := requestingUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.MarkTransactionWithdrawn(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark transaction withdrawn")
		return
	}

	logger.Info("Transaction marked withdrawn", slog.String("numero", txn.Numero))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
