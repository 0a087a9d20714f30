package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CreateTransferRequest defines the operator input for a new transfer.
type CreateTransferRequest struct {
	SenderClientID      string          `json:"senderClientID" binding:"required,uuid"`
	BeneficiaryClientID string          `json:"beneficiaryClientID" binding:"required,uuid"`
	SendCountryID       string          `json:"sendCountryID" binding:"required,uuid"`
	ReceiveCountryID    string          `json:"receiveCountryID" binding:"required,uuid"`
	AmountSent          decimal.Decimal `json:"amountSent" binding:"required"`
	// ApplyFees defaults to true; the operator can waive fees per transaction.
	ApplyFees *bool  `json:"applyFees,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// CreateWithdrawalRequest defines the operator input for settling a
// validated transfer, identified by its reference number.
type CreateWithdrawalRequest struct {
	ClientID       string          `json:"clientID" binding:"required,uuid"`
	TransferNumero string          `json:"transferNumero" binding:"required"`
	AmountSent     decimal.Decimal `json:"amountSent" binding:"required"`
	WithdrawalCode string          `json:"withdrawalCode,omitempty"`
	ApplyFees      *bool           `json:"applyFees,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// ListTransactionsRequest carries the query filters for the ledger screen.
type ListTransactionsRequest struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=TRANSFER WITHDRAWAL"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING VALIDATED CANCELLED WITHDRAWN"`
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// TransactionResponse defines the data returned for a transaction. Display
// amounts are rounded to 2 decimals; stored values keep full precision.
type TransactionResponse struct {
	TransactionID       string                   `json:"transactionID"`
	Numero              string                   `json:"numero"`
	Kind                domain.TransactionKind   `json:"kind"`
	Status              domain.TransactionStatus `json:"status"`
	SenderClientID      string                   `json:"senderClientID"`
	BeneficiaryClientID string                   `json:"beneficiaryClientID,omitempty"`
	SendCountryID       string                   `json:"sendCountryID"`
	ReceiveCountryID    string                   `json:"receiveCountryID"`
	SendCurrencyID      string                   `json:"sendCurrencyID"`
	ReceiveCurrencyID   string                   `json:"receiveCurrencyID"`
	AmountSent          decimal.Decimal          `json:"amountSent"`
	ExchangeRateApplied decimal.Decimal          `json:"exchangeRateApplied"`
	AmountReceived      decimal.Decimal          `json:"amountReceived"`
	Fee                 decimal.Decimal          `json:"fee"`
	ValidatedAt         *time.Time               `json:"validatedAt,omitempty"`
	WithdrawnAt         *time.Time               `json:"withdrawnAt,omitempty"`
	WithdrawalCode      string                   `json:"withdrawalCode,omitempty"`

	// SourceTransferNumero links a withdrawal to the transfer it settles.
	SourceTransferNumero string `json:"sourceTransferNumero,omitempty"`

	AgentID   string    `json:"agentID"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionStatisticsResponse is the dashboard rollup payload.
type TransactionStatisticsResponse struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalTransfers    int64           `json:"totalTransfers"`
	TotalWithdrawals  int64           `json:"totalWithdrawals"`
	PendingCount      int64           `json:"pendingCount"`
	TodayCount        int64           `json:"todayCount"`
	TotalAmountSent   decimal.Decimal `json:"totalAmountSent"`
	TotalAmountNet    decimal.Decimal `json:"totalAmountNet"`
	TotalFees         decimal.Decimal `json:"totalFees"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		Numero:               t.Numero,
		Kind:                 t.Kind,
		Status:               t.Status,
		SenderClientID:       t.SenderClientID,
		BeneficiaryClientID:  t.BeneficiaryClientID,
		SendCountryID:        t.SendCountryID,
		ReceiveCountryID:     t.ReceiveCountryID,
		SendCurrencyID:       t.SendCurrencyID,
		ReceiveCurrencyID:    t.ReceiveCurrencyID,
		AmountSent:           t.AmountSent.Round(2),
		ExchangeRateApplied:  t.ExchangeRateApplied,
		AmountReceived:       t.AmountReceived.Round(2),
		Fee:                  t.Fee.Round(2),
		ValidatedAt:          t.ValidatedAt,
		WithdrawnAt:          t.WithdrawnAt,
		WithdrawalCode:       t.WithdrawalCode,
		SourceTransferNumero: t.SourceTransferNumero,
		AgentID:              t.AgentID,
		Notes:                t.Notes,
		CreatedAt:            t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}

// ToTransactionStatisticsResponse converts the domain rollup to its payload.
func ToTransactionStatisticsResponse(s *domain.TransactionStatistics) TransactionStatisticsResponse {
	return TransactionStatisticsResponse{
		TotalTransactions: s.TotalTransactions,
		TotalTransfers:    s.TotalTransfers,
		TotalWithdrawals:  s.TotalWithdrawals,
		PendingCount:      s.PendingCount,
		TodayCount:        s.TodayCount,
		TotalAmountSent:   s.TotalAmountSent.Round(2),
		TotalAmountNet:    s.TotalAmountNet.Round(2),
		TotalFees:         s.TotalFees.Round(2),
	}
}
