package services

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for the transaction ledger
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// GetTransactionByNumero retrieves a transaction by its reference number.
	GetTransactionByNumero(ctx context.Context, numero string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]domain.Transaction, error)

	// GetStatistics computes the dashboard rollup.
	GetStatistics(ctx context.Context) (*domain.TransactionStatistics, error)
}

// TransactionWriterSvc defines pricing and persistence of new transactions
type TransactionWriterSvc interface {
	// CreateTransfer prices a transfer against the current reference data
	// and persists it as PENDING.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, agentID string) (*domain.Transaction, error)

	// CreateWithdrawal prices a withdrawal against a validated transfer and
	// persists it as PENDING.
	CreateWithdrawal(ctx context.Context, req dto.CreateWithdrawalRequest, agentID string) (*domain.Transaction, error)
}

// TransactionLifecycleSvc defines status transitions on stored transactions
type TransactionLifecycleSvc interface {
	// ValidateTransaction moves a PENDING transaction to VALIDATED. A
	// validated transfer also receives its withdrawal code.
	ValidateTransaction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// CancelTransaction moves a PENDING transaction to CANCELLED.
	CancelTransaction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// MarkTransactionWithdrawn moves a VALIDATED transfer to WITHDRAWN once
	// its payout withdrawal has been validated.
	MarkTransactionWithdrawn(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionLifecycleSvc
}
