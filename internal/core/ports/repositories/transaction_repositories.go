package repositories

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// TransactionFilter narrows ListTransactions results.
type TransactionFilter struct {
	Kind   *domain.TransactionKind
	Status *domain.TransactionStatus
	Search string // matches numero, case-insensitive
	Limit  int
	Offset int
}

// TransactionReader defines read operations for the transaction ledger
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByNumero retrieves a transaction by its human-readable reference.
	FindTransactionByNumero(ctx context.Context, numero string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// GetStatistics computes the dashboard rollup.
	GetStatistics(ctx context.Context) (*domain.TransactionStatistics, error)
}

// TransactionWriter defines write operations for the transaction ledger
type TransactionWriter interface {
	// SaveTransaction persists a freshly priced transaction and assigns its
	// numero and CreatedAt. The stored record is returned.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransactionStatus applies a lifecycle transition atomically: the
	// row is updated only while its current status still equals expected.
	// A concurrent transition that got there first surfaces as ErrNotFound
	// on the guarded update, never as a double transition.
	UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, expected domain.TransactionStatus) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
