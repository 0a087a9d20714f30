package repositories

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a specific exchange rate record by its ID.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindExchangeRateByPair retrieves the record stored for the exact
	// directed pair, active or not. Reciprocal resolution is the pricing
	// core's job, not the repository's.
	FindExchangeRateByPair(ctx context.Context, sourceCurrencyID, targetCurrencyID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rate records; onlyActive filters out deactivated ones.
	ListExchangeRates(ctx context.Context, onlyActive bool) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new rate record. Saving over an existing
	// directed pair supersedes its rate in place; no history is kept.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpdateExchangeRate updates an existing rate record's mutable fields, including Active.
	UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
