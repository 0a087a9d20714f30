package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRateByID retrieves a stored exchange rate record.
	GetExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all stored exchange rates.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// ResolveRate resolves the effective rate between two currencies,
	// falling back to the reciprocal of the opposite pair when no direct
	// rate is stored.
	ResolveRate(ctx context.Context, sourceCurrencyID, targetCurrencyID string) (decimal.Decimal, error)

	// SuggestRate fetches an advisory live market rate for the given ISO
	// codes. Never authoritative: operators confirm a rate before it is
	// stored and applied.
	SuggestRate(ctx context.Context, sourceISOCode, targetISOCode string) (*dto.SuggestedRateResponse, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// UpdateExchangeRate updates a stored exchange rate in place.
	UpdateExchangeRate(ctx context.Context, exchangeRateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// LiveRateProvider fetches market rates from an external quote source.
// Implementations cache aggressively; callers treat results as advisory.
type LiveRateProvider interface {
	// FetchRate returns the market rate for an ISO code pair and the time
	// the quote was obtained from the upstream source.
	FetchRate(ctx context.Context, sourceISOCode, targetISOCode string) (decimal.Decimal, time.Time, error)
}
