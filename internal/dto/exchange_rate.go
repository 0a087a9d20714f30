package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	SourceCurrencyID string          `json:"sourceCurrencyID" binding:"required,uuid"`
	TargetCurrencyID string          `json:"targetCurrencyID" binding:"required,uuid"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
}

// UpdateExchangeRateRequest defines the updatable fields of a rate record.
// Updating Rate supersedes the stored value in place.
type UpdateExchangeRateRequest struct {
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	DateEffective *time.Time       `json:"dateEffective,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	SourceCurrencyID string          `json:"sourceCurrencyID"`
	TargetCurrencyID string          `json:"targetCurrencyID"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// SuggestedRateResponse carries an advisory live rate used to pre-fill the
// create-rate form. Never authoritative for a stored transaction.
type SuggestedRateResponse struct {
	SourceISOCode string          `json:"sourceISOCode"`
	TargetISOCode string          `json:"targetISOCode"`
	Rate          decimal.Decimal `json:"rate"`
	FetchedAt     time.Time       `json:"fetchedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		SourceCurrencyID: rate.SourceCurrencyID,
		TargetCurrencyID: rate.TargetCurrencyID,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		Active:           rate.Active,
		CreatedAt:        rate.CreatedAt,
		LastUpdatedAt:    rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(&rate)
	}
	return responses
}
