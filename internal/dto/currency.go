package dto

import (
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Name    string `json:"name" binding:"required"`
	ISOCode string `json:"isoCode" binding:"required,uppercase,len=3"`
	Symbol  string `json:"symbol" binding:"required"`
}

// UpdateCurrencyRequest defines the updatable fields of a currency.
// The ISO code is immutable identity and cannot be changed here.
type UpdateCurrencyRequest struct {
	Name   *string `json:"name,omitempty"`
	Symbol *string `json:"symbol,omitempty"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string    `json:"currencyID"`
	Name          string    `json:"name"`
	ISOCode       string    `json:"isoCode"`
	Symbol        string    `json:"symbol"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    curr.CurrencyID,
		Name:          curr.Name,
		ISOCode:       curr.ISOCode,
		Symbol:        curr.Symbol,
		CreatedAt:     curr.CreatedAt,
		LastUpdatedAt: curr.LastUpdatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to response DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
