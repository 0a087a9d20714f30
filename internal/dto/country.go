package dto

import (
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CreateCountryRequest defines the data needed to create a new country.
type CreateCountryRequest struct {
	Name       string `json:"name" binding:"required"`
	ISOCode    string `json:"isoCode" binding:"required,uppercase,len=2"`
	CurrencyID string `json:"currencyID" binding:"required,uuid"`
}

// UpdateCountryRequest defines the updatable fields of a country.
type UpdateCountryRequest struct {
	Name       *string `json:"name,omitempty"`
	CurrencyID *string `json:"currencyID,omitempty" binding:"omitempty,uuid"`
	Active     *bool   `json:"active,omitempty"`
}

// CountryResponse defines the data returned for a country.
type CountryResponse struct {
	CountryID     string    `json:"countryID"`
	Name          string    `json:"name"`
	ISOCode       string    `json:"isoCode"`
	CurrencyID    string    `json:"currencyID"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCountryResponse converts a domain.Country to CountryResponse DTO
func ToCountryResponse(c *domain.Country) CountryResponse {
	return CountryResponse{
		CountryID:     c.CountryID,
		Name:          c.Name,
		ISOCode:       c.ISOCode,
		CurrencyID:    c.CurrencyID,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCountryResponse converts a slice of domain.Country to response DTOs
func ToListCountryResponse(countries []domain.Country) []CountryResponse {
	res := make([]CountryResponse, len(countries))
	for i, c := range countries {
		res[i] = ToCountryResponse(&c)
	}
	return res
}
