package repositories

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CountryReader defines read operations for country data
type CountryReader interface {
	// FindCountryByID retrieves a specific country by its ID.
	FindCountryByID(ctx context.Context, countryID string) (*domain.Country, error)

	// ListCountries retrieves countries; onlyActive filters out deactivated ones.
	ListCountries(ctx context.Context, onlyActive bool) ([]domain.Country, error)
}

// CountryWriter defines write operations for country data
type CountryWriter interface {
	// SaveCountry persists a new country.
	SaveCountry(ctx context.Context, country domain.Country) error

	// UpdateCountry updates an existing country's mutable fields, including Active.
	UpdateCountry(ctx context.Context, country domain.Country) error
}

// CountryRepositoryFacade combines all country-related repository interfaces
type CountryRepositoryFacade interface {
	CountryReader
	CountryWriter
}
