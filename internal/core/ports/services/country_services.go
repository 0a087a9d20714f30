package services

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// CountryReaderSvc defines read operations for country data
type CountryReaderSvc interface {
	// GetCountryByID retrieves a specific country by its ID.
	GetCountryByID(ctx context.Context, countryID string) (*domain.Country, error)

	// ListCountries retrieves countries, optionally only active ones.
	ListCountries(ctx context.Context, onlyActive bool) ([]domain.Country, error)
}

// CountryWriterSvc defines write operations for country data
type CountryWriterSvc interface {
	// CreateCountry persists a new country.
	CreateCountry(ctx context.Context, req dto.CreateCountryRequest, creatorUserID string) (*domain.Country, error)

	// UpdateCountry updates the mutable fields of a country.
	UpdateCountry(ctx context.Context, countryID string, req dto.UpdateCountryRequest, updaterUserID string) (*domain.Country, error)
}

// CountrySvcFacade combines all country-related service interfaces
type CountrySvcFacade interface {
	CountryReaderSvc
	CountryWriterSvc
}
