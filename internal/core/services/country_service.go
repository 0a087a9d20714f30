package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// CountryService provides business logic for country reference data.
// Every country is bound to exactly one settlement currency.
type CountryService struct {
	BaseService
	countryRepo  portsrepo.CountryRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCountryService creates a new CountryService.
func NewCountryService(countryRepo portsrepo.CountryRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) *CountryService {
	return &CountryService{countryRepo: countryRepo, currencyRepo: currencyRepo}
}

// CreateCountry persists a new country after verifying its currency exists.
func (s *CountryService) CreateCountry(ctx context.Context, req dto.CreateCountryRequest, creatorUserID string) (*domain.Country, error) {
	if _, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency '%s' not found", apperrors.ErrValidation, req.CurrencyID)
		}
		return nil, fmt.Errorf("failed to validate country currency: %w", err)
	}

	now := time.Now()
	country := domain.Country{
		CountryID:  uuid.NewString(),
		Name:       req.Name,
		ISOCode:    strings.ToUpper(req.ISOCode),
		CurrencyID: req.CurrencyID,
		Active:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.countryRepo.SaveCountry(ctx, country); err != nil {
		s.LogError(ctx, err, "failed to save country", "iso_code", country.ISOCode)
		return nil, fmt.Errorf("failed to create country: %w", err)
	}

	return &country, nil
}

// UpdateCountry updates the mutable fields of a country. Deactivation only
// removes the country from new-transaction pickers; stored transactions
// referencing it remain readable.
func (s *CountryService) UpdateCountry(ctx context.Context, countryID string, req dto.UpdateCountryRequest, updaterUserID string) (*domain.Country, error) {
	country, err := s.countryRepo.FindCountryByID(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get country for update: %w", err)
	}

	if req.Name != nil {
		country.Name = *req.Name
	}
	if req.CurrencyID != nil {
		if _, err := s.currencyRepo.FindCurrencyByID(ctx, *req.CurrencyID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency '%s' not found", apperrors.ErrValidation, *req.CurrencyID)
			}
			return nil, fmt.Errorf("failed to validate country currency: %w", err)
		}
		country.CurrencyID = *req.CurrencyID
	}
	if req.Active != nil {
		country.Active = *req.Active
	}
	country.LastUpdatedAt = time.Now()
	country.LastUpdatedBy = updaterUserID

	if err := s.countryRepo.UpdateCountry(ctx, *country); err != nil {
		s.LogError(ctx, err, "failed to update country", "country_id", countryID)
		return nil, fmt.Errorf("failed to update country: %w", err)
	}

	return country, nil
}

// GetCountryByID retrieves a country by its ID.
func (s *CountryService) GetCountryByID(ctx context.Context, countryID string) (*domain.Country, error) {
	country, err := s.countryRepo.FindCountryByID(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return country, nil
}

// ListCountries retrieves countries, optionally only active ones.
func (s *CountryService) ListCountries(ctx context.Context, onlyActive bool) ([]domain.Country, error) {
	countries, err := s.countryRepo.ListCountries(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	if countries == nil {
		return []domain.Country{}, nil
	}
	return countries, nil
}
