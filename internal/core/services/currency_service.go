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

// CurrencyService provides business logic for currency reference data.
type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// CreateCurrency persists a new currency after checking ISO code uniqueness.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	isoCode := strings.ToUpper(req.ISOCode)

	existing, err := s.currencyRepo.FindCurrencyByISOCode(ctx, isoCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency code uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency code '%s' already exists", apperrors.ErrDuplicate, isoCode)
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyID: uuid.NewString(),
		Name:       req.Name,
		ISOCode:    isoCode,
		Symbol:     req.Symbol,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "failed to save currency", "iso_code", isoCode)
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	return &currency, nil
}

// UpdateCurrency updates the mutable fields of a currency.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency for update: %w", err)
	}

	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "failed to update currency", "currency_id", currencyID)
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	return currency, nil
}

// GetCurrencyByID retrieves a currency by its ID.
func (s *CurrencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return currency, nil
}

// GetCurrencyByISOCode retrieves a currency by its 3-letter code.
func (s *CurrencyService) GetCurrencyByISOCode(ctx context.Context, isoCode string) (*domain.Currency, error) {
	isoCode = strings.ToUpper(isoCode)
	if len(isoCode) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	currency, err := s.currencyRepo.FindCurrencyByISOCode(ctx, isoCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all configured currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
