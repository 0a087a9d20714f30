package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// ExchangeRateService provides business logic for exchange rates. Stored
// rates are the only rates transactions are priced against; the live
// provider only feeds the create-rate form with a suggestion.
type ExchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	liveRates    portssvc.LiveRateProvider
}

// NewExchangeRateService creates a new ExchangeRateService. liveRates may
// be nil when no upstream quote source is configured.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, liveRates portssvc.LiveRateProvider) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		liveRates:    liveRates,
	}
}

// CreateExchangeRate handles the creation of a new exchange rate. Creating
// a rate for a pair that already has one supersedes the stored value.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.SourceCurrencyID == req.TargetCurrencyID {
		return nil, fmt.Errorf("%w: source and target currencies cannot be the same", apperrors.ErrValidation)
	}

	if _, err := s.currencyRepo.FindCurrencyByID(ctx, req.SourceCurrencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: source currency '%s' not found", apperrors.ErrValidation, req.SourceCurrencyID)
		}
		return nil, fmt.Errorf("failed to validate source currency: %w", err)
	}
	if _, err := s.currencyRepo.FindCurrencyByID(ctx, req.TargetCurrencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: target currency '%s' not found", apperrors.ErrValidation, req.TargetCurrencyID)
		}
		return nil, fmt.Errorf("failed to validate target currency: %w", err)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		SourceCurrencyID: req.SourceCurrencyID,
		TargetCurrencyID: req.TargetCurrencyID,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		Active:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Saving over an existing directed pair supersedes it in place, so the
	// stored record keeps its original identity and creation audit.
	existing, err := s.rateRepo.FindExchangeRateByPair(ctx, req.SourceCurrencyID, req.TargetCurrencyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing exchange rate: %w", err)
	}
	if existing != nil {
		rate.ExchangeRateID = existing.ExchangeRateID
		rate.CreatedAt = existing.CreatedAt
		rate.CreatedBy = existing.CreatedBy
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate",
			"source_currency_id", req.SourceCurrencyID,
			"target_currency_id", req.TargetCurrencyID)
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	return &rate, nil
}

// UpdateExchangeRate updates a stored exchange rate in place.
func (s *ExchangeRateService) UpdateExchangeRate(ctx context.Context, exchangeRateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, exchangeRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate for update: %w", err)
	}

	if req.Rate != nil {
		if req.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		rate.Rate = *req.Rate
	}
	if req.DateEffective != nil {
		rate.DateEffective = *req.DateEffective
	}
	if req.Active != nil {
		rate.Active = *req.Active
	}
	rate.LastUpdatedAt = time.Now()
	rate.LastUpdatedBy = updaterUserID

	if err := s.rateRepo.UpdateExchangeRate(ctx, *rate); err != nil {
		s.LogError(ctx, err, "failed to update exchange rate", "exchange_rate_id", exchangeRateID)
		return nil, fmt.Errorf("failed to update exchange rate: %w", err)
	}

	return rate, nil
}

// GetExchangeRateByID retrieves a stored exchange rate record.
func (s *ExchangeRateService) GetExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, exchangeRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	return rate, nil
}

// ListExchangeRates retrieves all stored exchange rates.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// ResolveRate resolves the effective rate between two currencies from the
// stored active rates, deriving the reciprocal when only the opposite
// direction is stored.
func (s *ExchangeRateService) ResolveRate(ctx context.Context, sourceCurrencyID, targetCurrencyID string) (decimal.Decimal, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, true)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load rates for resolution: %w", err)
	}
	rate, err := pricing.ResolveRate(sourceCurrencyID, targetCurrencyID, rates)
	if err != nil {
		var notFound *pricing.RateNotFoundError
		if errors.As(err, &notFound) {
			return decimal.Zero, fmt.Errorf("%w: no exchange rate between '%s' and '%s'", apperrors.ErrNotFound, sourceCurrencyID, targetCurrencyID)
		}
		return decimal.Zero, err
	}
	return rate, nil
}

// SuggestRate fetches an advisory live rate for the given ISO code pair.
func (s *ExchangeRateService) SuggestRate(ctx context.Context, sourceISOCode, targetISOCode string) (*dto.SuggestedRateResponse, error) {
	if s.liveRates == nil {
		return nil, fmt.Errorf("%w: no live rate provider configured", apperrors.ErrNotFound)
	}

	sourceISOCode = strings.ToUpper(sourceISOCode)
	targetISOCode = strings.ToUpper(targetISOCode)
	if len(sourceISOCode) != 3 || len(targetISOCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, fetchedAt, err := s.liveRates.FetchRate(ctx, sourceISOCode, targetISOCode)
	if err != nil {
		s.LogError(ctx, err, "live rate fetch failed", "source", sourceISOCode, "target", targetISOCode)
		return nil, fmt.Errorf("failed to fetch live rate: %w", err)
	}

	return &dto.SuggestedRateResponse{
		SourceISOCode: sourceISOCode,
		TargetISOCode: targetISOCode,
		Rate:          rate,
		FetchedAt:     fetchedAt,
	}, nil
}
