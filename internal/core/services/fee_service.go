package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// FeeService provides business logic for fee rules, tiers and the global
// fee settings.
type FeeService struct {
	BaseService
	feeRepo portsrepo.FeeRepositoryFacade
}

// NewFeeService creates a new FeeService.
func NewFeeService(feeRepo portsrepo.FeeRepositoryFacade) *FeeService {
	return &FeeService{feeRepo: feeRepo}
}

// buildTiers validates and converts tier requests into domain tiers,
// sorted by lower bound. Exactly one unbounded tier is allowed and it must
// sort last.
func buildTiers(reqs []dto.FeeTierRequest) ([]domain.FeeTier, error) {
	tiers := make([]domain.FeeTier, 0, len(reqs))
	for _, t := range reqs {
		if t.Kind != domain.FeePercentage && t.Kind != domain.FeeFixed {
			return nil, fmt.Errorf("%w: tier kind must be PERCENTAGE or FIXED", apperrors.ErrValidation)
		}
		if t.AmountMin.IsNegative() {
			return nil, fmt.Errorf("%w: tier lower bound must not be negative", apperrors.ErrValidation)
		}
		if !t.NoMax && t.AmountMax.LessThan(t.AmountMin) {
			return nil, fmt.Errorf("%w: tier upper bound must not be below its lower bound", apperrors.ErrValidation)
		}
		if t.Fee.IsNegative() {
			return nil, fmt.Errorf("%w: tier fee must not be negative", apperrors.ErrValidation)
		}
		tiers = append(tiers, domain.FeeTier{
			FeeTierID: uuid.NewString(),
			AmountMin: t.AmountMin,
			AmountMax: t.AmountMax,
			NoMax:     t.NoMax,
			Fee:       t.Fee,
			Kind:      t.Kind,
		})
	}

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].AmountMin.LessThan(tiers[j].AmountMin)
	})
	for i, t := range tiers {
		if t.NoMax && i != len(tiers)-1 {
			return nil, fmt.Errorf("%w: only the last tier may be unbounded", apperrors.ErrValidation)
		}
		if i > 0 {
			prev := tiers[i-1]
			if prev.NoMax || t.AmountMin.LessThan(prev.AmountMax) {
				return nil, fmt.Errorf("%w: tiers must not overlap", apperrors.ErrValidation)
			}
		}
	}
	return tiers, nil
}

// CreateFeeRule persists a new fee rule and its tiers.
func (s *FeeService) CreateFeeRule(ctx context.Context, req dto.CreateFeeRuleRequest, creatorUserID string) (*domain.FeeRule, error) {
	now := time.Now()
	rule := domain.FeeRule{
		FeeRuleID: uuid.NewString(),
		Name:      req.Name,
		Kind:      req.Kind,
		Value:     req.Value,
		Active:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	switch req.Kind {
	case domain.FeeTiered:
		if len(req.Tiers) == 0 {
			return nil, fmt.Errorf("%w: a tiered rule needs at least one tier", apperrors.ErrValidation)
		}
		tiers, err := buildTiers(req.Tiers)
		if err != nil {
			return nil, err
		}
		rule.Tiers = tiers
		rule.Value = decimal.Zero
	case domain.FeePercentage, domain.FeeFixed:
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("%w: fee value must not be negative", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown fee kind '%s'", apperrors.ErrValidation, req.Kind)
	}

	if err := s.feeRepo.SaveFeeRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "failed to save fee rule", "name", req.Name)
		return nil, fmt.Errorf("failed to create fee rule: %w", err)
	}

	return &rule, nil
}

// UpdateFeeRule updates a fee rule; a non-nil tier set replaces the rule's
// tiers wholesale.
func (s *FeeService) UpdateFeeRule(ctx context.Context, feeRuleID string, req dto.UpdateFeeRuleRequest, updaterUserID string) (*domain.FeeRule, error) {
	rule, err := s.feeRepo.FindFeeRuleByID(ctx, feeRuleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee rule for update: %w", err)
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Kind != nil {
		rule.Kind = *req.Kind
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("%w: fee value must not be negative", apperrors.ErrValidation)
		}
		rule.Value = *req.Value
	}
	if req.Tiers != nil {
		tiers, err := buildTiers(*req.Tiers)
		if err != nil {
			return nil, err
		}
		rule.Tiers = tiers
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if rule.Kind == domain.FeeTiered && len(rule.Tiers) == 0 {
		return nil, fmt.Errorf("%w: a tiered rule needs at least one tier", apperrors.ErrValidation)
	}
	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = updaterUserID

	if err := s.feeRepo.UpdateFeeRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "failed to update fee rule", "fee_rule_id", feeRuleID)
		return nil, fmt.Errorf("failed to update fee rule: %w", err)
	}

	return rule, nil
}

// DeleteFeeRule removes a fee rule. The currently selected rule cannot be
// deleted; it must be unselected in the settings first.
func (s *FeeService) DeleteFeeRule(ctx context.Context, feeRuleID string, requestingUserID string) error {
	settings, err := s.feeRepo.GetFeeSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fee settings: %w", err)
	}
	if settings.ActiveRuleID != nil && *settings.ActiveRuleID == feeRuleID {
		return fmt.Errorf("%w: cannot delete the active fee rule", apperrors.ErrValidation)
	}

	if err := s.feeRepo.DeleteFeeRule(ctx, feeRuleID); err != nil {
		s.LogError(ctx, err, "failed to delete fee rule", "fee_rule_id", feeRuleID)
		return fmt.Errorf("failed to delete fee rule: %w", err)
	}
	return nil
}

// GetFeeRuleByID retrieves a fee rule with its tiers.
func (s *FeeService) GetFeeRuleByID(ctx context.Context, feeRuleID string) (*domain.FeeRule, error) {
	rule, err := s.feeRepo.FindFeeRuleByID(ctx, feeRuleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee rule: %w", err)
	}
	return rule, nil
}

// ListFeeRules retrieves all fee rules with their tiers.
func (s *FeeService) ListFeeRules(ctx context.Context) ([]domain.FeeRule, error) {
	rules, err := s.feeRepo.ListFeeRules(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee rules: %w", err)
	}
	if rules == nil {
		return []domain.FeeRule{}, nil
	}
	return rules, nil
}

// GetFeeSettings retrieves the global singleton fee settings.
func (s *FeeService) GetFeeSettings(ctx context.Context) (*domain.FeeSettings, error) {
	settings, err := s.feeRepo.GetFeeSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee settings: %w", err)
	}
	return settings, nil
}

// UpdateFeeSettings patches the global fee settings.
func (s *FeeService) UpdateFeeSettings(ctx context.Context, req dto.UpdateFeeSettingsRequest, updaterUserID string) (*domain.FeeSettings, error) {
	settings, err := s.feeRepo.GetFeeSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee settings for update: %w", err)
	}

	if req.FeesEnabled != nil {
		settings.FeesEnabled = *req.FeesEnabled
	}
	if req.FeeMinimum != nil {
		if req.FeeMinimum.IsNegative() {
			return nil, fmt.Errorf("%w: fee minimum must not be negative", apperrors.ErrValidation)
		}
		settings.FeeMinimum = *req.FeeMinimum
	}
	if req.FeeMaximum != nil {
		if req.FeeMaximum.IsNegative() {
			return nil, fmt.Errorf("%w: fee maximum must not be negative", apperrors.ErrValidation)
		}
		settings.FeeMaximum = *req.FeeMaximum
	}
	if settings.FeeMaximum.LessThan(settings.FeeMinimum) {
		return nil, fmt.Errorf("%w: fee maximum must not be below fee minimum", apperrors.ErrValidation)
	}
	if req.ExemptFirstTransfer != nil {
		settings.ExemptFirstTransfer = *req.ExemptFirstTransfer
	}
	if req.DefaultFeePercent != nil {
		if req.DefaultFeePercent.IsNegative() {
			return nil, fmt.Errorf("%w: default fee percent must not be negative", apperrors.ErrValidation)
		}
		settings.DefaultFeePercent = *req.DefaultFeePercent
	}
	if req.ActiveRuleID != nil {
		if *req.ActiveRuleID == "" {
			settings.ActiveRuleID = nil
		} else {
			rule, err := s.feeRepo.FindFeeRuleByID(ctx, *req.ActiveRuleID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: fee rule '%s' not found", apperrors.ErrValidation, *req.ActiveRuleID)
				}
				return nil, fmt.Errorf("failed to validate active fee rule: %w", err)
			}
			if !rule.Active {
				return nil, fmt.Errorf("%w: fee rule '%s' is not active", apperrors.ErrValidation, rule.Name)
			}
			settings.ActiveRuleID = req.ActiveRuleID
		}
	}
	settings.LastUpdatedAt = time.Now()
	settings.LastUpdatedBy = updaterUserID

	if err := s.feeRepo.UpdateFeeSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "failed to update fee settings")
		return nil, fmt.Errorf("failed to update fee settings: %w", err)
	}

	return settings, nil
}

// QuoteFee computes the fee for an amount under the current settings and
// active rule, without persisting anything. This backs the fee preview on
// the new-transaction form.
func (s *FeeService) QuoteFee(ctx context.Context, amount decimal.Decimal, exempt bool) (decimal.Decimal, error) {
	settings, err := s.feeRepo.GetFeeSettings(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get fee settings for quote: %w", err)
	}

	var rule *domain.FeeRule
	if settings.ActiveRuleID != nil {
		rule, err = s.feeRepo.FindFeeRuleByID(ctx, *settings.ActiveRuleID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("failed to load active fee rule: %w", err)
		}
	}

	fee, err := pricing.ComputeFee(amount, rule, *settings, exempt)
	if err != nil {
		var noTier *pricing.NoTierMatchError
		if errors.As(err, &noTier) {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return decimal.Zero, err
	}
	return fee, nil
}
