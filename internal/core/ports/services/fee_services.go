package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// FeeReaderSvc defines read operations for fee configuration
type FeeReaderSvc interface {
	// GetFeeRuleByID retrieves a fee rule with its tiers.
	GetFeeRuleByID(ctx context.Context, feeRuleID string) (*domain.FeeRule, error)

	// ListFeeRules retrieves all fee rules with their tiers.
	ListFeeRules(ctx context.Context) ([]domain.FeeRule, error)

	// GetFeeSettings retrieves the global singleton fee settings.
	GetFeeSettings(ctx context.Context) (*domain.FeeSettings, error)

	// QuoteFee computes the fee for an amount under the current settings
	// and active rule, without persisting anything.
	QuoteFee(ctx context.Context, amount decimal.Decimal, exempt bool) (decimal.Decimal, error)
}

// FeeWriterSvc defines write operations for fee configuration
type FeeWriterSvc interface {
	// CreateFeeRule persists a new fee rule and its tiers.
	CreateFeeRule(ctx context.Context, req dto.CreateFeeRuleRequest, creatorUserID string) (*domain.FeeRule, error)

	// UpdateFeeRule updates a fee rule; a non-nil tier set replaces the
	// rule's tiers wholesale.
	UpdateFeeRule(ctx context.Context, feeRuleID string, req dto.UpdateFeeRuleRequest, updaterUserID string) (*domain.FeeRule, error)

	// DeleteFeeRule removes a fee rule. The active rule cannot be deleted.
	DeleteFeeRule(ctx context.Context, feeRuleID string, requestingUserID string) error

	// UpdateFeeSettings patches the global fee settings.
	UpdateFeeSettings(ctx context.Context, req dto.UpdateFeeSettingsRequest, updaterUserID string) (*domain.FeeSettings, error)
}

// FeeSvcFacade combines all fee-related service interfaces
type FeeSvcFacade interface {
	FeeReaderSvc
	FeeWriterSvc
}
