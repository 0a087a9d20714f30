package repositories

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// FeeRuleReader defines read operations for fee rules and their tiers
type FeeRuleReader interface {
	// FindFeeRuleByID retrieves a rule with its tiers loaded.
	FindFeeRuleByID(ctx context.Context, ruleID string) (*domain.FeeRule, error)

	// ListFeeRules retrieves rules with tiers; onlyActive filters out deactivated ones.
	ListFeeRules(ctx context.Context, onlyActive bool) ([]domain.FeeRule, error)
}

// FeeRuleWriter defines write operations for fee rules and their tiers
type FeeRuleWriter interface {
	// SaveFeeRule persists a new rule together with its tiers.
	SaveFeeRule(ctx context.Context, rule domain.FeeRule) error

	// UpdateFeeRule updates a rule and replaces its tier set atomically.
	UpdateFeeRule(ctx context.Context, rule domain.FeeRule) error

	// DeleteFeeRule removes a rule and its tiers.
	DeleteFeeRule(ctx context.Context, ruleID string) error
}

// FeeSettingsRepository manages the global singleton fee settings row.
type FeeSettingsRepository interface {
	// GetFeeSettings returns the singleton settings.
	GetFeeSettings(ctx context.Context) (*domain.FeeSettings, error)

	// UpdateFeeSettings overwrites the singleton settings.
	UpdateFeeSettings(ctx context.Context, settings domain.FeeSettings) error
}

// FeeRepositoryFacade combines all fee-related repository interfaces
type FeeRepositoryFacade interface {
	FeeRuleReader
	FeeRuleWriter
	FeeSettingsRepository
}
