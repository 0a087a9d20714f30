package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// FeeTierRequest defines one tier within a tiered rule create/update request.
type FeeTierRequest struct {
	AmountMin decimal.Decimal `json:"amountMin"`
	AmountMax decimal.Decimal `json:"amountMax"`
	NoMax     bool            `json:"noMax"`
	Fee       decimal.Decimal `json:"fee" binding:"required"`
	Kind      domain.FeeKind  `json:"kind" binding:"required,oneof=PERCENTAGE FIXED"`
}

// CreateFeeRuleRequest defines the data needed to create a fee rule.
// Tiers are required for TIERED rules and ignored otherwise.
type CreateFeeRuleRequest struct {
	Name  string           `json:"name" binding:"required"`
	Kind  domain.FeeKind   `json:"kind" binding:"required,oneof=PERCENTAGE FIXED TIERED"`
	Value decimal.Decimal  `json:"value"`
	Tiers []FeeTierRequest `json:"tiers,omitempty"`
}

// UpdateFeeRuleRequest defines the updatable fields of a fee rule. A non-nil
// Tiers replaces the rule's whole tier set.
type UpdateFeeRuleRequest struct {
	Name   *string           `json:"name,omitempty"`
	Kind   *domain.FeeKind   `json:"kind,omitempty" binding:"omitempty,oneof=PERCENTAGE FIXED TIERED"`
	Value  *decimal.Decimal  `json:"value,omitempty"`
	Tiers  *[]FeeTierRequest `json:"tiers,omitempty"`
	Active *bool             `json:"active,omitempty"`
}

// UpdateFeeSettingsRequest patches the global singleton fee settings.
type UpdateFeeSettingsRequest struct {
	FeesEnabled         *bool            `json:"feesEnabled,omitempty"`
	FeeMinimum          *decimal.Decimal `json:"feeMinimum,omitempty"`
	FeeMaximum          *decimal.Decimal `json:"feeMaximum,omitempty"`
	ExemptFirstTransfer *bool            `json:"exemptFirstTransfer,omitempty"`
	ActiveRuleID        *string          `json:"activeRuleID,omitempty"`
	DefaultFeePercent   *decimal.Decimal `json:"defaultFeePercent,omitempty"`
}

// FeeQuoteRequest asks for a dry-run fee calculation, the way the
// new-transaction form previews fees before anything is persisted.
type FeeQuoteRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Exempt bool            `json:"exempt"`
}

// FeeQuoteResponse is the dry-run fee result.
type FeeQuoteResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Fee    decimal.Decimal `json:"fee"`
}

// FeeTierResponse defines the data returned for one fee tier.
type FeeTierResponse struct {
	FeeTierID string          `json:"feeTierID"`
	AmountMin decimal.Decimal `json:"amountMin"`
	AmountMax decimal.Decimal `json:"amountMax"`
	NoMax     bool            `json:"noMax"`
	Fee       decimal.Decimal `json:"fee"`
	Kind      domain.FeeKind  `json:"kind"`
}

// FeeRuleResponse defines the data returned for a fee rule.
type FeeRuleResponse struct {
	FeeRuleID     string            `json:"feeRuleID"`
	Name          string            `json:"name"`
	Kind          domain.FeeKind    `json:"kind"`
	Value         decimal.Decimal   `json:"value"`
	Tiers         []FeeTierResponse `json:"tiers,omitempty"`
	Active        bool              `json:"active"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// FeeSettingsResponse defines the data returned for the global fee settings.
type FeeSettingsResponse struct {
	FeesEnabled         bool            `json:"feesEnabled"`
	FeeMinimum          decimal.Decimal `json:"feeMinimum"`
	FeeMaximum          decimal.Decimal `json:"feeMaximum"`
	ExemptFirstTransfer bool            `json:"exemptFirstTransfer"`
	ActiveRuleID        *string         `json:"activeRuleID,omitempty"`
	DefaultFeePercent   decimal.Decimal `json:"defaultFeePercent"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// ToFeeRuleResponse converts a domain.FeeRule to FeeRuleResponse DTO
func ToFeeRuleResponse(rule *domain.FeeRule) FeeRuleResponse {
	tiers := make([]FeeTierResponse, len(rule.Tiers))
	for i, t := range rule.Tiers {
		tiers[i] = FeeTierResponse{
			FeeTierID: t.FeeTierID,
			AmountMin: t.AmountMin,
			AmountMax: t.AmountMax,
			NoMax:     t.NoMax,
			Fee:       t.Fee,
			Kind:      t.Kind,
		}
	}
	return FeeRuleResponse{
		FeeRuleID:     rule.FeeRuleID,
		Name:          rule.Name,
		Kind:          rule.Kind,
		Value:         rule.Value,
		Tiers:         tiers,
		Active:        rule.Active,
		CreatedAt:     rule.CreatedAt,
		LastUpdatedAt: rule.LastUpdatedAt,
	}
}

// ToListFeeRuleResponse converts a slice of domain.FeeRule to response DTOs
func ToListFeeRuleResponse(rules []domain.FeeRule) []FeeRuleResponse {
	res := make([]FeeRuleResponse, len(rules))
	for i, r := range rules {
		res[i] = ToFeeRuleResponse(&r)
	}
	return res
}

// ToFeeSettingsResponse converts domain.FeeSettings to its response DTO
func ToFeeSettingsResponse(s *domain.FeeSettings) FeeSettingsResponse {
	return FeeSettingsResponse{
		FeesEnabled:         s.FeesEnabled,
		FeeMinimum:          s.FeeMinimum,
		FeeMaximum:          s.FeeMaximum,
		ExemptFirstTransfer: s.ExemptFirstTransfer,
		ActiveRuleID:        s.ActiveRuleID,
		DefaultFeePercent:   s.DefaultFeePercent,
		LastUpdatedAt:       s.LastUpdatedAt,
	}
}
