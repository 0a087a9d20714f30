package models

import "github.com/shopspring/decimal"

// FeeRule represents a fee policy row; tiers live in their own table.
type FeeRule struct {
	FeeRuleID string          `json:"feeRuleID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Kind      string          `json:"kind"` // PERCENTAGE, FIXED or TIERED
	Value     decimal.Decimal `json:"value"`
	Active    bool            `json:"active"`
	AuditFields
}

// FeeTier represents one amount sub-range row of a tiered rule.
type FeeTier struct {
	FeeTierID string          `json:"feeTierID"` // Primary Key (UUID)
	FeeRuleID string          `json:"feeRuleID"` // FK -> fee_rules
	AmountMin decimal.Decimal `json:"amountMin"`
	AmountMax decimal.Decimal `json:"amountMax"`
	NoMax     bool            `json:"noMax"`
	Fee       decimal.Decimal `json:"fee"`
	Kind      string          `json:"kind"` // PERCENTAGE or FIXED
}

// FeeSettings represents the singleton fee configuration row.
type FeeSettings struct {
	FeesEnabled         bool            `json:"feesEnabled"`
	FeeMinimum          decimal.Decimal `json:"feeMinimum"`
	FeeMaximum          decimal.Decimal `json:"feeMaximum"`
	ExemptFirstTransfer bool            `json:"exemptFirstTransfer"`
	ActiveRuleID        *string         `json:"activeRuleID"` // nullable FK -> fee_rules
	DefaultFeePercent   decimal.Decimal `json:"defaultFeePercent"`
	AuditFields
}
