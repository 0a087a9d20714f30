package domain

import "github.com/shopspring/decimal"

// FeeKind selects how a fee rule (or a single tier) computes its fee.
type FeeKind string

const (
	FeePercentage FeeKind = "PERCENTAGE"
	FeeFixed      FeeKind = "FIXED"
	FeeTiered     FeeKind = "TIERED"
)

// FeeTier is one sub-range of the amount axis within a tiered fee rule.
// Bounds are inclusive. NoMax marks the last, unbounded tier explicitly
// instead of a magic sentinel amount.
type FeeTier struct {
	FeeTierID string          `json:"feeTierID"` // Primary Key (UUID)
	AmountMin decimal.Decimal `json:"amountMin"`
	AmountMax decimal.Decimal `json:"amountMax"` // ignored when NoMax
	NoMax     bool            `json:"noMax"`
	Fee       decimal.Decimal `json:"fee"`  // percent value or fixed amount, per Kind
	Kind      FeeKind         `json:"kind"` // PERCENTAGE or FIXED only
}

// Contains reports whether amount falls inside the tier's inclusive bounds.
func (t FeeTier) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(t.AmountMin) {
		return false
	}
	return t.NoMax || amount.LessThanOrEqual(t.AmountMax)
}

// FeeRule is a named fee policy. Value is used for PERCENTAGE and FIXED
// rules; Tiers is used for TIERED rules.
type FeeRule struct {
	FeeRuleID string          `json:"feeRuleID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Kind      FeeKind         `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	Tiers     []FeeTier       `json:"tiers,omitempty"` // sorted by AmountMin, non-overlapping
	Active    bool            `json:"active"`
	AuditFields
}

// FeeSettings is the global, singleton fee configuration.
type FeeSettings struct {
	FeesEnabled         bool            `json:"feesEnabled"`
	FeeMinimum          decimal.Decimal `json:"feeMinimum"` // clamp floor for any computed fee
	FeeMaximum          decimal.Decimal `json:"feeMaximum"` // clamp ceiling for any computed fee
	ExemptFirstTransfer bool            `json:"exemptFirstTransfer"`
	ActiveRuleID        *string         `json:"activeRuleID,omitempty"` // nil means no rule selected
	DefaultFeePercent   decimal.Decimal `json:"defaultFeePercent"`     // fallback policy when no rule is selected
	AuditFields
}
