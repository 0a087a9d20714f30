package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a directed conversion edge source->target with a scalar
// multiplier: targetAmount = sourceAmount * Rate. Only one direction is
// normally stored; the reciprocal is derived as 1/Rate on lookup.
// Rates are superseded in place, not versioned.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	SourceCurrencyID string          `json:"sourceCurrencyID"`
	TargetCurrencyID string          `json:"targetCurrencyID"`
	Rate             decimal.Decimal `json:"rate"` // Invariant: Rate > 0
	DateEffective    time.Time       `json:"dateEffective"`
	Active           bool            `json:"active"`
	AuditFields
}
