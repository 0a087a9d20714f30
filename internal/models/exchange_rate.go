package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a directed conversion rate row.
// Note: Rate should use a precise decimal type like github.com/shopspring/decimal
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	SourceCurrencyID string          `json:"sourceCurrencyID"`
	TargetCurrencyID string          `json:"targetCurrencyID"`
	Rate             decimal.Decimal `json:"rate"` // Positive value
	DateEffective    time.Time       `json:"dateEffective"`
	Active           bool            `json:"active"`
	AuditFields
}
