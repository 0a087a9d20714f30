package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeFee calculates the fee owed on amount under the given rule and
// global settings. A nil rule falls back to the configured default flat
// percentage (settings.DefaultFeePercent), which is a named business policy
// rather than an incidental constant. The raw fee is clamped into
// [FeeMinimum, FeeMaximum]. Exempt or disabled fees are always zero.
func ComputeFee(amount decimal.Decimal, rule *domain.FeeRule, settings domain.FeeSettings, exempt bool) (decimal.Decimal, error) {
	if !settings.FeesEnabled || exempt {
		return decimal.Zero, nil
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	var raw decimal.Decimal
	switch {
	case rule == nil || !rule.Active:
		raw = amount.Mul(settings.DefaultFeePercent).Div(hundred)
	case rule.Kind == domain.FeePercentage:
		raw = amount.Mul(rule.Value).Div(hundred)
	case rule.Kind == domain.FeeFixed:
		raw = rule.Value
	case rule.Kind == domain.FeeTiered:
		tier, ok := matchTier(amount, rule.Tiers)
		if !ok {
			return decimal.Zero, &NoTierMatchError{Amount: amount}
		}
		if tier.Kind == domain.FeePercentage {
			raw = amount.Mul(tier.Fee).Div(hundred)
		} else {
			raw = tier.Fee
		}
	default:
		// Unknown rule kinds behave like the fallback policy.
		raw = amount.Mul(settings.DefaultFeePercent).Div(hundred)
	}

	return clampFee(raw, settings), nil
}

// matchTier returns the first tier whose inclusive bounds contain amount.
// Tiers are assumed sorted by AmountMin and non-overlapping.
func matchTier(amount decimal.Decimal, tiers []domain.FeeTier) (domain.FeeTier, bool) {
	for _, t := range tiers {
		if t.Contains(amount) {
			return t, true
		}
	}
	return domain.FeeTier{}, false
}

func clampFee(raw decimal.Decimal, settings domain.FeeSettings) decimal.Decimal {
	fee := raw
	if fee.GreaterThan(settings.FeeMaximum) {
		fee = settings.FeeMaximum
	}
	if fee.LessThan(settings.FeeMinimum) {
		fee = settings.FeeMinimum
	}
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}
