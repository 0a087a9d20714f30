package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func defaultSettings() domain.FeeSettings {
	return domain.FeeSettings{
		FeesEnabled:       true,
		FeeMinimum:        dec(500),
		FeeMaximum:        dec(50000),
		DefaultFeePercent: dec(2),
	}
}

func tieredRule() *domain.FeeRule {
	return &domain.FeeRule{
		FeeRuleID: "rule-tiered",
		Name:      "Standard tiers",
		Kind:      domain.FeeTiered,
		Active:    true,
		Tiers: []domain.FeeTier{
			{FeeTierID: "t1", AmountMin: dec(0), AmountMax: dec(1000), Fee: dec(2), Kind: domain.FeePercentage},
			{FeeTierID: "t2", AmountMin: dec(1001), AmountMax: dec(5000), Fee: dec(5), Kind: domain.FeeFixed},
			{FeeTierID: "t3", AmountMin: dec(5001), NoMax: true, Fee: dec(10), Kind: domain.FeePercentage},
		},
	}
}

func TestComputeFee_DisabledAndExempt(t *testing.T) {
	settings := defaultSettings()

	disabled := settings
	disabled.FeesEnabled = false

	tests := []struct {
		name     string
		settings domain.FeeSettings
		exempt   bool
	}{
		{name: "fees disabled globally", settings: disabled, exempt: false},
		{name: "first transfer exemption", settings: settings, exempt: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := pricing.ComputeFee(dec(100000), tieredRule(), tt.settings, tt.exempt)
			require.NoError(t, err)
			assert.True(t, fee.IsZero(), "expected zero fee, got %s", fee)
		})
	}
}

func TestComputeFee_FallbackPolicyWhenNoRule(t *testing.T) {
	settings := defaultSettings()

	// No rule selected: the configured default percentage applies.
	fee, err := pricing.ComputeFee(dec(100000), nil, settings, false)
	require.NoError(t, err)
	assert.True(t, fee.Equal(dec(2000)), "got %s", fee)

	// An inactive rule behaves the same as no rule.
	inactive := tieredRule()
	inactive.Active = false
	fee, err = pricing.ComputeFee(dec(100000), inactive, settings, false)
	require.NoError(t, err)
	assert.True(t, fee.Equal(dec(2000)), "got %s", fee)
}

func TestComputeFee_RuleKinds(t *testing.T) {
	settings := domain.FeeSettings{
		FeesEnabled:       true,
		FeeMinimum:        decimal.Zero,
		FeeMaximum:        dec(1e12),
		DefaultFeePercent: dec(2),
	}

	tests := []struct {
		name   string
		rule   *domain.FeeRule
		amount decimal.Decimal
		want   decimal.Decimal
	}{
		{
			name:   "percentage rule",
			rule:   &domain.FeeRule{Kind: domain.FeePercentage, Value: dec(3), Active: true},
			amount: dec(2000),
			want:   dec(60),
		},
		{
			name:   "fixed rule",
			rule:   &domain.FeeRule{Kind: domain.FeeFixed, Value: dec(500), Active: true},
			amount: dec(100000),
			want:   dec(500),
		},
		{
			name:   "tiered rule first tier percentage",
			rule:   tieredRule(),
			amount: dec(1000),
			want:   dec(20),
		},
		{
			// Spec'd worked example: amount 3000 falls in the fixed tier.
			name:   "tiered rule middle tier fixed",
			rule:   tieredRule(),
			amount: dec(3000),
			want:   dec(5),
		},
		{
			name:   "tiered rule unbounded tier",
			rule:   tieredRule(),
			amount: dec(2000000),
			want:   dec(200000),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := pricing.ComputeFee(tt.amount, tt.rule, settings, false)
			require.NoError(t, err)
			assert.True(t, fee.Equal(tt.want), "want %s, got %s", tt.want, fee)
		})
	}
}

func TestComputeFee_ClampsIntoBounds(t *testing.T) {
	settings := defaultSettings()
	pct := &domain.FeeRule{Kind: domain.FeePercentage, Value: dec(2), Active: true}

	// 2% of 1000 = 20, below the floor of 500.
	fee, err := pricing.ComputeFee(dec(1000), pct, settings, false)
	require.NoError(t, err)
	assert.True(t, fee.Equal(dec(500)), "floor clamp, got %s", fee)

	// 2% of 10,000,000 = 200,000, above the ceiling of 50,000.
	fee, err = pricing.ComputeFee(dec(10000000), pct, settings, false)
	require.NoError(t, err)
	assert.True(t, fee.Equal(dec(50000)), "ceiling clamp, got %s", fee)

	// In-range raw fee passes through untouched.
	fee, err = pricing.ComputeFee(dec(327978.5), pct, settings, false)
	require.NoError(t, err)
	assert.True(t, fee.Equal(dec(6559.57)), "got %s", fee)
}

func TestComputeFee_NonPositiveAmount(t *testing.T) {
	fee, err := pricing.ComputeFee(decimal.Zero, tieredRule(), defaultSettings(), false)
	require.NoError(t, err)
	assert.True(t, fee.IsZero())

	fee, err = pricing.ComputeFee(dec(-5), tieredRule(), defaultSettings(), false)
	require.NoError(t, err)
	assert.True(t, fee.IsZero())
}

func TestComputeFee_NoTierMatch(t *testing.T) {
	settings := defaultSettings()

	empty := &domain.FeeRule{Kind: domain.FeeTiered, Active: true}
	_, err := pricing.ComputeFee(dec(100), empty, settings, false)
	var noTier *pricing.NoTierMatchError
	require.ErrorAs(t, err, &noTier)

	// A gap between tiers is a configuration error, not a zero fee.
	gappy := &domain.FeeRule{
		Kind:   domain.FeeTiered,
		Active: true,
		Tiers: []domain.FeeTier{
			{AmountMin: dec(0), AmountMax: dec(100), Fee: dec(1), Kind: domain.FeeFixed},
			{AmountMin: dec(500), NoMax: true, Fee: dec(2), Kind: domain.FeeFixed},
		},
	}
	_, err = pricing.ComputeFee(dec(200), gappy, settings, false)
	require.ErrorAs(t, err, &noTier)
	assert.True(t, noTier.Amount.Equal(dec(200)))
}

func TestComputeFee_TierCoverageProperty(t *testing.T) {
	// For tiers partitioning [0, inf) with no gaps (touching bounds, first
	// match wins), no amount may raise NoTierMatch and every fee stays
	// within the global bounds.
	settings := defaultSettings()
	rule := &domain.FeeRule{
		Kind:   domain.FeeTiered,
		Active: true,
		Tiers: []domain.FeeTier{
			{AmountMin: dec(0), AmountMax: dec(1000), Fee: dec(2), Kind: domain.FeePercentage},
			{AmountMin: dec(1000), AmountMax: dec(5000), Fee: dec(5), Kind: domain.FeeFixed},
			{AmountMin: dec(5000), NoMax: true, Fee: dec(10), Kind: domain.FeePercentage},
		},
	}

	for _, amount := range []decimal.Decimal{
		dec(0.01), dec(999.99), dec(1000), dec(1000.5), dec(1001),
		dec(4999.99), dec(5000), dec(5000.5), dec(5001), dec(99999), dec(1e9),
	} {
		fee, err := pricing.ComputeFee(amount, rule, settings, false)
		require.NoError(t, err, "amount %s", amount)
		assert.True(t, fee.GreaterThanOrEqual(settings.FeeMinimum), "amount %s fee %s", amount, fee)
		assert.True(t, fee.LessThanOrEqual(settings.FeeMaximum), "amount %s fee %s", amount, fee)
	}
}
