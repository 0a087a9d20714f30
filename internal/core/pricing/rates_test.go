package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
)

func rate(source, target string, value float64, active bool) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   source + "-" + target,
		SourceCurrencyID: source,
		TargetCurrencyID: target,
		Rate:             decimal.NewFromFloat(value),
		Active:           active,
	}
}

func TestResolveRate_SameCurrencyIdentity(t *testing.T) {
	// Identity must hold regardless of configured rates, including a bogus
	// self-referencing record.
	rates := []domain.ExchangeRate{
		rate("eur", "xof", 655.957, true),
		rate("usd", "usd", 42, true),
	}

	got, err := pricing.ResolveRate("usd", "usd", rates)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "got %s", got)
}

func TestResolveRate_DirectMatch(t *testing.T) {
	rates := []domain.ExchangeRate{rate("eur", "xof", 655.957, true)}

	got, err := pricing.ResolveRate("eur", "xof", rates)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(655.957)), "got %s", got)
}

func TestResolveRate_ReciprocalSymmetry(t *testing.T) {
	r := decimal.NewFromFloat(655.957)
	rates := []domain.ExchangeRate{rate("eur", "xof", 655.957, true)}

	got, err := pricing.ResolveRate("xof", "eur", rates)
	require.NoError(t, err)

	// resolveRate(B, A) == 1/r within floating tolerance.
	diff := got.Sub(decimal.NewFromInt(1).Div(r)).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(1e-12)), "diff %s", diff)

	// Round-tripping an amount through both directions returns it.
	amount := decimal.NewFromInt(500)
	back := amount.Mul(r).Mul(got)
	assert.True(t, back.Sub(amount).Abs().LessThan(decimal.NewFromFloat(1e-9)), "round trip drift %s", back)
}

func TestResolveRate_DirectWinsOverReciprocal(t *testing.T) {
	rates := []domain.ExchangeRate{
		rate("xof", "eur", 0.002, true),
		rate("eur", "xof", 655.957, true),
	}

	got, err := pricing.ResolveRate("eur", "xof", rates)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(655.957)), "direct record must win, got %s", got)
}

func TestResolveRate_IgnoresInactiveRecords(t *testing.T) {
	rates := []domain.ExchangeRate{rate("usd", "gbp", 0.79, false)}

	_, err := pricing.ResolveRate("usd", "gbp", rates)

	var notFound *pricing.RateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "usd", notFound.SourceCurrencyID)
	assert.Equal(t, "gbp", notFound.TargetCurrencyID)
}

func TestResolveRate_NoRateConfigured(t *testing.T) {
	_, err := pricing.ResolveRate("usd", "gbp", nil)

	var notFound *pricing.RateNotFoundError
	require.ErrorAs(t, err, &notFound)
}
