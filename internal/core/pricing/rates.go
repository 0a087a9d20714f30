package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

var one = decimal.NewFromInt(1)

// ResolveRate finds the conversion rate between two currencies among the
// supplied rate records. Equal currencies resolve to 1. A direct active
// record wins; otherwise the reciprocal of an active record in the opposite
// direction is used. No match yields a RateNotFoundError.
func ResolveRate(sourceCurrencyID, targetCurrencyID string, rates []domain.ExchangeRate) (decimal.Decimal, error) {
	if sourceCurrencyID == targetCurrencyID {
		return one, nil
	}

	for _, r := range rates {
		if !r.Active {
			continue
		}
		if r.SourceCurrencyID == sourceCurrencyID && r.TargetCurrencyID == targetCurrencyID {
			return r.Rate, nil
		}
	}

	for _, r := range rates {
		if !r.Active {
			continue
		}
		if r.SourceCurrencyID == targetCurrencyID && r.TargetCurrencyID == sourceCurrencyID {
			if r.Rate.IsZero() {
				continue
			}
			return one.Div(r.Rate), nil
		}
	}

	return decimal.Zero, &RateNotFoundError{SourceCurrencyID: sourceCurrencyID, TargetCurrencyID: targetCurrencyID}
}
