package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
)

func transferSnapshot() pricing.Snapshot {
	return pricing.Snapshot{
		Countries: []domain.Country{
			{CountryID: "fr", Name: "France", ISOCode: "FR", CurrencyID: "eur", Active: true},
			{CountryID: "sn", Name: "Senegal", ISOCode: "SN", CurrencyID: "xof", Active: true},
			{CountryID: "us", Name: "United States", ISOCode: "US", CurrencyID: "usd", Active: true},
			{CountryID: "gb", Name: "United Kingdom", ISOCode: "GB", CurrencyID: "gbp", Active: true},
		},
		Clients: []domain.Client{
			{ClientID: "sender", Name: "Amadou", Surname: "Diallo", CountryID: "fr", Active: true},
			{ClientID: "benef", Name: "Fatou", Surname: "Ndiaye", CountryID: "sn", Active: true},
		},
		Rates: []domain.ExchangeRate{
			{ExchangeRateID: "r1", SourceCurrencyID: "eur", TargetCurrencyID: "xof", Rate: dec(655.957), Active: true},
		},
		FeeSettings: defaultSettings(),
	}
}

func transferRequest() pricing.TransferRequest {
	return pricing.TransferRequest{
		SenderClientID:      "sender",
		BeneficiaryClientID: "benef",
		SendCountryID:       "fr",
		ReceiveCountryID:    "sn",
		AmountSent:          dec(500),
	}
}

func TestPriceTransfer_WorkedExample(t *testing.T) {
	// 500 EUR at 655.957 with the 2% fallback fee clamped to [500, 50000] XOF.
	quote, err := pricing.PriceTransfer(transferRequest(), transferSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "eur", quote.SendCurrencyID)
	assert.Equal(t, "xof", quote.ReceiveCurrencyID)
	assert.True(t, quote.RateApplied.Equal(dec(655.957)), "rate %s", quote.RateApplied)
	assert.True(t, quote.AmountGross.Equal(dec(327978.5)), "gross %s", quote.AmountGross)
	assert.True(t, quote.Fee.Equal(dec(6559.57)), "fee %s", quote.Fee)
	assert.True(t, quote.AmountNet.Equal(dec(321418.93)), "net %s", quote.AmountNet)
}

func TestPriceTransfer_FeeOnConvertedAmount(t *testing.T) {
	// The fee must be computed on the destination-currency amount. With a
	// fixed floor of 500 XOF, a fee computed on the 500 EUR source amount
	// would clamp very differently; pin the converted-amount behavior.
	snap := transferSnapshot()
	req := transferRequest()
	quote, err := pricing.PriceTransfer(req, snap)
	require.NoError(t, err)

	// 2% of 327978.5 XOF, not 2% of 500 EUR (which would clamp to the
	// 500 floor instead).
	assert.True(t, quote.Fee.Equal(dec(6559.57)), "fee %s", quote.Fee)

	feeOnSource, err := pricing.ComputeFee(req.AmountSent, snap.FeeRule, snap.FeeSettings, false)
	require.NoError(t, err)
	assert.False(t, quote.Fee.Equal(feeOnSource))
}

func TestPriceTransfer_Conservation(t *testing.T) {
	quote, err := pricing.PriceTransfer(transferRequest(), transferSnapshot())
	require.NoError(t, err)

	// gross - fee == net exactly, no rounding drift.
	assert.True(t, quote.AmountGross.Sub(quote.Fee).Equal(quote.AmountNet))
}

func TestPriceTransfer_RateNotFound(t *testing.T) {
	req := transferRequest()
	req.SendCountryID = "us"
	req.ReceiveCountryID = "gb"

	_, err := pricing.PriceTransfer(req, transferSnapshot())

	var notFound *pricing.RateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "usd", notFound.SourceCurrencyID)
	assert.Equal(t, "gbp", notFound.TargetCurrencyID)
}

func TestPriceTransfer_SameCurrencyCorridor(t *testing.T) {
	snap := transferSnapshot()
	snap.Countries = append(snap.Countries, domain.Country{CountryID: "ml", Name: "Mali", ISOCode: "ML", CurrencyID: "xof", Active: true})

	req := transferRequest()
	req.SendCountryID = "sn"
	req.ReceiveCountryID = "ml"

	quote, err := pricing.PriceTransfer(req, snap)
	require.NoError(t, err)
	assert.True(t, quote.RateApplied.Equal(decimal.NewFromInt(1)))
	assert.True(t, quote.AmountGross.Equal(req.AmountSent))
}

func TestPriceTransfer_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*pricing.TransferRequest)
		field  string
	}{
		{name: "missing sender", mutate: func(r *pricing.TransferRequest) { r.SenderClientID = "" }, field: "senderClientID"},
		{name: "missing beneficiary", mutate: func(r *pricing.TransferRequest) { r.BeneficiaryClientID = "" }, field: "beneficiaryClientID"},
		{name: "missing send country", mutate: func(r *pricing.TransferRequest) { r.SendCountryID = "" }, field: "sendCountryID"},
		{name: "missing receive country", mutate: func(r *pricing.TransferRequest) { r.ReceiveCountryID = "" }, field: "receiveCountryID"},
		{name: "zero amount", mutate: func(r *pricing.TransferRequest) { r.AmountSent = decimal.Zero }, field: "amountSent"},
		{name: "negative amount", mutate: func(r *pricing.TransferRequest) { r.AmountSent = dec(-10) }, field: "amountSent"},
		{name: "unknown sender", mutate: func(r *pricing.TransferRequest) { r.SenderClientID = "ghost" }, field: "senderClientID"},
		{name: "unknown country", mutate: func(r *pricing.TransferRequest) { r.ReceiveCountryID = "atlantis" }, field: "receiveCountryID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := transferRequest()
			tt.mutate(&req)

			_, err := pricing.PriceTransfer(req, transferSnapshot())

			var vErr *pricing.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestPriceTransfer_ExemptionZeroesFee(t *testing.T) {
	req := transferRequest()
	req.Exempt = true

	quote, err := pricing.PriceTransfer(req, transferSnapshot())
	require.NoError(t, err)
	assert.True(t, quote.Fee.IsZero())
	assert.True(t, quote.AmountNet.Equal(quote.AmountGross))
}

func withdrawalSnapshot(status domain.TransactionStatus, kind domain.TransactionKind) pricing.Snapshot {
	snap := transferSnapshot()
	snap.FeeRule = &domain.FeeRule{
		FeeRuleID: "fixed-500",
		Kind:      domain.FeeFixed,
		Value:     dec(500),
		Active:    true,
	}
	snap.SourceTransfer = &domain.Transaction{
		TransactionID:     "src",
		Numero:            "TRF-2026-0001",
		Kind:              kind,
		Status:            status,
		ReceiveCountryID:  "sn",
		ReceiveCurrencyID: "xof",
		SendCurrencyID:    "eur",
		AmountSent:        dec(500),
	}
	return snap
}

func TestPriceWithdrawal_WorkedExample(t *testing.T) {
	// Withdraw 100000 XOF with a fixed 500 XOF fee rule.
	req := pricing.WithdrawalRequest{
		ClientID:       "benef",
		TransferNumero: "TRF-2026-0001",
		AmountSent:     dec(100000),
	}

	quote, err := pricing.PriceWithdrawal(req, withdrawalSnapshot(domain.StatusValidated, domain.Transfer))
	require.NoError(t, err)

	assert.True(t, quote.RateApplied.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "xof", quote.SendCurrencyID)
	assert.Equal(t, "xof", quote.ReceiveCurrencyID)
	assert.True(t, quote.Fee.Equal(dec(500)), "fee %s", quote.Fee)
	assert.True(t, quote.AmountNet.Equal(dec(99500)), "net %s", quote.AmountNet)
}

func TestPriceWithdrawal_FeeOnRequestedAmount(t *testing.T) {
	// Unlike transfers, withdrawal fees apply to the requested amount
	// directly. The asymmetry is intentional product behavior.
	snap := withdrawalSnapshot(domain.StatusValidated, domain.Transfer)
	snap.FeeRule = &domain.FeeRule{Kind: domain.FeePercentage, Value: dec(2), Active: true}

	req := pricing.WithdrawalRequest{ClientID: "benef", TransferNumero: "TRF-2026-0001", AmountSent: dec(100000)}
	quote, err := pricing.PriceWithdrawal(req, snap)
	require.NoError(t, err)
	assert.True(t, quote.Fee.Equal(dec(2000)), "fee %s", quote.Fee)
}

func TestPriceWithdrawal_SourceTransferGuards(t *testing.T) {
	req := pricing.WithdrawalRequest{
		ClientID:       "benef",
		TransferNumero: "TRF-2026-0001",
		AmountSent:     dec(1000),
	}

	tests := []struct {
		name string
		snap pricing.Snapshot
	}{
		{name: "source still pending", snap: withdrawalSnapshot(domain.StatusPending, domain.Transfer)},
		{name: "source cancelled", snap: withdrawalSnapshot(domain.StatusCancelled, domain.Transfer)},
		{name: "source already withdrawn", snap: withdrawalSnapshot(domain.StatusWithdrawn, domain.Transfer)},
		{name: "source is a withdrawal", snap: withdrawalSnapshot(domain.StatusValidated, domain.Withdrawal)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pricing.PriceWithdrawal(req, tt.snap)

			var vErr *pricing.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "transferNumero", vErr.Field)
		})
	}

	t.Run("no source transfer in snapshot", func(t *testing.T) {
		snap := withdrawalSnapshot(domain.StatusValidated, domain.Transfer)
		snap.SourceTransfer = nil

		_, err := pricing.PriceWithdrawal(req, snap)
		var vErr *pricing.ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}
