package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// Snapshot is the consistent view of reference data a single pricing call
// runs against. The caller loads it once before pricing; the engine never
// fetches anything itself, so pricing stays deterministic and testable.
type Snapshot struct {
	Countries   []domain.Country
	Clients     []domain.Client
	Rates       []domain.ExchangeRate
	FeeRule     *domain.FeeRule // the selected active rule, nil when none
	FeeSettings domain.FeeSettings

	// SourceTransfer is the previously validated transfer a withdrawal
	// settles; nil for transfer pricing.
	SourceTransfer *domain.Transaction
}

func (s Snapshot) countryByID(id string) (domain.Country, bool) {
	for _, c := range s.Countries {
		if c.CountryID == id {
			return c, true
		}
	}
	return domain.Country{}, false
}

func (s Snapshot) clientByID(id string) (domain.Client, bool) {
	for _, c := range s.Clients {
		if c.ClientID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}

// TransferRequest is the operator input for pricing a transfer.
type TransferRequest struct {
	SenderClientID      string
	BeneficiaryClientID string
	SendCountryID       string
	ReceiveCountryID    string
	AmountSent          decimal.Decimal
	// Exempt suppresses the fee entirely (first-transfer exemption or a
	// manual waiver); the engine only consumes the flag, it does not track
	// transfer counts.
	Exempt bool
}

// WithdrawalRequest is the operator input for pricing a withdrawal of a
// previously validated transfer, identified by its reference number.
type WithdrawalRequest struct {
	ClientID       string
	TransferNumero string
	AmountSent     decimal.Decimal
	Exempt         bool
}

// Quote is a fully priced draft. The caller persists it as a new
// transaction in PENDING status; the engine never mutates storage.
type Quote struct {
	SendCurrencyID    string
	ReceiveCurrencyID string
	RateApplied       decimal.Decimal
	AmountGross       decimal.Decimal // converted amount before fee
	Fee               decimal.Decimal
	AmountNet         decimal.Decimal // AmountGross - Fee, exactly
}

// PriceTransfer prices a transfer: resolve the rate between the two
// countries' currencies, convert, then compute the fee on the CONVERTED
// (destination-currency) amount. That ordering is deliberate product
// behavior and must not be "fixed".
func PriceTransfer(req TransferRequest, snap Snapshot) (Quote, error) {
	if req.SenderClientID == "" {
		return Quote{}, missingField("senderClientID")
	}
	if req.BeneficiaryClientID == "" {
		return Quote{}, missingField("beneficiaryClientID")
	}
	if req.SendCountryID == "" {
		return Quote{}, missingField("sendCountryID")
	}
	if req.ReceiveCountryID == "" {
		return Quote{}, missingField("receiveCountryID")
	}
	if req.AmountSent.LessThanOrEqual(decimal.Zero) {
		return Quote{}, &ValidationError{Field: "amountSent", Reason: "must be positive"}
	}
	if _, ok := snap.clientByID(req.SenderClientID); !ok {
		return Quote{}, &ValidationError{Field: "senderClientID", Reason: "is unknown"}
	}
	if _, ok := snap.clientByID(req.BeneficiaryClientID); !ok {
		return Quote{}, &ValidationError{Field: "beneficiaryClientID", Reason: "is unknown"}
	}

	sendCountry, ok := snap.countryByID(req.SendCountryID)
	if !ok {
		return Quote{}, &ValidationError{Field: "sendCountryID", Reason: "is unknown"}
	}
	receiveCountry, ok := snap.countryByID(req.ReceiveCountryID)
	if !ok {
		return Quote{}, &ValidationError{Field: "receiveCountryID", Reason: "is unknown"}
	}

	rate, err := ResolveRate(sendCountry.CurrencyID, receiveCountry.CurrencyID, snap.Rates)
	if err != nil {
		return Quote{}, err
	}

	gross := req.AmountSent.Mul(rate)
	fee, err := ComputeFee(gross, snap.FeeRule, snap.FeeSettings, req.Exempt)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		SendCurrencyID:    sendCountry.CurrencyID,
		ReceiveCurrencyID: receiveCountry.CurrencyID,
		RateApplied:       rate,
		AmountGross:       gross,
		Fee:               fee,
		AmountNet:         gross.Sub(fee),
	}, nil
}

// PriceWithdrawal prices the settlement of a validated transfer. It settles
// in the transfer's destination currency at rate 1, and the fee is computed
// on the REQUESTED amount, not a converted one. The asymmetry with
// PriceTransfer is intentional.
func PriceWithdrawal(req WithdrawalRequest, snap Snapshot) (Quote, error) {
	if req.ClientID == "" {
		return Quote{}, missingField("clientID")
	}
	if req.TransferNumero == "" {
		return Quote{}, missingField("transferNumero")
	}
	if req.AmountSent.LessThanOrEqual(decimal.Zero) {
		return Quote{}, &ValidationError{Field: "amountSent", Reason: "must be positive"}
	}

	src := snap.SourceTransfer
	if src == nil {
		return Quote{}, &ValidationError{Field: "transferNumero", Reason: "does not reference a known transfer"}
	}
	if src.Kind != domain.Transfer {
		return Quote{}, &ValidationError{Field: "transferNumero", Reason: "does not reference a transfer"}
	}
	if src.Status != domain.StatusValidated {
		return Quote{}, &ValidationError{Field: "transferNumero", Reason: "references a transfer that is not validated"}
	}

	fee, err := ComputeFee(req.AmountSent, snap.FeeRule, snap.FeeSettings, req.Exempt)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		SendCurrencyID:    src.ReceiveCurrencyID,
		ReceiveCurrencyID: src.ReceiveCurrencyID,
		RateApplied:       one,
		AmountGross:       req.AmountSent,
		Fee:               fee,
		AmountNet:         req.AmountSent.Sub(fee),
	}, nil
}
