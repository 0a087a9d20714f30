package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes the two transaction shapes.
type TransactionKind string

const (
	Transfer   TransactionKind = "TRANSFER"
	Withdrawal TransactionKind = "WITHDRAWAL"
)

// TransactionStatus is the lifecycle state of a transaction. Transitions
// only move forward: PENDING -> VALIDATED -> WITHDRAWN, or PENDING -> CANCELLED.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusValidated TransactionStatus = "VALIDATED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusWithdrawn TransactionStatus = "WITHDRAWN"
)

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusWithdrawn
}

// Transaction is the central priced record. Amounts, rate and fee are fixed
// at creation; only Status and its associated timestamp/code change afterwards.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Numero        string            `json:"numero"`        // human-readable reference, backend-assigned
	Kind          TransactionKind   `json:"kind"`
	Status        TransactionStatus `json:"status"`

	SenderClientID      string `json:"senderClientID"`
	BeneficiaryClientID string `json:"beneficiaryClientID,omitempty"` // absent for withdrawals
	SendCountryID       string `json:"sendCountryID"`
	ReceiveCountryID    string `json:"receiveCountryID"`
	SendCurrencyID      string `json:"sendCurrencyID"`
	ReceiveCurrencyID   string `json:"receiveCurrencyID"`

	AmountSent          decimal.Decimal `json:"amountSent"` // > 0
	ExchangeRateApplied decimal.Decimal `json:"exchangeRateApplied"`
	AmountReceived      decimal.Decimal `json:"amountReceived"` // net, after fee
	Fee                 decimal.Decimal `json:"fee"`            // >= 0

	ValidatedAt    *time.Time `json:"validatedAt,omitempty"`
	WithdrawnAt    *time.Time `json:"withdrawnAt,omitempty"`
	WithdrawalCode string     `json:"withdrawalCode,omitempty"`

	// SourceTransferNumero links a withdrawal to the validated transfer it
	// settles; empty for transfers.
	SourceTransferNumero string `json:"sourceTransferNumero,omitempty"`

	AgentID string `json:"agentID"`
	Notes   string `json:"notes,omitempty"`
	AuditFields
}

// Validate checks the creation-time invariants of a priced transaction.
func (t Transaction) Validate() error {
	if t.AmountSent.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount sent must be positive")
	}
	if t.Fee.IsNegative() {
		return errors.New("fee must not be negative")
	}
	switch t.Kind {
	case Transfer:
		if t.BeneficiaryClientID == "" {
			return errors.New("beneficiary client is required for a transfer")
		}
	case Withdrawal:
		if t.SendCurrencyID != t.ReceiveCurrencyID {
			return errors.New("withdrawal must settle in a single currency")
		}
		if !t.ExchangeRateApplied.Equal(decimal.NewFromInt(1)) {
			return errors.New("withdrawal exchange rate must be 1")
		}
	default:
		return errors.New("unknown transaction kind " + string(t.Kind))
	}
	return nil
}
