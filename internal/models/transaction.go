package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a priced transfer or withdrawal row.
// Amounts are fixed at creation; only the status columns change afterwards.
type Transaction struct {
	TransactionID string `json:"transactionID"` // Primary Key (UUID)
	Numero        string `json:"numero"`        // unique human-readable reference
	Kind          string `json:"kind"`          // TRANSFER or WITHDRAWAL
	Status        string `json:"status"`

	SenderClientID      string  `json:"senderClientID"`      // FK -> clients
	BeneficiaryClientID *string `json:"beneficiaryClientID"` // nullable, absent for withdrawals
	SendCountryID       string  `json:"sendCountryID"`
	ReceiveCountryID    string  `json:"receiveCountryID"`
	SendCurrencyID      string  `json:"sendCurrencyID"`
	ReceiveCurrencyID   string  `json:"receiveCurrencyID"`

	AmountSent          decimal.Decimal `json:"amountSent"`
	ExchangeRateApplied decimal.Decimal `json:"exchangeRateApplied"`
	AmountReceived      decimal.Decimal `json:"amountReceived"`
	Fee                 decimal.Decimal `json:"fee"`

	ValidatedAt          *time.Time `json:"validatedAt"`
	WithdrawnAt          *time.Time `json:"withdrawnAt"`
	WithdrawalCode       *string    `json:"withdrawalCode"`
	SourceTransferNumero *string    `json:"sourceTransferNumero"`

	AgentID string `json:"agentID"` // FK -> users
	Notes   string `json:"notes"`
	AuditFields
}
