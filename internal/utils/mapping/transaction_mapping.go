package mapping

import (
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Empty optional strings become NULLs at the persistence boundary.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:       d.TransactionID,
		Numero:              d.Numero,
		Kind:                string(d.Kind),
		Status:              string(d.Status),
		SenderClientID:      d.SenderClientID,
		SendCountryID:       d.SendCountryID,
		ReceiveCountryID:    d.ReceiveCountryID,
		SendCurrencyID:      d.SendCurrencyID,
		ReceiveCurrencyID:   d.ReceiveCurrencyID,
		AmountSent:          d.AmountSent,
		ExchangeRateApplied: d.ExchangeRateApplied,
		AmountReceived:      d.AmountReceived,
		Fee:                 d.Fee,
		ValidatedAt:         d.ValidatedAt,
		WithdrawnAt:         d.WithdrawnAt,
		AgentID:             d.AgentID,
		Notes:               d.Notes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.BeneficiaryClientID != "" {
		m.BeneficiaryClientID = &d.BeneficiaryClientID
	}
	if d.WithdrawalCode != "" {
		m.WithdrawalCode = &d.WithdrawalCode
	}
	if d.SourceTransferNumero != "" {
		m.SourceTransferNumero = &d.SourceTransferNumero
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:       m.TransactionID,
		Numero:              m.Numero,
		Kind:                domain.TransactionKind(m.Kind),
		Status:              domain.TransactionStatus(m.Status),
		SenderClientID:      m.SenderClientID,
		SendCountryID:       m.SendCountryID,
		ReceiveCountryID:    m.ReceiveCountryID,
		SendCurrencyID:      m.SendCurrencyID,
		ReceiveCurrencyID:   m.ReceiveCurrencyID,
		AmountSent:          m.AmountSent,
		ExchangeRateApplied: m.ExchangeRateApplied,
		AmountReceived:      m.AmountReceived,
		Fee:                 m.Fee,
		ValidatedAt:         m.ValidatedAt,
		WithdrawnAt:         m.WithdrawnAt,
		AgentID:             m.AgentID,
		Notes:               m.Notes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	if m.BeneficiaryClientID != nil {
		d.BeneficiaryClientID = *m.BeneficiaryClientID
	}
	if m.WithdrawalCode != nil {
		d.WithdrawalCode = *m.WithdrawalCode
	}
	if m.SourceTransferNumero != nil {
		d.SourceTransferNumero = *m.SourceTransferNumero
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
