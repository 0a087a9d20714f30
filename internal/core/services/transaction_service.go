package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
	"github.com/transferpro/transferpro_backend/internal/dto"
	"github.com/transferpro/transferpro_backend/internal/utils"
)

// TransactionService orchestrates transaction pricing, persistence and
// lifecycle. Pricing itself is delegated to the pure pricing package: this
// service only loads the reference snapshot, calls the engine and persists
// the result.
type TransactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	countryRepo portsrepo.CountryRepositoryFacade
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	feeRepo     portsrepo.FeeRepositoryFacade
	notifier    portssvc.NotificationWriterSvc
}

// NewTransactionService creates a new TransactionService. notifier may be
// nil in tests.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	countryRepo portsrepo.CountryRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	feeRepo portsrepo.FeeRepositoryFacade,
	notifier portssvc.NotificationWriterSvc,
) *TransactionService {
	return &TransactionService{
		txnRepo:     txnRepo,
		clientRepo:  clientRepo,
		countryRepo: countryRepo,
		rateRepo:    rateRepo,
		feeRepo:     feeRepo,
		notifier:    notifier,
	}
}

// loadFeeConfig loads the fee settings and the selected active rule, if any.
func (s *TransactionService) loadFeeConfig(ctx context.Context) (domain.FeeSettings, *domain.FeeRule, error) {
	settings, err := s.feeRepo.GetFeeSettings(ctx)
	if err != nil {
		return domain.FeeSettings{}, nil, fmt.Errorf("failed to load fee settings: %w", err)
	}
	var rule *domain.FeeRule
	if settings.ActiveRuleID != nil {
		rule, err = s.feeRepo.FindFeeRuleByID(ctx, *settings.ActiveRuleID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return domain.FeeSettings{}, nil, fmt.Errorf("failed to load active fee rule: %w", err)
		}
	}
	return *settings, rule, nil
}

// activeClient loads a client and rejects inactive ones for new transactions.
func (s *TransactionService) activeClient(ctx context.Context, clientID, field string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s '%s' not found", apperrors.ErrValidation, field, clientID)
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if !client.Active {
		return nil, fmt.Errorf("%w: %s references an inactive client", apperrors.ErrValidation, field)
	}
	return client, nil
}

// CreateTransfer prices a transfer against the current reference data and
// persists it as PENDING.
func (s *TransactionService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, agentID string) (*domain.Transaction, error) {
	sender, err := s.activeClient(ctx, req.SenderClientID, "senderClientID")
	if err != nil {
		return nil, err
	}
	beneficiary, err := s.activeClient(ctx, req.BeneficiaryClientID, "beneficiaryClientID")
	if err != nil {
		return nil, err
	}

	countries, err := s.countryRepo.ListCountries(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}
	rates, err := s.rateRepo.ListExchangeRates(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}
	settings, rule, err := s.loadFeeConfig(ctx)
	if err != nil {
		return nil, err
	}

	exempt, err := s.transferExemption(ctx, req.ApplyFees, sender.ClientID, settings)
	if err != nil {
		return nil, err
	}

	snap := pricing.Snapshot{
		Countries:   countries,
		Clients:     []domain.Client{*sender, *beneficiary},
		Rates:       rates,
		FeeRule:     rule,
		FeeSettings: settings,
	}
	quote, err := pricing.PriceTransfer(pricing.TransferRequest{
		SenderClientID:      req.SenderClientID,
		BeneficiaryClientID: req.BeneficiaryClientID,
		SendCountryID:       req.SendCountryID,
		ReceiveCountryID:    req.ReceiveCountryID,
		AmountSent:          req.AmountSent,
		Exempt:              exempt,
	}, snap)
	if err != nil {
		return nil, fmt.Errorf("transfer pricing failed: %w", err)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		Kind:                domain.Transfer,
		Status:              domain.StatusPending,
		SenderClientID:      req.SenderClientID,
		BeneficiaryClientID: req.BeneficiaryClientID,
		SendCountryID:       req.SendCountryID,
		ReceiveCountryID:    req.ReceiveCountryID,
		SendCurrencyID:      quote.SendCurrencyID,
		ReceiveCurrencyID:   quote.ReceiveCurrencyID,
		AmountSent:          req.AmountSent,
		ExchangeRateApplied: quote.RateApplied,
		AmountReceived:      quote.AmountNet,
		Fee:                 quote.Fee,
		AgentID:             agentID,
		Notes:               req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	stored, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "failed to save transfer", "sender_client_id", req.SenderClientID)
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}
	s.LogInfo(ctx, "transfer created", "numero", stored.Numero, "amount", stored.AmountSent.String())

	s.notifyTransaction(ctx, domain.EventTransactionCreated, stored)
	return stored, nil
}

// transferExemption decides whether the fee is waived: the operator can
// waive it per transaction, and the first transfer a client ever sends is
// free when the settings say so.
func (s *TransactionService) transferExemption(ctx context.Context, applyFees *bool, senderClientID string, settings domain.FeeSettings) (bool, error) {
	if applyFees != nil && !*applyFees {
		return true, nil
	}
	if !settings.ExemptFirstTransfer {
		return false, nil
	}
	count, err := s.clientRepo.CountClientTransfers(ctx, senderClientID)
	if err != nil {
		return false, fmt.Errorf("failed to count client transfers: %w", err)
	}
	return count == 0, nil
}

// CreateWithdrawal prices a withdrawal against a validated transfer and
// persists it as PENDING.
func (s *TransactionService) CreateWithdrawal(ctx context.Context, req dto.CreateWithdrawalRequest, agentID string) (*domain.Transaction, error) {
	if _, err := s.activeClient(ctx, req.ClientID, "clientID"); err != nil {
		return nil, err
	}

	src, err := s.txnRepo.FindTransactionByNumero(ctx, req.TransferNumero)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load source transfer: %w", err)
	}
	if src != nil {
		if req.WithdrawalCode != "" && req.WithdrawalCode != src.WithdrawalCode {
			return nil, fmt.Errorf("%w: withdrawal code does not match", apperrors.ErrValidation)
		}
		if req.AmountSent.GreaterThan(src.AmountReceived) {
			return nil, fmt.Errorf("%w: amount exceeds the transfer's net amount", apperrors.ErrValidation)
		}
	}

	settings, rule, err := s.loadFeeConfig(ctx)
	if err != nil {
		return nil, err
	}

	exempt := req.ApplyFees != nil && !*req.ApplyFees
	snap := pricing.Snapshot{
		FeeRule:        rule,
		FeeSettings:    settings,
		SourceTransfer: src,
	}
	quote, err := pricing.PriceWithdrawal(pricing.WithdrawalRequest{
		ClientID:       req.ClientID,
		TransferNumero: req.TransferNumero,
		AmountSent:     req.AmountSent,
		Exempt:         exempt,
	}, snap)
	if err != nil {
		return nil, fmt.Errorf("withdrawal pricing failed: %w", err)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		Kind:                 domain.Withdrawal,
		Status:               domain.StatusPending,
		SenderClientID:       req.ClientID,
		SendCountryID:        src.ReceiveCountryID,
		ReceiveCountryID:     src.ReceiveCountryID,
		SendCurrencyID:       quote.SendCurrencyID,
		ReceiveCurrencyID:    quote.ReceiveCurrencyID,
		AmountSent:           req.AmountSent,
		ExchangeRateApplied:  quote.RateApplied,
		AmountReceived:       quote.AmountNet,
		Fee:                  quote.Fee,
		SourceTransferNumero: src.Numero,
		WithdrawalCode:       src.WithdrawalCode,
		AgentID:              agentID,
		Notes:                req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	stored, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "failed to save withdrawal", "transfer_numero", req.TransferNumero)
		return nil, fmt.Errorf("failed to save withdrawal: %w", err)
	}
	s.LogInfo(ctx, "withdrawal created", "numero", stored.Numero, "transfer_numero", src.Numero)

	s.notifyTransaction(ctx, domain.EventTransactionCreated, stored)
	return stored, nil
}

// applyTransition loads a transaction, applies the lifecycle event and
// persists the change under the optimistic status guard. Losing the guard
// race surfaces as ErrConflict.
func (s *TransactionService) applyTransition(ctx context.Context, transactionID string, event pricing.Event, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	expected := txn.Status
	updated, err := pricing.Transition(*txn, event, time.Now())
	if err != nil {
		return nil, err
	}

	if event == pricing.EventValidate && updated.Kind == domain.Transfer {
		code, err := utils.GenerateWithdrawalCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate withdrawal code: %w", err)
		}
		updated.WithdrawalCode = code
	}

	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = requestingUserID

	if err := s.txnRepo.UpdateTransactionStatus(ctx, updated, expected); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction was updated concurrently", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "failed to persist transition", "transaction_id", transactionID, "event", string(event))
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}

	return &updated, nil
}

// ValidateTransaction moves a PENDING transaction to VALIDATED. Validating
// a withdrawal also settles its source transfer as WITHDRAWN.
func (s *TransactionService) ValidateTransaction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	updated, err := s.applyTransition(ctx, transactionID, pricing.EventValidate, requestingUserID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "transaction validated", "numero", updated.Numero)

	if updated.Kind == domain.Withdrawal && updated.SourceTransferNumero != "" {
		s.settleSourceTransfer(ctx, updated.SourceTransferNumero, requestingUserID)
	}

	s.notifyTransaction(ctx, domain.EventTransactionValidated, updated)
	return updated, nil
}

// settleSourceTransfer marks the transfer behind a validated withdrawal as
// WITHDRAWN. The withdrawal's own validation already committed, so a failure
// here is logged and left for reconciliation rather than unwound.
func (s *TransactionService) settleSourceTransfer(ctx context.Context, numero, requestingUserID string) {
	src, err := s.txnRepo.FindTransactionByNumero(ctx, numero)
	if err != nil {
		s.LogError(ctx, err, "failed to load source transfer for settlement", "numero", numero)
		return
	}
	settled, err := pricing.Transition(*src, pricing.EventMarkWithdrawn, time.Now())
	if err != nil {
		s.LogError(ctx, err, "source transfer not in a settleable state", "numero", numero)
		return
	}
	settled.LastUpdatedAt = time.Now()
	settled.LastUpdatedBy = requestingUserID
	if err := s.txnRepo.UpdateTransactionStatus(ctx, settled, src.Status); err != nil {
		s.LogError(ctx, err, "failed to settle source transfer", "numero", numero)
		return
	}
	s.notifyTransaction(ctx, domain.EventTransactionWithdrawn, &settled)
}

// CancelTransaction moves a PENDING transaction to CANCELLED.
func (s *TransactionService) CancelTransaction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	updated, err := s.applyTransition(ctx, transactionID, pricing.EventCancel, requestingUserID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "transaction cancelled", "numero", updated.Numero)

	s.notifyTransaction(ctx, domain.EventTransactionCancelled, updated)
	return updated, nil
}

// MarkTransactionWithdrawn moves a VALIDATED transfer to WITHDRAWN.
func (s *TransactionService) MarkTransactionWithdrawn(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	updated, err := s.applyTransition(ctx, transactionID, pricing.EventMarkWithdrawn, requestingUserID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "transaction marked withdrawn", "numero", updated.Numero)

	s.notifyTransaction(ctx, domain.EventTransactionWithdrawn, updated)
	return updated, nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// GetTransactionByNumero retrieves a transaction by its reference number.
func (s *TransactionService) GetTransactionByNumero(ctx context.Context, numero string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByNumero(ctx, numero)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by numero: %w", err)
	}
	return txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// GetStatistics computes the dashboard rollup.
func (s *TransactionService) GetStatistics(ctx context.Context) (*domain.TransactionStatistics, error) {
	stats, err := s.txnRepo.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

// notifyTransaction renders and records a best-effort notification to the
// transaction's sender. Never fails the calling operation.
func (s *TransactionService) notifyTransaction(ctx context.Context, event domain.NotificationEvent, txn *domain.Transaction) {
	if s.notifier == nil {
		return
	}
	client, err := s.clientRepo.FindClientByID(ctx, txn.SenderClientID)
	if err != nil {
		s.LogDebug(ctx, "skipping notification, sender not loadable", "transaction_id", txn.TransactionID)
		return
	}

	channel := domain.ChannelSMS
	recipient := client.Phone
	if client.Email != "" {
		channel = domain.ChannelEmail
		recipient = client.Email
	}
	if recipient == "" {
		return
	}

	params := map[string]string{
		"clientName": client.FullName(),
		"numero":     txn.Numero,
		"amount":     txn.AmountSent.Round(2).String(),
		"netAmount":  txn.AmountReceived.Round(2).String(),
		"fee":        txn.Fee.Round(2).String(),
	}
	if event == domain.EventTransactionValidated && txn.Kind == domain.Transfer {
		params["withdrawalCode"] = txn.WithdrawalCode
	}

	s.notifier.NotifyEvent(ctx, event, channel, recipient, params)
}
