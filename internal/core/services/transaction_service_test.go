package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
	"github.com/transferpro/transferpro_backend/internal/core/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

var withdrawalCodePattern = regexp.MustCompile(`^RET\d{6}$`)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo     *MockTransactionRepository
	clientRepo  *MockClientRepository
	countryRepo *MockCountryRepository
	rateRepo    *MockExchangeRateRepository
	feeRepo     *MockFeeRepository
	service     *services.TransactionService

	eurID, xofID        string
	franceID, senegalID string
	senderID, beneficID string
	agentID             string
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.clientRepo = new(MockClientRepository)
	s.countryRepo = new(MockCountryRepository)
	s.rateRepo = new(MockExchangeRateRepository)
	s.feeRepo = new(MockFeeRepository)
	s.service = services.NewTransactionService(s.txnRepo, s.clientRepo, s.countryRepo, s.rateRepo, s.feeRepo, nil)

	s.eurID = uuid.NewString()
	s.xofID = uuid.NewString()
	s.franceID = uuid.NewString()
	s.senegalID = uuid.NewString()
	s.senderID = uuid.NewString()
	s.beneficID = uuid.NewString()
	s.agentID = uuid.NewString()
}

func (s *TransactionServiceTestSuite) client(id string) *domain.Client {
	return &domain.Client{ClientID: id, Name: "Test", Surname: "Client", Phone: "+221770000000", Active: true}
}

func (s *TransactionServiceTestSuite) countries() []domain.Country {
	return []domain.Country{
		{CountryID: s.franceID, Name: "France", ISOCode: "FR", CurrencyID: s.eurID, Active: true},
		{CountryID: s.senegalID, Name: "Senegal", ISOCode: "SN", CurrencyID: s.xofID, Active: true},
	}
}

func (s *TransactionServiceTestSuite) rates() []domain.ExchangeRate {
	return []domain.ExchangeRate{
		{
			ExchangeRateID:   uuid.NewString(),
			SourceCurrencyID: s.eurID,
			TargetCurrencyID: s.xofID,
			Rate:             decimal.RequireFromString("655.957"),
			Active:           true,
		},
	}
}

func (s *TransactionServiceTestSuite) settings() *domain.FeeSettings {
	return &domain.FeeSettings{
		FeesEnabled:       true,
		FeeMinimum:        decimal.NewFromInt(500),
		FeeMaximum:        decimal.NewFromInt(50000),
		DefaultFeePercent: decimal.NewFromInt(2),
	}
}

func (s *TransactionServiceTestSuite) expectTransferRefData() {
	ctx := mock.Anything
	s.clientRepo.On("FindClientByID", ctx, s.senderID).Return(s.client(s.senderID), nil)
	s.clientRepo.On("FindClientByID", ctx, s.beneficID).Return(s.client(s.beneficID), nil)
	s.countryRepo.On("ListCountries", ctx, true).Return(s.countries(), nil)
	s.rateRepo.On("ListExchangeRates", ctx, true).Return(s.rates(), nil)
	s.feeRepo.On("GetFeeSettings", ctx).Return(s.settings(), nil)
}

func (s *TransactionServiceTestSuite) transferRequest() dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		SenderClientID:      s.senderID,
		BeneficiaryClientID: s.beneficID,
		SendCountryID:       s.franceID,
		ReceiveCountryID:    s.senegalID,
		AmountSent:          decimal.NewFromInt(500),
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransfer_Success() {
	ctx := context.Background()
	s.expectTransferRefData()

	var saved domain.Transaction
	s.txnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.Transfer && t.Status == domain.StatusPending
	})).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Transaction)
	}).Return(&domain.Transaction{Numero: "TRF-2026-0001"}, nil).Once()

	stored, err := s.service.CreateTransfer(ctx, s.transferRequest(), s.agentID)

	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("TRF-2026-0001", stored.Numero)
	// 500 EUR * 655.957 = 327978.5 XOF gross, 2% default fee on the
	// converted amount, clamp window [500, 50000] leaves it untouched.
	s.True(saved.Fee.Equal(decimal.RequireFromString("6559.57")), "fee was %s", saved.Fee)
	s.True(saved.AmountReceived.Equal(decimal.RequireFromString("321418.93")), "net was %s", saved.AmountReceived)
	s.True(saved.ExchangeRateApplied.Equal(decimal.RequireFromString("655.957")))
	s.Equal(s.eurID, saved.SendCurrencyID)
	s.Equal(s.xofID, saved.ReceiveCurrencyID)
	s.Equal(s.agentID, saved.AgentID)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransfer_FirstTransferExempt() {
	ctx := context.Background()
	s.clientRepo.On("FindClientByID", mock.Anything, s.senderID).Return(s.client(s.senderID), nil)
	s.clientRepo.On("FindClientByID", mock.Anything, s.beneficID).Return(s.client(s.beneficID), nil)
	s.countryRepo.On("ListCountries", mock.Anything, true).Return(s.countries(), nil)
	s.rateRepo.On("ListExchangeRates", mock.Anything, true).Return(s.rates(), nil)
	settings := s.settings()
	settings.ExemptFirstTransfer = true
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(settings, nil)
	s.clientRepo.On("CountClientTransfers", mock.Anything, s.senderID).Return(int64(0), nil).Once()

	s.txnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Fee.IsZero() && t.AmountReceived.Equal(decimal.RequireFromString("327978.5"))
	})).Return(&domain.Transaction{Numero: "TRF-2026-0002"}, nil).Once()

	_, err := s.service.CreateTransfer(ctx, s.transferRequest(), s.agentID)
	s.Require().NoError(err)
	s.clientRepo.AssertExpectations(s.T())
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransfer_FeeWaivedByOperator() {
	ctx := context.Background()
	s.expectTransferRefData()

	s.txnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Fee.IsZero()
	})).Return(&domain.Transaction{Numero: "TRF-2026-0003"}, nil).Once()

	req := s.transferRequest()
	applyFees := false
	req.ApplyFees = &applyFees

	_, err := s.service.CreateTransfer(ctx, req, s.agentID)
	s.Require().NoError(err)
	// The waiver short-circuits the first-transfer lookup entirely.
	s.clientRepo.AssertNotCalled(s.T(), "CountClientTransfers", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransfer_InactiveSender() {
	ctx := context.Background()
	sender := s.client(s.senderID)
	sender.Active = false
	s.clientRepo.On("FindClientByID", mock.Anything, s.senderID).Return(sender, nil)

	_, err := s.service.CreateTransfer(ctx, s.transferRequest(), s.agentID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransfer_NoRateConfigured() {
	ctx := context.Background()
	s.clientRepo.On("FindClientByID", mock.Anything, s.senderID).Return(s.client(s.senderID), nil)
	s.clientRepo.On("FindClientByID", mock.Anything, s.beneficID).Return(s.client(s.beneficID), nil)
	s.countryRepo.On("ListCountries", mock.Anything, true).Return(s.countries(), nil)
	s.rateRepo.On("ListExchangeRates", mock.Anything, true).Return([]domain.ExchangeRate{}, nil)
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)

	_, err := s.service.CreateTransfer(ctx, s.transferRequest(), s.agentID)

	s.Require().Error(err)
	var rateErr *pricing.RateNotFoundError
	s.ErrorAs(err, &rateErr)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) validatedTransfer() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:       uuid.NewString(),
		Numero:              "TRF-2026-0001",
		Kind:                domain.Transfer,
		Status:              domain.StatusValidated,
		SenderClientID:      s.senderID,
		BeneficiaryClientID: s.beneficID,
		SendCountryID:       s.franceID,
		ReceiveCountryID:    s.senegalID,
		SendCurrencyID:      s.eurID,
		ReceiveCurrencyID:   s.xofID,
		AmountSent:          decimal.NewFromInt(500),
		ExchangeRateApplied: decimal.RequireFromString("655.957"),
		AmountReceived:      decimal.RequireFromString("321418.93"),
		Fee:                 decimal.RequireFromString("6559.57"),
		WithdrawalCode:      "RET123456",
	}
}

func (s *TransactionServiceTestSuite) TestCreateWithdrawal_Success() {
	ctx := context.Background()
	src := s.validatedTransfer()
	s.clientRepo.On("FindClientByID", mock.Anything, s.beneficID).Return(s.client(s.beneficID), nil)
	s.txnRepo.On("FindTransactionByNumero", mock.Anything, src.Numero).Return(src, nil)
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)

	var saved domain.Transaction
	s.txnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.Withdrawal && t.Status == domain.StatusPending
	})).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Transaction)
	}).Return(&domain.Transaction{Numero: "WDR-2026-0001"}, nil).Once()

	stored, err := s.service.CreateWithdrawal(ctx, dto.CreateWithdrawalRequest{
		ClientID:       s.beneficID,
		TransferNumero: src.Numero,
		AmountSent:     decimal.NewFromInt(100000),
		WithdrawalCode: "RET123456",
	}, s.agentID)

	s.Require().NoError(err)
	s.Equal("WDR-2026-0001", stored.Numero)
	// Withdrawal fee applies to the requested amount: 2% of 100000.
	s.True(saved.Fee.Equal(decimal.NewFromInt(2000)), "fee was %s", saved.Fee)
	s.True(saved.AmountReceived.Equal(decimal.NewFromInt(98000)))
	s.True(saved.ExchangeRateApplied.Equal(decimal.NewFromInt(1)))
	s.Equal(src.Numero, saved.SourceTransferNumero)
	s.Equal(s.xofID, saved.SendCurrencyID)
	s.Equal(s.xofID, saved.ReceiveCurrencyID)
}

func (s *TransactionServiceTestSuite) TestCreateWithdrawal_WrongCode() {
	ctx := context.Background()
	src := s.validatedTransfer()
	s.clientRepo.On("FindClientByID", mock.Anything, s.beneficID).Return(s.client(s.beneficID), nil)
	s.txnRepo.On("FindTransactionByNumero", mock.Anything, src.Numero).Return(src, nil)

	_, err := s.service.CreateWithdrawal(ctx, dto.CreateWithdrawalRequest{
		ClientID:       s.beneficID,
		TransferNumero: src.Numero,
		AmountSent:     decimal.NewFromInt(1000),
		WithdrawalCode: "RET999999",
	}, s.agentID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestCreateWithdrawal_PendingTransfer() {
	ctx := context.Background()
	src := s.validatedTransfer()
	src.Status = domain.StatusPending
	s.clientRepo.On("FindClientByID", mock.Anything, s.beneficID).Return(s.client(s.beneficID), nil)
	s.txnRepo.On("FindTransactionByNumero", mock.Anything, src.Numero).Return(src, nil)
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)

	_, err := s.service.CreateWithdrawal(ctx, dto.CreateWithdrawalRequest{
		ClientID:       s.beneficID,
		TransferNumero: src.Numero,
		AmountSent:     decimal.NewFromInt(1000),
	}, s.agentID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateWithdrawal_AmountExceedsNet() {
	ctx := context.Background()
	src := s.validatedTransfer()
	s.clientRepo.On("FindClientByID", mock.Anything, s.beneficID).Return(s.client(s.beneficID), nil)
	s.txnRepo.On("FindTransactionByNumero", mock.Anything, src.Numero).Return(src, nil)

	_, err := s.service.CreateWithdrawal(ctx, dto.CreateWithdrawalRequest{
		ClientID:       s.beneficID,
		TransferNumero: src.Numero,
		AmountSent:     decimal.NewFromInt(400000),
	}, s.agentID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestValidateTransaction_TransferGetsCode() {
	ctx := context.Background()
	txn := s.validatedTransfer()
	txn.Status = domain.StatusPending
	txn.WithdrawalCode = ""
	s.txnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil)
	s.txnRepo.On("UpdateTransactionStatus", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.StatusValidated &&
			t.ValidatedAt != nil &&
			withdrawalCodePattern.MatchString(t.WithdrawalCode)
	}), domain.StatusPending).Return(nil).Once()

	updated, err := s.service.ValidateTransaction(ctx, txn.TransactionID, s.agentID)

	s.Require().NoError(err)
	s.Equal(domain.StatusValidated, updated.Status)
	s.Regexp(withdrawalCodePattern, updated.WithdrawalCode)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestValidateTransaction_AlreadyValidated() {
	ctx := context.Background()
	txn := s.validatedTransfer()
	s.txnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil)

	_, err := s.service.ValidateTransaction(ctx, txn.TransactionID, s.agentID)

	s.Require().Error(err)
	var transitionErr *pricing.InvalidTransitionError
	s.ErrorAs(err, &transitionErr)
	s.txnRepo.AssertNotCalled(s.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestValidateTransaction_ConcurrentConflict() {
	ctx := context.Background()
	txn := s.validatedTransfer()
	txn.Status = domain.StatusPending
	txn.WithdrawalCode = ""
	s.txnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil)
	s.txnRepo.On("UpdateTransactionStatus", mock.Anything, mock.Anything, domain.StatusPending).
		Return(apperrors.ErrNotFound).Once()

	_, err := s.service.ValidateTransaction(ctx, txn.TransactionID, s.agentID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *TransactionServiceTestSuite) TestValidateWithdrawal_SettlesSourceTransfer() {
	ctx := context.Background()
	src := s.validatedTransfer()
	withdrawal := &domain.Transaction{
		TransactionID:        uuid.NewString(),
		Numero:               "WDR-2026-0001",
		Kind:                 domain.Withdrawal,
		Status:               domain.StatusPending,
		SenderClientID:       s.beneficID,
		SendCountryID:        s.senegalID,
		ReceiveCountryID:     s.senegalID,
		SendCurrencyID:       s.xofID,
		ReceiveCurrencyID:    s.xofID,
		AmountSent:           decimal.NewFromInt(100000),
		ExchangeRateApplied:  decimal.NewFromInt(1),
		AmountReceived:       decimal.NewFromInt(98000),
		Fee:                  decimal.NewFromInt(2000),
		SourceTransferNumero: src.Numero,
	}

	s.txnRepo.On("FindTransactionByID", mock.Anything, withdrawal.TransactionID).Return(withdrawal, nil)
	s.txnRepo.On("UpdateTransactionStatus", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == withdrawal.TransactionID && t.Status == domain.StatusValidated
	}), domain.StatusPending).Return(nil).Once()

	s.txnRepo.On("FindTransactionByNumero", mock.Anything, src.Numero).Return(src, nil)
	s.txnRepo.On("UpdateTransactionStatus", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == src.TransactionID && t.Status == domain.StatusWithdrawn && t.WithdrawnAt != nil
	}), domain.StatusValidated).Return(nil).Once()

	updated, err := s.service.ValidateTransaction(ctx, withdrawal.TransactionID, s.agentID)

	s.Require().NoError(err)
	s.Equal(domain.StatusValidated, updated.Status)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCancelTransaction() {
	ctx := context.Background()
	txn := s.validatedTransfer()
	txn.Status = domain.StatusPending
	s.txnRepo.On("FindTransactionByID", mock.Anything, txn.TransactionID).Return(txn, nil)
	s.txnRepo.On("UpdateTransactionStatus", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.StatusCancelled
	}), domain.StatusPending).Return(nil).Once()

	updated, err := s.service.CancelTransaction(ctx, txn.TransactionID, s.agentID)

	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, updated.Status)
}

func (s *TransactionServiceTestSuite) TestListTransactions_DefaultLimit() {
	ctx := context.Background()
	s.txnRepo.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.Limit == 50
	})).Return([]domain.Transaction{}, nil).Once()

	txns, err := s.service.ListTransactions(ctx, portsrepo.TransactionFilter{})

	s.Require().NoError(err)
	s.NotNil(txns)
	s.txnRepo.AssertExpectations(s.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
