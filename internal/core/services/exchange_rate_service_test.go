package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/core/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

type MockLiveRateProvider struct {
	mock.Mock
}

func (m *MockLiveRateProvider) FetchRate(ctx context.Context, sourceISOCode, targetISOCode string) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx, sourceISOCode, targetISOCode)
	return args.Get(0).(decimal.Decimal), args.Get(1).(time.Time), args.Error(2)
}

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	rateRepo     *MockExchangeRateRepository
	currencyRepo *MockCurrencyRepository
	liveRates    *MockLiveRateProvider
	service      *services.ExchangeRateService
}

func (s *ExchangeRateServiceTestSuite) SetupTest() {
	s.rateRepo = new(MockExchangeRateRepository)
	s.currencyRepo = new(MockCurrencyRepository)
	s.liveRates = new(MockLiveRateProvider)
	s.service = services.NewExchangeRateService(s.rateRepo, s.currencyRepo, s.liveRates)
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	targetID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		SourceCurrencyID: sourceID,
		TargetCurrencyID: targetID,
		Rate:             decimal.NewFromFloat(655.957),
		DateEffective:    time.Now(),
	}

	s.currencyRepo.On("FindCurrencyByID", mock.Anything, sourceID).Return(&domain.Currency{CurrencyID: sourceID}, nil).Once()
	s.currencyRepo.On("FindCurrencyByID", mock.Anything, targetID).Return(&domain.Currency{CurrencyID: targetID}, nil).Once()
	s.rateRepo.On("FindExchangeRateByPair", mock.Anything, sourceID, targetID).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("SaveExchangeRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.SourceCurrencyID == sourceID && r.TargetCurrencyID == targetID && r.Active
	})).Return(nil).Once()

	rate, err := s.service.CreateExchangeRate(ctx, req, uuid.NewString())

	s.Require().NoError(err)
	s.True(rate.Rate.Equal(req.Rate))
	s.NotEmpty(rate.ExchangeRateID)
	s.rateRepo.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SupersedesExistingPair() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	targetID := uuid.NewString()
	existingID := uuid.NewString()
	createdAt := time.Now().Add(-48 * time.Hour)
	req := dto.CreateExchangeRateRequest{
		SourceCurrencyID: sourceID,
		TargetCurrencyID: targetID,
		Rate:             decimal.NewFromFloat(660.5),
		DateEffective:    time.Now(),
	}

	s.currencyRepo.On("FindCurrencyByID", mock.Anything, mock.Anything).Return(&domain.Currency{}, nil).Twice()
	s.rateRepo.On("FindExchangeRateByPair", mock.Anything, sourceID, targetID).Return(&domain.ExchangeRate{
		ExchangeRateID:   existingID,
		SourceCurrencyID: sourceID,
		TargetCurrencyID: targetID,
		Rate:             decimal.NewFromFloat(655.957),
		AuditFields:      domain.AuditFields{CreatedAt: createdAt, CreatedBy: "original-admin"},
	}, nil).Once()
	s.rateRepo.On("SaveExchangeRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ExchangeRateID == existingID && r.CreatedBy == "original-admin"
	})).Return(nil).Once()

	rate, err := s.service.CreateExchangeRate(ctx, req, uuid.NewString())

	s.Require().NoError(err)
	s.Equal(existingID, rate.ExchangeRateID)
	s.True(rate.Rate.Equal(req.Rate))
	s.True(rate.CreatedAt.Equal(createdAt))
	s.rateRepo.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		SourceCurrencyID: uuid.NewString(),
		TargetCurrencyID: uuid.NewString(),
		Rate:             decimal.Zero,
		DateEffective:    time.Now(),
	}

	_, err := s.service.CreateExchangeRate(ctx, req, uuid.NewString())

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.rateRepo.AssertNotCalled(s.T(), "SaveExchangeRate")
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_RejectsSamePair() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		SourceCurrencyID: currencyID,
		TargetCurrencyID: currencyID,
		Rate:             decimal.NewFromInt(1),
		DateEffective:    time.Now(),
	}

	_, err := s.service.CreateExchangeRate(ctx, req, uuid.NewString())

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.rateRepo.AssertNotCalled(s.T(), "SaveExchangeRate")
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownSourceCurrency() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		SourceCurrencyID: sourceID,
		TargetCurrencyID: uuid.NewString(),
		Rate:             decimal.NewFromInt(600),
		DateEffective:    time.Now(),
	}

	s.currencyRepo.On("FindCurrencyByID", mock.Anything, sourceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateExchangeRate(ctx, req, uuid.NewString())

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.rateRepo.AssertNotCalled(s.T(), "SaveExchangeRate")
}

func (s *ExchangeRateServiceTestSuite) TestResolveRate_InverseFallback() {
	ctx := context.Background()
	eurID := uuid.NewString()
	xofID := uuid.NewString()

	s.rateRepo.On("ListExchangeRates", mock.Anything, true).Return([]domain.ExchangeRate{
		{SourceCurrencyID: eurID, TargetCurrencyID: xofID, Rate: decimal.NewFromInt(500), Active: true},
	}, nil).Once()

	rate, err := s.service.ResolveRate(ctx, xofID, eurID)

	s.Require().NoError(err)
	s.True(rate.Equal(decimal.NewFromInt(1).Div(decimal.NewFromInt(500))))
}

func (s *ExchangeRateServiceTestSuite) TestResolveRate_NoRateStored() {
	ctx := context.Background()

	s.rateRepo.On("ListExchangeRates", mock.Anything, true).Return([]domain.ExchangeRate{}, nil).Once()

	_, err := s.service.ResolveRate(ctx, uuid.NewString(), uuid.NewString())

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ExchangeRateServiceTestSuite) TestSuggestRate_Success() {
	ctx := context.Background()
	fetchedAt := time.Now()

	s.liveRates.On("FetchRate", mock.Anything, "EUR", "XOF").Return(decimal.NewFromFloat(655.957), fetchedAt, nil).Once()

	suggestion, err := s.service.SuggestRate(ctx, "eur", "xof")

	s.Require().NoError(err)
	s.Equal("EUR", suggestion.SourceISOCode)
	s.Equal("XOF", suggestion.TargetISOCode)
	s.True(suggestion.Rate.Equal(decimal.NewFromFloat(655.957)))
	s.liveRates.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestSuggestRate_InvalidCode() {
	ctx := context.Background()

	_, err := s.service.SuggestRate(ctx, "EU", "XOF")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.liveRates.AssertNotCalled(s.T(), "FetchRate")
}

func (s *ExchangeRateServiceTestSuite) TestSuggestRate_NoProviderConfigured() {
	ctx := context.Background()
	service := services.NewExchangeRateService(s.rateRepo, s.currencyRepo, nil)

	_, err := service.SuggestRate(ctx, "EUR", "XOF")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
