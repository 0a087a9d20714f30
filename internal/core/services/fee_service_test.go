package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/core/services"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

type FeeServiceTestSuite struct {
	suite.Suite
	feeRepo *MockFeeRepository
	service *services.FeeService
}

func (s *FeeServiceTestSuite) SetupTest() {
	s.feeRepo = new(MockFeeRepository)
	s.service = services.NewFeeService(s.feeRepo)
}

func (s *FeeServiceTestSuite) settings() *domain.FeeSettings {
	return &domain.FeeSettings{
		FeesEnabled:       true,
		FeeMinimum:        decimal.NewFromInt(500),
		FeeMaximum:        decimal.NewFromInt(50000),
		DefaultFeePercent: decimal.NewFromInt(2),
	}
}

func (s *FeeServiceTestSuite) TestCreateFeeRule_Tiered() {
	ctx := context.Background()
	req := dto.CreateFeeRuleRequest{
		Name: "Standard tiers",
		Kind: domain.FeeTiered,
		Tiers: []dto.FeeTierRequest{
			{AmountMin: decimal.NewFromInt(1001), AmountMax: decimal.NewFromInt(5000), Fee: decimal.NewFromInt(5), Kind: domain.FeeFixed},
			{AmountMin: decimal.Zero, AmountMax: decimal.NewFromInt(1000), Fee: decimal.NewFromInt(2), Kind: domain.FeePercentage},
			{AmountMin: decimal.NewFromInt(5001), NoMax: true, Fee: decimal.NewFromInt(10), Kind: domain.FeePercentage},
		},
	}

	s.feeRepo.On("SaveFeeRule", mock.Anything, mock.MatchedBy(func(r domain.FeeRule) bool {
		// Tiers come back sorted by lower bound regardless of input order.
		return len(r.Tiers) == 3 &&
			r.Tiers[0].AmountMin.IsZero() &&
			r.Tiers[1].AmountMin.Equal(decimal.NewFromInt(1001)) &&
			r.Tiers[2].NoMax
	})).Return(nil).Once()

	rule, err := s.service.CreateFeeRule(ctx, req, uuid.NewString())

	s.Require().NoError(err)
	s.Require().NotNil(rule)
	s.True(rule.Active)
	s.feeRepo.AssertExpectations(s.T())
}

func (s *FeeServiceTestSuite) TestCreateFeeRule_TieredWithoutTiers() {
	ctx := context.Background()
	_, err := s.service.CreateFeeRule(ctx, dto.CreateFeeRuleRequest{
		Name: "Empty", Kind: domain.FeeTiered,
	}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeServiceTestSuite) TestCreateFeeRule_OverlappingTiers() {
	ctx := context.Background()
	_, err := s.service.CreateFeeRule(ctx, dto.CreateFeeRuleRequest{
		Name: "Overlap",
		Kind: domain.FeeTiered,
		Tiers: []dto.FeeTierRequest{
			{AmountMin: decimal.Zero, AmountMax: decimal.NewFromInt(2000), Fee: decimal.NewFromInt(2), Kind: domain.FeePercentage},
			{AmountMin: decimal.NewFromInt(1000), AmountMax: decimal.NewFromInt(5000), Fee: decimal.NewFromInt(5), Kind: domain.FeeFixed},
		},
	}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeServiceTestSuite) TestCreateFeeRule_UnboundedTierNotLast() {
	ctx := context.Background()
	_, err := s.service.CreateFeeRule(ctx, dto.CreateFeeRuleRequest{
		Name: "Bad unbounded",
		Kind: domain.FeeTiered,
		Tiers: []dto.FeeTierRequest{
			{AmountMin: decimal.Zero, NoMax: true, Fee: decimal.NewFromInt(2), Kind: domain.FeePercentage},
			{AmountMin: decimal.NewFromInt(1000), AmountMax: decimal.NewFromInt(5000), Fee: decimal.NewFromInt(5), Kind: domain.FeeFixed},
		},
	}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeServiceTestSuite) TestDeleteFeeRule_ActiveRuleRefused() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	settings := s.settings()
	settings.ActiveRuleID = &ruleID
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(settings, nil)

	err := s.service.DeleteFeeRule(ctx, ruleID, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.feeRepo.AssertNotCalled(s.T(), "DeleteFeeRule", mock.Anything, mock.Anything)
}

func (s *FeeServiceTestSuite) TestDeleteFeeRule_Success() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)
	s.feeRepo.On("DeleteFeeRule", mock.Anything, ruleID).Return(nil).Once()

	err := s.service.DeleteFeeRule(ctx, ruleID, uuid.NewString())

	s.Require().NoError(err)
	s.feeRepo.AssertExpectations(s.T())
}

func (s *FeeServiceTestSuite) TestUpdateFeeSettings_SelectInactiveRule() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)
	s.feeRepo.On("FindFeeRuleByID", mock.Anything, ruleID).Return(&domain.FeeRule{
		FeeRuleID: ruleID, Name: "Dormant", Kind: domain.FeeFixed, Value: decimal.NewFromInt(10), Active: false,
	}, nil)

	_, err := s.service.UpdateFeeSettings(ctx, dto.UpdateFeeSettingsRequest{ActiveRuleID: &ruleID}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeServiceTestSuite) TestUpdateFeeSettings_InvertedClamp() {
	ctx := context.Background()
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)

	minimum := decimal.NewFromInt(60000)
	_, err := s.service.UpdateFeeSettings(ctx, dto.UpdateFeeSettingsRequest{FeeMinimum: &minimum}, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeServiceTestSuite) TestUpdateFeeSettings_UnselectRule() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	settings := s.settings()
	settings.ActiveRuleID = &ruleID
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(settings, nil)
	s.feeRepo.On("UpdateFeeSettings", mock.Anything, mock.MatchedBy(func(st domain.FeeSettings) bool {
		return st.ActiveRuleID == nil
	})).Return(nil).Once()

	empty := ""
	updated, err := s.service.UpdateFeeSettings(ctx, dto.UpdateFeeSettingsRequest{ActiveRuleID: &empty}, uuid.NewString())

	s.Require().NoError(err)
	s.Nil(updated.ActiveRuleID)
	s.feeRepo.AssertExpectations(s.T())
}

func (s *FeeServiceTestSuite) TestQuoteFee_DefaultPolicy() {
	ctx := context.Background()
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)

	fee, err := s.service.QuoteFee(ctx, decimal.NewFromInt(100000), false)

	s.Require().NoError(err)
	s.True(fee.Equal(decimal.NewFromInt(2000)), "fee was %s", fee)
}

func (s *FeeServiceTestSuite) TestQuoteFee_ActiveRulePreferred() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	settings := s.settings()
	settings.ActiveRuleID = &ruleID
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(settings, nil)
	s.feeRepo.On("FindFeeRuleByID", mock.Anything, ruleID).Return(&domain.FeeRule{
		FeeRuleID: ruleID, Name: "Flat 1000", Kind: domain.FeeFixed, Value: decimal.NewFromInt(1000), Active: true,
	}, nil)

	fee, err := s.service.QuoteFee(ctx, decimal.NewFromInt(100000), false)

	s.Require().NoError(err)
	s.True(fee.Equal(decimal.NewFromInt(1000)), "fee was %s", fee)
}

func (s *FeeServiceTestSuite) TestQuoteFee_Exempt() {
	ctx := context.Background()
	s.feeRepo.On("GetFeeSettings", mock.Anything).Return(s.settings(), nil)

	fee, err := s.service.QuoteFee(ctx, decimal.NewFromInt(100000), true)

	s.Require().NoError(err)
	s.True(fee.IsZero())
}

func TestFeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeServiceTestSuite))
}
