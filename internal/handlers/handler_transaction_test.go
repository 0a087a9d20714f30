package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/core/pricing"
	"github.com/transferpro/transferpro_backend/internal/dto"
	"github.com/transferpro/transferpro_backend/internal/handlers"
	"github.com/transferpro/transferpro_backend/internal/platform/config"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, agentID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CreateWithdrawal(ctx context.Context, req dto.CreateWithdrawalRequest, agentID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByNumero(ctx context.Context, numero string) (*domain.Transaction, error) {
	args := m.Called(ctx, numero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetStatistics(ctx context.Context) (*domain.TransactionStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionStatistics), args.Error(1)
}
func (m *MockTransactionService) ValidateTransaction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CancelTransaction(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) MarkTransactionWithdrawn(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, domain.UserRole, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Get(1).(domain.UserRole), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	mockTokenService       *MockTokenService
	agentID                string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.agentID = uuid.NewString()

	suite.mockTransactionService = new(MockTransactionService)
	suite.mockTokenService = new(MockTokenService)

	cfg := &config.Config{
		IsProduction:   true, // no swagger routes in the test router
		APIRateLimit:   "1000-S",
		LoginRateLimit: "5-M",
	}
	services := &portssvc.ServiceContainer{
		Transaction: suite.mockTransactionService,
		Token:       suite.mockTokenService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// perform issues a request with the given bearer token behaviour already
// programmed on the token mock.
func (suite *TransactionHandlerTestSuite) perform(method, path string, body any, role domain.UserRole) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}

	suite.mockTokenService.On("ValidateAccessToken", mock.Anything, "test-token").
		Return(suite.agentID, role, nil).Once()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) sampleTransfer() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:       uuid.NewString(),
		Numero:              "TRF-2026-0042",
		Kind:                domain.Transfer,
		Status:              domain.StatusPending,
		SenderClientID:      uuid.NewString(),
		BeneficiaryClientID: uuid.NewString(),
		SendCountryID:       uuid.NewString(),
		ReceiveCountryID:    uuid.NewString(),
		SendCurrencyID:      uuid.NewString(),
		ReceiveCurrencyID:   uuid.NewString(),
		AmountSent:          decimal.NewFromInt(100),
		ExchangeRateApplied: decimal.NewFromInt(655),
		AmountReceived:      decimal.NewFromInt(64190),
		Fee:                 decimal.NewFromInt(1310),
		AgentID:             uuid.NewString(),
	}
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransfer_Success() {
	txn := suite.sampleTransfer()
	reqBody := dto.CreateTransferRequest{
		SenderClientID:      txn.SenderClientID,
		BeneficiaryClientID: txn.BeneficiaryClientID,
		SendCountryID:       txn.SendCountryID,
		ReceiveCountryID:    txn.ReceiveCountryID,
		AmountSent:          decimal.NewFromInt(100),
	}

	suite.mockTransactionService.On("CreateTransfer", mock.Anything, reqBody, suite.agentID).
		Return(txn, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/transfers", reqBody, domain.RoleAgent)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TRF-2026-0042", resp.Numero)
	suite.Equal(domain.StatusPending, resp.Status)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransfer_MissingBeneficiary() {
	reqBody := map[string]any{
		"senderClientID":   uuid.NewString(),
		"sendCountryID":    uuid.NewString(),
		"receiveCountryID": uuid.NewString(),
		"amountSent":       "100",
	}

	w := suite.perform(http.MethodPost, "/api/v1/transactions/transfers", reqBody, domain.RoleAgent)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransfer")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransfer_NoRateConfigured() {
	reqBody := dto.CreateTransferRequest{
		SenderClientID:      uuid.NewString(),
		BeneficiaryClientID: uuid.NewString(),
		SendCountryID:       uuid.NewString(),
		ReceiveCountryID:    uuid.NewString(),
		AmountSent:          decimal.NewFromInt(100),
	}

	rateErr := &pricing.RateNotFoundError{SourceCurrencyID: "eur", TargetCurrencyID: "xof"}
	suite.mockTransactionService.On("CreateTransfer", mock.Anything, reqBody, suite.agentID).
		Return(nil, fmt.Errorf("transfer pricing failed: %w", rateErr)).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/transfers", reqBody, domain.RoleAgent)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestValidateTransaction_Success() {
	txn := suite.sampleTransfer()
	txn.Status = domain.StatusValidated

	suite.mockTransactionService.On("ValidateTransaction", mock.Anything, txn.TransactionID, suite.agentID).
		Return(txn, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/"+txn.TransactionID+"/validate", nil, domain.RoleAgent)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusValidated, resp.Status)
}

func (suite *TransactionHandlerTestSuite) TestValidateTransaction_AlreadyCancelled() {
	transactionID := uuid.NewString()
	transitionErr := &pricing.InvalidTransitionError{From: domain.StatusCancelled, Event: pricing.EventValidate}
	suite.mockTransactionService.On("ValidateTransaction", mock.Anything, transactionID, suite.agentID).
		Return(nil, transitionErr).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/"+transactionID+"/validate", nil, domain.RoleAgent)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestValidateTransaction_ConcurrentUpdate() {
	transactionID := uuid.NewString()
	suite.mockTransactionService.On("ValidateTransaction", mock.Anything, transactionID, suite.agentID).
		Return(nil, fmt.Errorf("%w: transaction was updated concurrently", apperrors.ErrConflict)).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/"+transactionID+"/validate", nil, domain.RoleAgent)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMarkWithdrawn_AgentForbidden() {
	transactionID := uuid.NewString()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/"+transactionID+"/mark-withdrawn", nil, domain.RoleAgent)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "MarkTransactionWithdrawn")
}

func (suite *TransactionHandlerTestSuite) TestMarkWithdrawn_AdminAllowed() {
	txn := suite.sampleTransfer()
	txn.Status = domain.StatusWithdrawn

	suite.mockTransactionService.On("MarkTransactionWithdrawn", mock.Anything, txn.TransactionID, suite.agentID).
		Return(txn, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/transactions/"+txn.TransactionID+"/mark-withdrawn", nil, domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetByNumero_NotFound() {
	suite.mockTransactionService.On("GetTransactionByNumero", mock.Anything, "TRF-2026-9999").
		Return(nil, fmt.Errorf("failed to get transaction by numero: %w", apperrors.ErrNotFound)).Once()

	w := suite.perform(http.MethodGet, "/api/v1/transactions/numero/TRF-2026-9999", nil, domain.RoleAgent)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_FiltersApplied() {
	suite.mockTransactionService.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.Kind != nil && *f.Kind == domain.Transfer &&
			f.Status != nil && *f.Status == domain.StatusPending &&
			f.Limit == 10
	})).Return([]domain.Transaction{*suite.sampleTransfer()}, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/transactions?kind=TRANSFER&status=PENDING&limit=10", nil, domain.RoleAgent)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ListTransactions")
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
