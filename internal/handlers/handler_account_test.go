package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	args := m.Called(ctx, tenantID, accountID, actorID)
	return args.Error(0)
}
func (m *MockAccountService) ActivateAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	args := m.Called(ctx, tenantID, accountID, actorID)
	return args.Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, tenantID string, accountID string, actorID string) error {
	args := m.Called(ctx, tenantID, accountID, actorID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	tenantID           string
	actorID            string
}

// generateTestToken creates a signed JWT for testing.
func generateTestToken(secret, actorID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   actorID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}

// newTestRouter mounts the tenant routes behind the real auth middleware.
func newTestRouter(secret string, services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
	router := gin.New()
	v1 := router.Group("/api/v1", middleware.AuthMiddleware(secret))
	handlers.RegisterTenantRoutes(v1.Group("/tenants/:tenant_id"), services)
	return router
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.mockAccountService = new(MockAccountService)
	suite.router = newTestRouter(suite.jwtSecret, &portssvc.ServiceContainer{Account: suite.mockAccountService})
}

func (suite *AccountHandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	url := fmt.Sprintf("/api/v1/tenants/%s%s", suite.tenantID, path)
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.jwtSecret, suite.actorID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	expected := &domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		AccountNumber: "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		IsActive:      true,
		Balance:       decimal.Zero,
	}
	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.AccountNumber == "1000" && r.AccountType == domain.Asset
		}),
		suite.actorID,
	).Return(expected, nil).Once()

	w := suite.do(http.MethodPost, "/accounts", `{"accountNumber":"1000","name":"Cash","accountType":"ASSET"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.AccountID, resp.AccountID)
	suite.True(resp.IsActive)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindingErrors() {
	w := suite.do(http.MethodPost, "/accounts", `{"accountNumber":"1000","name":"Cash","accountType":"CASH"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/accounts", `{"name":"Cash","accountType":"ASSET"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestErrorKindsMapToStatus() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "duplicate number", err: apperrors.ErrDuplicateAccountNumber, status: http.StatusBadRequest},
		{name: "not found", err: apperrors.NewNotFoundError("account x"), status: http.StatusNotFound},
		{name: "already inactive", err: apperrors.ErrAccountInactive, status: http.StatusConflict},
		{name: "lock timeout", err: apperrors.ErrConcurrency, status: http.StatusServiceUnavailable},
		{name: "unexpected", err: fmt.Errorf("disk on fire"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockAccountService.On("DeactivateAccount", mock.Anything, suite.tenantID, "acc-1", suite.actorID).
				Return(tt.err).Once()

			w := suite.do(http.MethodPost, "/accounts/acc-1/deactivate", "")

			suite.Equal(tt.status, w.Code)
			var body handlers.ErrorResponse
			suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
			if tt.status == http.StatusInternalServerError {
				suite.Equal("Failed to deactivate account", body.Error)
			} else {
				suite.Contains(body.Error, tt.err.Error())
			}
			if tt.status == http.StatusServiceUnavailable {
				suite.Equal("1", w.Header().Get("Retry-After"))
			}
		})
	}
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_HasHistory() {
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.tenantID, "acc-1", suite.actorID).
		Return(apperrors.ErrAccountHasHistory).Once()
	w := suite.do(http.MethodDelete, "/accounts/acc-1", "")
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_PassesFilters() {
	suite.mockAccountService.On("ListAccounts", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(p dto.ListAccountsParams) bool {
			return p.AccountType == "REVENUE" && p.IsActive != nil && *p.IsActive && p.Limit == 10
		}),
	).Return([]domain.Account{{AccountID: "a", AccountNumber: "4000", AccountType: domain.Revenue}}, nil).Once()

	w := suite.do(http.MethodGet, "/accounts?type=REVENUE&is_active=true&limit=10", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 1)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestRequiresBearerToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/tenants/"+suite.tenantID+"/accounts/acc-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)

	req.Header.Set("Authorization", "Bearer "+generateTestToken("some-other-secret", suite.actorID))
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID")
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
