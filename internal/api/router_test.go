// internal/api/router_test.go
package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"debo/internal/api"
	"debo/internal/domain"
	"debo/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"debo/internal/api/handler"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Issue(ctx context.Context, email string) (*domain.Session, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, email string) (*domain.Session, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Authenticate(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionService) Revoke(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of identity.Provider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) FetchEmail(ctx context.Context, accessToken string) (string, error) {
	args := m.Called(ctx, accessToken)
	return args.String(0), args.Error(1)
}

// MockLedgerService is a mock implementation of service.LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CurrencyTypes(ctx context.Context) ([]domain.CurrencyType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyType), args.Error(1)
}

func (m *MockLedgerService) AccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

func (m *MockLedgerService) CreateCurrency(ctx context.Context, in domain.CurrencyInput, userID int64) (*domain.Currency, error) {
	args := m.Called(ctx, in, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockLedgerService) GetCurrency(ctx context.Context, code string, userID int64) (*domain.Currency, error) {
	args := m.Called(ctx, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockLedgerService) ListCurrencies(ctx context.Context, f domain.CurrencyFilter, userID int64) ([]domain.Currency, error) {
	args := m.Called(ctx, f, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockLedgerService) PatchCurrency(ctx context.Context, code string, p domain.CurrencyPatch, userID int64) (*domain.Currency, error) {
	args := m.Called(ctx, code, p, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockLedgerService) DeleteCurrency(ctx context.Context, code string, userID int64) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, in domain.AccountInput, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, in, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, name string, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, f domain.AccountFilter, userID int64) ([]domain.Account, error) {
	args := m.Called(ctx, f, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) PatchAccount(ctx context.Context, name string, p domain.AccountPatch, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, name, p, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) DeleteAccount(ctx context.Context, name string, userID int64) error {
	args := m.Called(ctx, name, userID)
	return args.Error(0)
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, in domain.TransactionInput, userID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, in, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, id string, userID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, f domain.TxFilter, userID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, f, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) PatchTransaction(ctx context.Context, id string, p domain.TransactionPatch, userID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id, p, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, id string, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockBalanceService is a mock implementation of service.BalanceService.
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Balance(ctx context.Context, accountName string, userID int64) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountName, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceService) Balances(ctx context.Context, userID int64) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

// testRouter wires the router with fresh mocks for one test case.
type testRouter struct {
	sessions *MockSessionService
	provider *MockIdentityProvider
	ledger   *MockLedgerService
	balances *MockBalanceService
	handler  http.Handler
}

func newTestRouter() *testRouter {
	tr := &testRouter{
		sessions: new(MockSessionService),
		provider: new(MockIdentityProvider),
		ledger:   new(MockLedgerService),
		balances: new(MockBalanceService),
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	authHandler := handler.NewAuthHandler(tr.sessions, tr.provider, logger)
	ledgerHandler := handler.NewLedgerHandler(tr.ledger, tr.balances, logger)
	tr.handler = api.NewRouter(authHandler, ledgerHandler, tr.sessions, logger)
	return tr
}

func (tr *testRouter) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec, rec.Body.String()
}

func TestHealth(t *testing.T) {
	tr := newTestRouter()
	rec, body := tr.do(t, "GET", "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body)
}

func TestLoginRedirectsToProvider(t *testing.T) {
	tr := newTestRouter()
	tr.provider.On("AuthURL").Return("https://accounts.example.com/auth?client_id=x").Once()

	rec, _ := tr.do(t, "GET", "/login", "", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://accounts.example.com/auth?client_id=x", rec.Header().Get("Location"))
}

func TestRedirectIssuesSessionForNewUser(t *testing.T) {
	tr := newTestRouter()
	tr.provider.On("ExchangeCode", mock.Anything, "authcode").Return("access-token", nil).Once()
	tr.provider.On("FetchEmail", mock.Anything, "access-token").Return("alice@example.com", nil).Once()
	tr.sessions.On("Get", mock.Anything, "alice@example.com").
		Return(nil, util.E(util.KindNoUser, "session", "email", "")).Once()
	tr.sessions.On("Issue", mock.Anything, "alice@example.com").
		Return(&domain.Session{Token: "fresh-token"}, nil).Once()

	rec, body := tr.do(t, "GET", "/redirect?code=authcode", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `"session_token":"fresh-token"`)
	mock.AssertExpectationsForObjects(t, tr.provider, tr.sessions)
}

func TestRedirectWithoutCode(t *testing.T) {
	tr := newTestRouter()

	rec, body := tr.do(t, "GET", "/redirect", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "authorization code")
	tr.provider.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything)
}

func TestAuthenticationRequired(t *testing.T) {
	tr := newTestRouter()
	tr.sessions.On("Authenticate", mock.Anything, "").
		Return(int64(0), util.E(util.KindInvalidToken, "session", "", "")).Once()

	rec, body := tr.do(t, "GET", "/currencies", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload util.Payload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, 401, payload.Code)
	assert.Equal(t, "Unauthorized", payload.Status)
	assert.Equal(t, "Authentication is required and has failed or has not yet been provided.", payload.Error)
	tr.ledger.AssertNotCalled(t, "ListCurrencies", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCurrencyEndpoint(t *testing.T) {
	tr := newTestRouter()
	tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()
	tr.ledger.On("CreateCurrency", mock.Anything,
		domain.CurrencyInput{Code: "USD", Name: "US Dollar", Type: "fiat"}, int64(7)).
		Return(&domain.Currency{ID: 1, Code: "USD", Name: "US Dollar", Type: "fiat"}, nil).Once()

	rec, body := tr.do(t, "POST", "/currencies", "tok", `{"code":"USD","name":"US Dollar","type":"fiat"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, body, `"code":"USD"`)
	mock.AssertExpectationsForObjects(t, tr.sessions, tr.ledger)
}

func TestMalformedBody(t *testing.T) {
	tr := newTestRouter()
	tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()

	rec, body := tr.do(t, "POST", "/currencies", "tok", `{"code":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "Malformed request body.")
	tr.ledger.AssertNotCalled(t, "CreateCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCurrencyNotFound(t *testing.T) {
	tr := newTestRouter()
	tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()
	tr.ledger.On("GetCurrency", mock.Anything, "ZZZ", int64(7)).
		Return(nil, util.E(util.KindNotFound, "currency", "code", "Currency code not found.")).Once()

	rec, body := tr.do(t, "GET", "/currency/ZZZ", "tok", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var payload util.Payload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, 404, payload.Code)
	assert.Equal(t, "Not Found", payload.Status)
	assert.Equal(t, "Currency code not found.", payload.Error)
}

func TestListTransactionsFilterParsing(t *testing.T) {
	tr := newTestRouter()

	t.Run("ForwardsParsedFilter", func(t *testing.T) {
		tr := newTestRouter()
		tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()
		tr.ledger.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TxFilter) bool {
			return f.MinDate != nil && f.Currency == "USD" && f.Account == "cash" && f.MinAmount != nil
		}), int64(7)).Return([]domain.Transaction{}, nil).Once()

		rec, _ := tr.do(t, "GET", "/transactions?minDate=2026-01-01&minAmount=10&currency=USD&account=cash", "tok", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		mock.AssertExpectationsForObjects(t, tr.ledger)
	})

	t.Run("RejectsBadDate", func(t *testing.T) {
		tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()

		rec, body := tr.do(t, "GET", "/transactions?minDate=soon", "tok", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body, "Unrecognized date")
		tr.ledger.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBalanceEndpoint(t *testing.T) {
	tr := newTestRouter()
	tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()
	tr.balances.On("Balance", mock.Anything, "cash", int64(7)).
		Return(&domain.AccountBalance{
			Account: domain.Account{ID: 11, Type: "asset", Name: "cash"},
			Balance: decimal.NewFromInt(70),
		}, nil).Once()

	rec, body := tr.do(t, "GET", "/balance/cash", "tok", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `"name":"cash"`)
	assert.Contains(t, body, `"balance":"70"`)
}

func TestLogout(t *testing.T) {
	tr := newTestRouter()
	tr.sessions.On("Authenticate", mock.Anything, "tok").Return(int64(7), nil).Once()
	tr.sessions.On("Revoke", mock.Anything, int64(7)).Return(nil).Once()

	rec, _ := tr.do(t, "GET", "/logout", "tok", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	mock.AssertExpectationsForObjects(t, tr.sessions)
}
