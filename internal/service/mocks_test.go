// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"debo/internal/domain"
	"debo/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so the service can use it as a repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertSession(ctx context.Context, q repository.DBExecutor, email, token string, expires time.Time) (*domain.User, error) {
	args := m.Called(ctx, q, email, token, expires)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByToken(ctx context.Context, q repository.DBExecutor, token string) (*domain.User, error) {
	args := m.Called(ctx, q, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExpireToken(ctx context.Context, q repository.DBExecutor, userID int64, at time.Time) error {
	args := m.Called(ctx, q, userID, at)
	return args.Error(0)
}

// MockReferenceRepository is a mock implementation of repository.ReferenceRepository.
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) CurrencyTypes(ctx context.Context, q repository.DBExecutor) ([]domain.CurrencyType, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyType), args.Error(1)
}

func (m *MockReferenceRepository) AccountTypes(ctx context.Context, q repository.DBExecutor) ([]domain.AccountType, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

// MockCurrencyRepository is a mock implementation of repository.CurrencyRepository.
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) Create(ctx context.Context, q repository.DBExecutor, userID int64, code, name string, typeID int) error {
	args := m.Called(ctx, q, userID, code, name, typeID)
	return args.Error(0)
}

func (m *MockCurrencyRepository) GetByCode(ctx context.Context, q repository.DBExecutor, userID int64, code string) (*domain.Currency, error) {
	args := m.Called(ctx, q, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) List(ctx context.Context, q repository.DBExecutor, userID int64, f domain.CurrencyFilter) ([]domain.Currency, error) {
	args := m.Called(ctx, q, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Update(ctx context.Context, q repository.DBExecutor, userID int64, code string, u repository.CurrencyUpdate) (string, error) {
	args := m.Called(ctx, q, userID, code, u)
	return args.String(0), args.Error(1)
}

func (m *MockCurrencyRepository) Delete(ctx context.Context, q repository.DBExecutor, userID int64, code string) error {
	args := m.Called(ctx, q, userID, code)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, q repository.DBExecutor, userID int64, name string, typeID int) error {
	args := m.Called(ctx, q, userID, name, typeID)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByName(ctx context.Context, q repository.DBExecutor, userID int64, name string) (*domain.Account, error) {
	args := m.Called(ctx, q, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, q repository.DBExecutor, userID int64, f domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, q, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, q repository.DBExecutor, userID int64, name string, u repository.AccountUpdate) (string, error) {
	args := m.Called(ctx, q, userID, name, u)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, q repository.DBExecutor, userID int64, name string) error {
	args := m.Called(ctx, q, userID, name)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, q repository.DBExecutor, userID int64, row repository.NewTransaction) (int64, error) {
	args := m.Called(ctx, q, userID, row)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, q repository.DBExecutor, userID int64, f domain.TxFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, q repository.DBExecutor, userID, id int64, u repository.TransactionUpdate) error {
	args := m.Called(ctx, q, userID, id, u)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	args := m.Called(ctx, q, userID, id)
	return args.Error(0)
}
