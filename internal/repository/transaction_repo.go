// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"debo/internal/domain"
)

// NewTransaction carries a fully resolved transaction row for insertion.
// A nil Date lets the store apply its own default.
type NewTransaction struct {
	Date       *time.Time
	Amount     decimal.Decimal
	CurrencyID int64
	DebitID    int64
	CreditID   int64
	Comment    *string
}

// TransactionUpdate carries the resolved column changes of a transaction
// patch. A null Comment clears the stored comment.
type TransactionUpdate struct {
	Date       domain.Optional[time.Time]
	Amount     domain.Optional[decimal.Decimal]
	CurrencyID domain.Optional[int64]
	DebitID    domain.Optional[int64]
	CreditID   domain.Optional[int64]
	Comment    domain.Optional[string]
}

// TransactionRepository defines the interface for transaction data
// operations. Every operation is scoped by the owning user.
type TransactionRepository interface {
	// Create inserts a transaction and returns its id.
	Create(ctx context.Context, q DBExecutor, userID int64, row NewTransaction) (int64, error)
	// GetByID retrieves a transaction by id.
	GetByID(ctx context.Context, q DBExecutor, userID, id int64) (*domain.Transaction, error)
	// List retrieves the user's transactions matching the filter.
	List(ctx context.Context, q DBExecutor, userID int64, f domain.TxFilter) ([]domain.Transaction, error)
	// Update applies the set columns to the transaction identified by id.
	Update(ctx context.Context, q DBExecutor, userID, id int64, u TransactionUpdate) error
	// Delete removes the transaction identified by id.
	Delete(ctx context.Context, q DBExecutor, userID, id int64) error
}
