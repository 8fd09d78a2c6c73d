// internal/repository/currency_repo.go
package repository

import (
	"context"

	"debo/internal/domain"
)

// CurrencyUpdate carries the resolved column changes of a currency patch.
// Absent fields leave their columns untouched.
type CurrencyUpdate struct {
	Code   domain.Optional[string]
	Name   domain.Optional[string]
	TypeID domain.Optional[int]
}

// CurrencyRepository defines the interface for currency data operations.
// Every operation is scoped by the owning user.
type CurrencyRepository interface {
	// Create inserts a currency with an already-resolved type id.
	Create(ctx context.Context, q DBExecutor, userID int64, code, name string, typeID int) error
	// GetByCode retrieves a currency by its code.
	GetByCode(ctx context.Context, q DBExecutor, userID int64, code string) (*domain.Currency, error)
	// List retrieves the user's currencies matching the filter.
	List(ctx context.Context, q DBExecutor, userID int64, f domain.CurrencyFilter) ([]domain.Currency, error)
	// Update applies the set columns to the currency identified by code and
	// returns the (possibly changed) code of the updated row.
	Update(ctx context.Context, q DBExecutor, userID int64, code string, u CurrencyUpdate) (string, error)
	// Delete removes the currency identified by code.
	Delete(ctx context.Context, q DBExecutor, userID int64, code string) error
}
