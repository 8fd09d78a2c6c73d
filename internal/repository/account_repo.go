// internal/repository/account_repo.go
package repository

import (
	"context"

	"debo/internal/domain"
)

// AccountUpdate carries the resolved column changes of an account patch.
type AccountUpdate struct {
	Name   domain.Optional[string]
	TypeID domain.Optional[int]
}

// AccountRepository defines the interface for account data operations.
// Every operation is scoped by the owning user.
type AccountRepository interface {
	// Create inserts an account with an already-resolved type id.
	Create(ctx context.Context, q DBExecutor, userID int64, name string, typeID int) error
	// GetByName retrieves an account by its name.
	GetByName(ctx context.Context, q DBExecutor, userID int64, name string) (*domain.Account, error)
	// List retrieves the user's accounts matching the filter.
	List(ctx context.Context, q DBExecutor, userID int64, f domain.AccountFilter) ([]domain.Account, error)
	// Update applies the set columns to the account identified by name and
	// returns the (possibly changed) name of the updated row.
	Update(ctx context.Context, q DBExecutor, userID int64, name string, u AccountUpdate) (string, error)
	// Delete removes the account identified by name.
	Delete(ctx context.Context, q DBExecutor, userID int64, name string) error
}
