// internal/repository/reference_repo.go
package repository

import (
	"context"

	"debo/internal/domain"
)

// ReferenceRepository defines read-only access to the seeded reference
// enumerations. Rows are resolved by name in the service layer.
type ReferenceRepository interface {
	// CurrencyTypes lists the seeded currency types.
	CurrencyTypes(ctx context.Context, q DBExecutor) ([]domain.CurrencyType, error)
	// AccountTypes lists the seeded account types.
	AccountTypes(ctx context.Context, q DBExecutor) ([]domain.AccountType, error)
}
