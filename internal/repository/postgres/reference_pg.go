// internal/repository/postgres/reference_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"debo/internal/domain"
	"debo/internal/repository"
)

// ReferenceRepository implements repository.ReferenceRepository for PostgreSQL.
type ReferenceRepository struct{}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) repository.ReferenceRepository {
	return &ReferenceRepository{}
}

// CurrencyTypes lists the seeded currency types.
func (r *ReferenceRepository) CurrencyTypes(ctx context.Context, q repository.DBExecutor) ([]domain.CurrencyType, error) {
	types := []domain.CurrencyType{}
	query := `SELECT id, name FROM currency_types ORDER BY id`
	if err := q.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to fetch currency types: %w", err)
	}
	return types, nil
}

// AccountTypes lists the seeded account types.
func (r *ReferenceRepository) AccountTypes(ctx context.Context, q repository.DBExecutor) ([]domain.AccountType, error) {
	types := []domain.AccountType{}
	query := `SELECT id, name FROM account_types ORDER BY id`
	if err := q.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to fetch account types: %w", err)
	}
	return types, nil
}
