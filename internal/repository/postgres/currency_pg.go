// internal/repository/postgres/currency_pg.go
package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"debo/internal/domain"
	"debo/internal/repository"
	"debo/internal/util"
)

const currencySelect = `SELECT currencies.id, currencies.code, currencies.name, currency_types.name AS type
    FROM currencies
    JOIN currency_types ON currencies.type = currency_types.id`

// CurrencyRepository implements repository.CurrencyRepository for PostgreSQL.
type CurrencyRepository struct{}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(db *sqlx.DB) repository.CurrencyRepository {
	return &CurrencyRepository{}
}

// Create inserts a currency with an already-resolved type id.
func (r *CurrencyRepository) Create(ctx context.Context, q repository.DBExecutor, userID int64, code, name string, typeID int) error {
	query := `INSERT INTO currencies (user_id, code, name, type) VALUES ($1, $2, $3, $4)`
	if _, err := q.ExecContext(ctx, query, userID, code, name, typeID); err != nil {
		return translate(err, "currency")
	}
	return nil
}

// GetByCode retrieves a currency by its code.
func (r *CurrencyRepository) GetByCode(ctx context.Context, q repository.DBExecutor, userID int64, code string) (*domain.Currency, error) {
	var c domain.Currency
	query := currencySelect + ` WHERE currencies.user_id = $1 AND currencies.code = $2`
	if err := q.GetContext(ctx, &c, query, userID, code); err != nil {
		return nil, translate(err, "currency")
	}
	return &c, nil
}

// List retrieves the user's currencies matching the filter.
func (r *CurrencyRepository) List(ctx context.Context, q repository.DBExecutor, userID int64, f domain.CurrencyFilter) ([]domain.Currency, error) {
	currencies := []domain.Currency{}
	b := &binder{}
	query := currencySelect + ` WHERE currencies.user_id = ` + b.bind(userID)
	if f.Type != "" {
		query += ` AND currency_types.name = ` + b.bind(f.Type)
	}
	query += ` ORDER BY currencies.code`
	if err := q.SelectContext(ctx, &currencies, query, b.args...); err != nil {
		return nil, translate(err, "currency")
	}
	return currencies, nil
}

// Update applies the set columns to the currency identified by code and
// returns the code of the updated row.
func (r *CurrencyRepository) Update(ctx context.Context, q repository.DBExecutor, userID int64, code string, u repository.CurrencyUpdate) (string, error) {
	b := &binder{}
	sets := []string{}
	if u.Code.Valid() {
		sets = append(sets, "code = "+b.bind(u.Code.Value))
	}
	if u.Name.Valid() {
		sets = append(sets, "name = "+b.bind(u.Name.Value))
	}
	if u.TypeID.Valid() {
		sets = append(sets, "type = "+b.bind(u.TypeID.Value))
	}
	query := `UPDATE currencies SET ` + strings.Join(sets, ", ") +
		` WHERE user_id = ` + b.bind(userID) + ` AND code = ` + b.bind(code) + ` RETURNING code`
	var newCode string
	if err := q.GetContext(ctx, &newCode, query, b.args...); err != nil {
		return "", translate(err, "currency")
	}
	return newCode, nil
}

// Delete removes the currency identified by code.
func (r *CurrencyRepository) Delete(ctx context.Context, q repository.DBExecutor, userID int64, code string) error {
	query := `DELETE FROM currencies WHERE user_id = $1 AND code = $2`
	result, err := q.ExecContext(ctx, query, userID, code)
	if err != nil {
		return translate(err, "currency")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "currency")
	}
	if rows == 0 {
		return util.E(util.KindNotFound, "currency", "code", "Currency code not found.")
	}
	return nil
}
