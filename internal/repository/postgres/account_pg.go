// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"debo/internal/domain"
	"debo/internal/repository"
	"debo/internal/util"
)

const accountSelect = `SELECT accounts.id, account_types.name AS type, accounts.name
    FROM accounts
    JOIN account_types ON accounts.type = account_types.id`

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// Create inserts an account with an already-resolved type id.
func (r *AccountRepository) Create(ctx context.Context, q repository.DBExecutor, userID int64, name string, typeID int) error {
	query := `INSERT INTO accounts (user_id, name, type) VALUES ($1, $2, $3)`
	if _, err := q.ExecContext(ctx, query, userID, name, typeID); err != nil {
		return translate(err, "account")
	}
	return nil
}

// GetByName retrieves an account by its name.
func (r *AccountRepository) GetByName(ctx context.Context, q repository.DBExecutor, userID int64, name string) (*domain.Account, error) {
	var a domain.Account
	query := accountSelect + ` WHERE accounts.user_id = $1 AND accounts.name = $2`
	if err := q.GetContext(ctx, &a, query, userID, name); err != nil {
		return nil, translate(err, "account")
	}
	return &a, nil
}

// List retrieves the user's accounts matching the filter.
func (r *AccountRepository) List(ctx context.Context, q repository.DBExecutor, userID int64, f domain.AccountFilter) ([]domain.Account, error) {
	accounts := []domain.Account{}
	b := &binder{}
	query := accountSelect + ` WHERE accounts.user_id = ` + b.bind(userID)
	if f.Type != "" {
		query += ` AND account_types.name = ` + b.bind(f.Type)
	}
	query += ` ORDER BY accounts.name`
	if err := q.SelectContext(ctx, &accounts, query, b.args...); err != nil {
		return nil, translate(err, "account")
	}
	return accounts, nil
}

// Update applies the set columns to the account identified by name and
// returns the name of the updated row.
func (r *AccountRepository) Update(ctx context.Context, q repository.DBExecutor, userID int64, name string, u repository.AccountUpdate) (string, error) {
	b := &binder{}
	sets := []string{}
	if u.TypeID.Valid() {
		sets = append(sets, "type = "+b.bind(u.TypeID.Value))
	}
	if u.Name.Valid() {
		sets = append(sets, "name = "+b.bind(u.Name.Value))
	}
	query := `UPDATE accounts SET ` + strings.Join(sets, ", ") +
		` WHERE user_id = ` + b.bind(userID) + ` AND name = ` + b.bind(name) + ` RETURNING name`
	var newName string
	if err := q.GetContext(ctx, &newName, query, b.args...); err != nil {
		return "", translate(err, "account")
	}
	return newName, nil
}

// Delete removes the account identified by name.
func (r *AccountRepository) Delete(ctx context.Context, q repository.DBExecutor, userID int64, name string) error {
	query := `DELETE FROM accounts WHERE user_id = $1 AND name = $2`
	result, err := q.ExecContext(ctx, query, userID, name)
	if err != nil {
		return translate(err, "account")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "account")
	}
	if rows == 0 {
		return util.E(util.KindNotFound, "account", "name", "Account name not found.")
	}
	return nil
}
