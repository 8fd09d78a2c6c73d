// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"debo/internal/domain"
	"debo/internal/repository"
	"debo/internal/util"
)

const transactionSelect = `SELECT t.id, t.date, t.amount, c.code AS currency,
        a_debit.name AS debit, a_credit.name AS credit, t.comment
    FROM transactions t
    JOIN accounts a_debit ON t.debit = a_debit.id
    JOIN accounts a_credit ON t.credit = a_credit.id
    JOIN currencies c ON t.currency = c.id`

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// Create inserts a transaction and returns its id. A nil Date leaves the
// column to the store default.
func (r *TransactionRepository) Create(ctx context.Context, q repository.DBExecutor, userID int64, row repository.NewTransaction) (int64, error) {
	b := &binder{}
	cols := []string{"user_id"}
	vals := []string{b.bind(userID)}
	if row.Date != nil {
		cols = append(cols, "date")
		vals = append(vals, b.bind(*row.Date))
	}
	cols = append(cols, "amount", "currency", "debit", "credit")
	vals = append(vals, b.bind(row.Amount), b.bind(row.CurrencyID), b.bind(row.DebitID), b.bind(row.CreditID))
	if row.Comment != nil {
		cols = append(cols, "comment")
		vals = append(vals, b.bind(*row.Comment))
	}
	query := `INSERT INTO transactions (` + strings.Join(cols, ", ") + `) VALUES (` +
		strings.Join(vals, ", ") + `) RETURNING id`
	var id int64
	if err := q.GetContext(ctx, &id, query, b.args...); err != nil {
		return 0, translate(err, "transaction")
	}
	return id, nil
}

// GetByID retrieves a transaction by id.
func (r *TransactionRepository) GetByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Transaction, error) {
	var t domain.Transaction
	query := transactionSelect + ` WHERE t.user_id = $1 AND t.id = $2`
	if err := q.GetContext(ctx, &t, query, userID, id); err != nil {
		return nil, translate(err, "transaction")
	}
	return &t, nil
}

// List retrieves the user's transactions matching the filter, oldest first.
func (r *TransactionRepository) List(ctx context.Context, q repository.DBExecutor, userID int64, f domain.TxFilter) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	b := &binder{}
	query := transactionSelect + transactionWhere(b, userID, f) + ` ORDER BY t.date, t.id`
	if err := q.SelectContext(ctx, &transactions, query, b.args...); err != nil {
		return nil, translate(err, "transaction")
	}
	return transactions, nil
}

// Update applies the set columns to the transaction identified by id.
func (r *TransactionRepository) Update(ctx context.Context, q repository.DBExecutor, userID, id int64, u repository.TransactionUpdate) error {
	b := &binder{}
	sets := []string{}
	if u.Date.Valid() {
		sets = append(sets, "date = "+b.bind(u.Date.Value))
	}
	if u.Amount.Valid() {
		sets = append(sets, "amount = "+b.bind(u.Amount.Value))
	}
	if u.CurrencyID.Valid() {
		sets = append(sets, "currency = "+b.bind(u.CurrencyID.Value))
	}
	if u.DebitID.Valid() {
		sets = append(sets, "debit = "+b.bind(u.DebitID.Value))
	}
	if u.CreditID.Valid() {
		sets = append(sets, "credit = "+b.bind(u.CreditID.Value))
	}
	if u.Comment.Set {
		if u.Comment.Null {
			sets = append(sets, "comment = NULL")
		} else {
			sets = append(sets, "comment = "+b.bind(u.Comment.Value))
		}
	}
	query := `UPDATE transactions SET ` + strings.Join(sets, ", ") +
		` WHERE user_id = ` + b.bind(userID) + ` AND id = ` + b.bind(id)
	result, err := q.ExecContext(ctx, query, b.args...)
	if err != nil {
		return translate(err, "transaction")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "transaction")
	}
	if rows == 0 {
		return util.E(util.KindNotFound, "transaction", "id", "Transaction id not found.")
	}
	return nil
}

// Delete removes the transaction identified by id.
func (r *TransactionRepository) Delete(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND id = $2`
	result, err := q.ExecContext(ctx, query, userID, id)
	if err != nil {
		return translate(err, "transaction")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "transaction")
	}
	if rows == 0 {
		return util.E(util.KindNotFound, "transaction", "id", "Transaction id not found.")
	}
	return nil
}
