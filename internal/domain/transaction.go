// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Transaction is one double-entry movement: Amount flows from the credit
// account to the debit account. Debit and credit are always distinct and
// Amount is strictly positive.
type Transaction struct {
	ID       int64           `db:"id" json:"id"`
	Date     time.Time       `db:"date" json:"date"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
	Currency string          `db:"currency" json:"currency"`
	Debit    string          `db:"debit" json:"debit"`
	Credit   string          `db:"credit" json:"credit"`
	Comment  *string         `db:"comment" json:"comment"`
}

// TransactionInput is the caller-supplied shape for creating a transaction.
// Amount is a pointer so an absent amount is distinguishable from zero.
// Date defaults to the store's "now" when empty.
type TransactionInput struct {
	Date     string           `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency string           `json:"currency"`
	Debit    string           `json:"debit"`
	Credit   string           `json:"credit"`
	Comment  *string          `json:"comment"`
}

// TransactionPatch is a partial update; absent fields leave the row
// unchanged. A null comment clears the stored comment.
type TransactionPatch struct {
	Date     Optional[string]          `json:"date"`
	Amount   Optional[decimal.Decimal] `json:"amount"`
	Currency Optional[string]          `json:"currency"`
	Debit    Optional[string]          `json:"debit"`
	Credit   Optional[string]          `json:"credit"`
	Comment  Optional[string]          `json:"comment"`
}

// Normalized demotes explicit nulls to absent on every field except
// Comment, the one nullable column, where null still means "clear".
func (p TransactionPatch) Normalized() TransactionPatch {
	p.Date = p.Date.flatten()
	p.Amount = p.Amount.flatten()
	p.Currency = p.Currency.flatten()
	p.Debit = p.Debit.flatten()
	p.Credit = p.Credit.flatten()
	return p
}

// Empty reports whether no recognized field was supplied.
func (p TransactionPatch) Empty() bool {
	return !p.Date.Set && !p.Amount.Set && !p.Currency.Set &&
		!p.Debit.Set && !p.Credit.Set && !p.Comment.Set
}

// TxFilter narrows transaction listings. Every field is optional; present
// fields combine conjunctively and bounds are inclusive. Account matches
// either leg, CommentHas is a case-insensitive match where each space
// stands for any run of characters.
type TxFilter struct {
	MinDate    *time.Time
	MaxDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Currency   string
	Debit      string
	Credit     string
	Account    string
	CommentHas string
}

// Empty reports whether the filter imposes no constraint beyond ownership.
func (f TxFilter) Empty() bool {
	return f.MinDate == nil && f.MaxDate == nil && f.MinAmount == nil &&
		f.MaxAmount == nil && f.Currency == "" && f.Debit == "" &&
		f.Credit == "" && f.Account == "" && f.CommentHas == ""
}
