// internal/repository/postgres/predicate.go
package postgres

import (
	"strconv"
	"strings"

	"debo/internal/domain"
)

// binder collects statement arguments and hands out their $n placeholders
// in the order values are bound. Filter and patch clauses are always built
// through a binder, so caller-supplied values never reach query text and
// the same input yields the same SQL.
type binder struct {
	args []interface{}
}

func (b *binder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// transactionWhere renders the WHERE clause for transaction listings.
// Predicates follow the filter's declaration order after the leading
// ownership predicate; date and amount bounds are inclusive; account
// matches either leg; commentHas becomes a case-insensitive regex with
// each space widened to match any run of characters.
func transactionWhere(b *binder, userID int64, f domain.TxFilter) string {
	conds := []string{"t.user_id = " + b.bind(userID)}
	if f.MinDate != nil {
		conds = append(conds, "t.date >= "+b.bind(*f.MinDate))
	}
	if f.MaxDate != nil {
		conds = append(conds, "t.date <= "+b.bind(*f.MaxDate))
	}
	if f.MinAmount != nil {
		conds = append(conds, "t.amount >= "+b.bind(*f.MinAmount))
	}
	if f.MaxAmount != nil {
		conds = append(conds, "t.amount <= "+b.bind(*f.MaxAmount))
	}
	if f.Currency != "" {
		conds = append(conds, "c.code = "+b.bind(f.Currency))
	}
	if f.Debit != "" {
		conds = append(conds, "a_debit.name = "+b.bind(f.Debit))
	}
	if f.Credit != "" {
		conds = append(conds, "a_credit.name = "+b.bind(f.Credit))
	}
	if f.Account != "" {
		conds = append(conds, "(a_debit.name = "+b.bind(f.Account)+" OR a_credit.name = "+b.bind(f.Account)+")")
	}
	if f.CommentHas != "" {
		pattern := strings.ReplaceAll(f.CommentHas, " ", ".*")
		conds = append(conds, "t.comment ~* "+b.bind(pattern))
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
