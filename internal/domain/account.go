// internal/domain/account.go
package domain

import "github.com/shopspring/decimal"

// AccountType is a seeded, read-only reference row. The seeded set is
// "asset", "liability", "equity", "income" and "expense".
type AccountType struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Account is a user-owned account. Name is unique per owner; Type carries
// the resolved account type name.
type Account struct {
	ID   int64  `db:"id" json:"-"`
	Type string `db:"type" json:"type"`
	Name string `db:"name" json:"name"`
}

// AccountInput is the caller-supplied shape for creating an account.
type AccountInput struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// AccountPatch is a partial update; absent fields leave the row unchanged.
type AccountPatch struct {
	Type Optional[string] `json:"type"`
	Name Optional[string] `json:"name"`
}

// Normalized demotes explicit nulls to absent. No account column is
// nullable, so a null field reads as "leave unchanged".
func (p AccountPatch) Normalized() AccountPatch {
	p.Type = p.Type.flatten()
	p.Name = p.Name.flatten()
	return p
}

// Empty reports whether no recognized field was supplied.
func (p AccountPatch) Empty() bool {
	return !p.Type.Set && !p.Name.Set
}

// AccountFilter narrows account listings. Empty fields impose no constraint.
type AccountFilter struct {
	Type string
}

// AccountBalance pairs an account with its signed balance under the
// account type's normal-balance convention.
type AccountBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}
