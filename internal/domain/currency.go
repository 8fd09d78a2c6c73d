// internal/domain/currency.go
package domain

// CurrencyType is a seeded, read-only reference row (e.g. "fiat", "crypto").
type CurrencyType struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Currency is a user-owned currency. Code is three letters and unique per
// owner; Type carries the resolved currency type name.
type Currency struct {
	ID   int64  `db:"id" json:"-"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
	Type string `db:"type" json:"type"`
}

// CurrencyInput is the caller-supplied shape for creating a currency.
// Empty strings stand for absent fields.
type CurrencyInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// CurrencyPatch is a partial update; absent fields leave the row unchanged.
type CurrencyPatch struct {
	Code Optional[string] `json:"code"`
	Name Optional[string] `json:"name"`
	Type Optional[string] `json:"type"`
}

// Normalized demotes explicit nulls to absent. No currency column is
// nullable, so a null field reads as "leave unchanged".
func (p CurrencyPatch) Normalized() CurrencyPatch {
	p.Code = p.Code.flatten()
	p.Name = p.Name.flatten()
	p.Type = p.Type.flatten()
	return p
}

// Empty reports whether no recognized field was supplied.
func (p CurrencyPatch) Empty() bool {
	return !p.Code.Set && !p.Name.Set && !p.Type.Set
}

// CurrencyFilter narrows currency listings. Empty fields impose no constraint.
type CurrencyFilter struct {
	Type string
}
