// internal/domain/optional.go
package domain

import "encoding/json"

// Optional is a tri-state field used by patch payloads: a field can be
// absent (Set false), explicitly null (Set and Null true), or carry a value.
// JSON decoding only visits fields that are present, so Set distinguishes
// "leave unchanged" from "change to this value" and Null allows nullable
// columns such as a transaction comment to be cleared.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Valid reports whether the field was supplied with a concrete value.
func (o Optional[T]) Valid() bool {
	return o.Set && !o.Null
}

// flatten demotes an explicit null to absent. Patch fields backed by
// non-nullable columns use it so null carries no instruction.
func (o Optional[T]) flatten() Optional[T] {
	if o.Null {
		return Optional[T]{}
	}
	return o
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
