package models

import "encoding/json"

// Nullable is a JSON field that distinguishes three states:
//   - absent:  Set=false, Valid=false
//   - null:    Set=true,  Valid=false
//   - a value: Set=true,  Valid=true
//
// Pointer fields cannot tell absent from null, which partial updates need
// to clear optional values.
type Nullable[T any] struct {
	Value T
	Valid bool
	Set   bool
}

// NullableOf returns a Nullable holding v
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true, Set: true}
}

// Null returns a Nullable that was explicitly set to null
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		var zero T
		n.Value = zero
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Apply returns current when the field was absent, nil when it was null and
// the new value otherwise.
func (n Nullable[T]) Apply(current *T) *T {
	switch {
	case !n.Set:
		return current
	case !n.Valid:
		return nil
	default:
		v := n.Value
		return &v
	}
}
