// Package optional models a field of a partial update: absent, explicitly
// null, or set to a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Value: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Present reports whether the field carries a non-null value.
func (o Value[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns nil for null, a pointer to the value otherwise.
// Callers check Set first.
func (o Value[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON only runs when the key is in the payload, which is what
// separates "absent" from "null".
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
