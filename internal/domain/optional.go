package domain

import "encoding/json"

// Optional tracks JSON field presence, distinguishing a key that is absent
// from one that is present with an explicit null. Partial updates only touch
// fields whose key was present in the request body.
type Optional[T any] struct {
	Present bool
	Value   T
}

// UnmarshalJSON marks the field present; a JSON null leaves the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Some wraps a value in a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}
