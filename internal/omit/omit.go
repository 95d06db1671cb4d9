package omit

import (
	"encoding/json"
)

func New[T any](value T) Omit[T] {
	return Omit[T]{
		Value: value,
		OK:    true,
	}
}

// Omit marks a field of a partial update. Fields that are not OK are left out when
// marshalled with the omitzero tag option.
type Omit[T any] struct {
	Value T
	OK    bool
}

func (o Omit[T]) IsZero() bool {
	return !o.OK
}

func (o Omit[T]) Or(fallback T) T {
	if o.OK {
		return o.Value
	}
	return fallback
}

func (o Omit[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

func (o *Omit[T]) UnmarshalJSON(data []byte) error {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = value
	o.OK = true

	return nil
}
