package xpgtype

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

var (
	_ sql.Scanner   = (*JSON[any])(nil)
	_ driver.Valuer = (*JSON[any])(nil)
)

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{V: v}
}

// JSON stores V in a jsonb column.
type JSON[T any] struct {
	V T
}

func (j JSON[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (j *JSON[T]) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		return j.decode(data)
	case string:
		return j.decode([]byte(data))
	default:
		return fmt.Errorf("unsupported JSON scan source %T", src)
	}
}

// decode replaces V, it never merges into the previous value.
func (j *JSON[T]) decode(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	j.V = v
	return nil
}
