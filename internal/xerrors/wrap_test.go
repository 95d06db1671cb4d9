package xerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	a := errors.New("a")
	b := errors.New("b")
	c := fmt.Errorf("c: %w", errors.New("inner"))

	errs := Unwrap(errors.Join(a, errors.Join(b, c)))
	assert.Equal(t, []error{a, b, c}, errs)

	assert.Equal(t, []error{a}, Unwrap(a))
	assert.Nil(t, Unwrap(nil))
}
