package xtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("500ms")))
	assert.Equal(t, 500*time.Millisecond, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "500ms", string(text))

	assert.ErrorIs(t, d.UnmarshalText([]byte("-1s")), ErrNegativeDuration)
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}
