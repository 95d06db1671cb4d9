package xtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9", "09:00:00"},
		{"09:30", "09:30:00"},
		{"9:5", "09:05:00"},
		{"18:45:10", "18:45:10"},
		{" 07:00 ", "07:00:00"},
		{"10:", "10:00:00"},
	}
	for _, tt := range tests {
		got, err := NormalizeClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizeClockInvalid(t *testing.T) {
	for _, in := range []string{"", "25:00", "10:61", "ab:cd", "1:2:3:4", "-1"} {
		_, err := NormalizeClock(in)
		assert.Error(t, err, in)
	}
}
