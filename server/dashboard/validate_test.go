package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  int
		ok    bool
	}{
		{"16", 16, true},
		{"70", 70, true},
		{" 42 ", 42, true},
		{"15", 0, false},
		{"71", 0, false},
		{"", 0, false},
		{"forty", 0, false},
	} {
		age, err := ParseAge(tt.value)
		if !tt.ok {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, age)
	}
}

func TestPasswordSaveEnabled(t *testing.T) {
	for _, tt := range []struct {
		name    string
		form    PasswordForm
		enabled bool
	}{
		{"valid", PasswordForm{NewPassword: "secret12!", ConfirmPassword: "secret12!"}, true},
		{"unicode special", PasswordForm{NewPassword: "motdepasse1€", ConfirmPassword: "motdepasse1€"}, true},
		{"too short", PasswordForm{NewPassword: "sec12!", ConfirmPassword: "sec12!"}, false},
		{"no digit", PasswordForm{NewPassword: "secretpw!", ConfirmPassword: "secretpw!"}, false},
		{"no special", PasswordForm{NewPassword: "secret123", ConfirmPassword: "secret123"}, false},
		{"mismatch", PasswordForm{NewPassword: "secret12!", ConfirmPassword: "secret12?"}, false},
		{"empty", PasswordForm{}, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.enabled, PasswordSaveEnabled(tt.form))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := invalid("age", "age must be a number")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "age: age must be a number", err.Error())
}
