package dashboard

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/topi314/academy-dashboard/internal/xtime"
	"github.com/topi314/academy-dashboard/server/backend"
)

const (
	MinAge            = 16
	MaxAge            = 70
	MinPasswordLength = 8
)

// ParseAge accepts a numeric age within [MinAge, MaxAge].
func ParseAge(value string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, invalid("age", "age must be a number")
	}
	if age < MinAge || age > MaxAge {
		return 0, invalid("age", "age must be between 16 and 70")
	}
	return age, nil
}

// ValidatePassword checks the new password rules. The current password is checked by the backend.
func ValidatePassword(newPassword string, confirm string) error {
	if len([]rune(newPassword)) < MinPasswordLength {
		return invalid("new_password", "password must be at least 8 characters long")
	}

	var hasDigit, hasSpecial bool
	for _, r := range newPassword {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasDigit {
		return invalid("new_password", "password must contain a digit")
	}
	if !hasSpecial {
		return invalid("new_password", "password must contain a special character")
	}
	if newPassword != confirm {
		return invalid("confirm_password", "passwords do not match")
	}
	return nil
}

// PasswordSaveEnabled reports whether the password form may be submitted.
func PasswordSaveEnabled(form PasswordForm) bool {
	return ValidatePassword(form.NewPassword, form.ConfirmPassword) == nil
}

func normalizeClock(field string, value string) (string, error) {
	clock, err := xtime.NormalizeClock(value)
	if err != nil {
		return "", invalid(field, "time must look like HH:MM")
	}
	return clock, nil
}

func required(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "this field is required")
	}
	return nil
}

// validID rejects ids that are empty or could change the backend route they are placed in.
func validID(field string, id backend.ID) error {
	if id.IsZero() {
		return invalid(field, "this field is required")
	}
	if !id.Valid() {
		return invalid(field, "invalid identifier")
	}
	return nil
}
