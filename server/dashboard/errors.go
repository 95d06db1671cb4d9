package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrNotCaptain              = errors.New("only the team captain can do this")
	ErrNoPlayer                = errors.New("you do not have a player profile yet")
	ErrPlayerExists            = errors.New("you already have a player profile")
	ErrNoTeam                  = errors.New("you are not part of a team")
	ErrProfileNotLoaded        = errors.New("profile is not loaded")
	ErrNoPendingConfirmation   = errors.New("nothing is waiting for confirmation")
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect. If you signed up with Google or Facebook, use \"Forgot password\" to set one first")
)

// ValidationError rejects a form before anything is sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}
