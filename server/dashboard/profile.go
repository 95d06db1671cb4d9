package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/topi314/academy-dashboard/internal/omit"
	"github.com/topi314/academy-dashboard/server/backend"
)

type ProfileForm struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
	BirthDate string `json:"date_naissance"`
	Age       string `json:"age"`
}

type PasswordForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (d *Dashboard) fetchProfile(ctx context.Context) (*backend.User, error) {
	gen := d.begin(ResourceProfile)

	user, err := d.backend.GetProfile(ctx)
	if err != nil {
		cached := d.cachedUser(ctx)
		d.commit(ctx, ResourceProfile, gen, func(s *State) {
			s.Errors[ResourceProfile] = "Could not load your profile: " + backend.Message(err)
			if s.Profile == nil {
				s.Profile = cached
			}
		}, nil)
		return cached, fmt.Errorf("failed to fetch profile: %w", err)
	}

	d.commit(ctx, ResourceProfile, gen, func(s *State) {
		s.Profile = user
		delete(s.Errors, ResourceProfile)
	}, func(ctx context.Context) error {
		return d.storeUser(ctx, user)
	})
	return user, nil
}

func (d *Dashboard) storeUser(ctx context.Context, user *backend.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return d.cache.SetUser(ctx, data)
}

// cachedUser returns the last known user record, if any.
func (d *Dashboard) cachedUser(ctx context.Context) *backend.User {
	data, ok, err := d.cache.User(ctx)
	if err != nil || !ok {
		return nil
	}
	var user backend.User
	if err = json.Unmarshal(data, &user); err != nil {
		slog.WarnContext(ctx, "Ignoring unreadable cached user", slog.Any("err", err))
		return nil
	}
	return &user
}

func (d *Dashboard) fetchActivities(ctx context.Context) error {
	gen := d.begin(ResourceActivities)

	activities, err := d.backend.GetActivityHistory(ctx)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceActivities, gen, func(s *State) {
			s.Errors[ResourceActivities] = "Could not load your activities: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch activities: %w", err)
	}

	d.commit(ctx, ResourceActivities, gen, func(s *State) {
		s.Activities = activities
		delete(s.Errors, ResourceActivities)
	}, nil)
	return nil
}

// UpdateProfile validates the form, saves it and merges it into the loaded profile.
func (d *Dashboard) UpdateProfile(ctx context.Context, form ProfileForm) error {
	age, err := ParseAge(form.Age)
	if err != nil {
		return err
	}
	if err = required("nom", form.LastName); err != nil {
		return err
	}
	if err = required("prenom", form.FirstName); err != nil {
		return err
	}
	if err = required("email", form.Email); err != nil {
		return err
	}

	update := backend.ProfileUpdate{
		LastName:  omit.New(strings.TrimSpace(form.LastName)),
		FirstName: omit.New(strings.TrimSpace(form.FirstName)),
		Email:     omit.New(strings.TrimSpace(form.Email)),
		Age:       omit.New(age),
	}
	if phone := strings.TrimSpace(form.Phone); phone != "" {
		update.Phone = omit.New(phone)
	}
	if birthDate := strings.TrimSpace(form.BirthDate); birthDate != "" {
		update.BirthDate = omit.New(birthDate)
	}

	if err = d.backend.UpdateProfile(ctx, update); err != nil {
		d.failed("Could not update your profile", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	var user *backend.User
	gen := d.begin(ResourceProfile)
	d.commit(ctx, ResourceProfile, gen, func(s *State) {
		merged := backend.User{}
		if s.Profile != nil {
			merged = *s.Profile
		}
		merged.LastName = update.LastName.Value
		merged.FirstName = update.FirstName.Value
		merged.Email = update.Email.Value
		merged.Phone = update.Phone.Or(merged.Phone)
		merged.BirthDate = update.BirthDate.Or(merged.BirthDate)
		merged.Age = backend.Int(age)
		s.Profile = &merged
		delete(s.Errors, ResourceProfile)
		user = &merged
	}, func(ctx context.Context) error {
		return d.storeUser(ctx, user)
	})

	d.notice(NoticeSuccess, "Profile updated")
	return nil
}

func (d *Dashboard) ChangePassword(ctx context.Context, form PasswordForm) error {
	if err := required("current_password", form.CurrentPassword); err != nil {
		return err
	}
	if err := ValidatePassword(form.NewPassword, form.ConfirmPassword); err != nil {
		return err
	}

	err := d.backend.ChangePassword(ctx, backend.PasswordChange{
		CurrentPassword: form.CurrentPassword,
		NewPassword:     form.NewPassword,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		if isPasswordMismatch(err) {
			d.notice(NoticeError, "%s", ErrCurrentPasswordMismatch.Error())
			return ErrCurrentPasswordMismatch
		}
		d.failed("Could not change your password", err)
		return fmt.Errorf("failed to change password: %w", err)
	}

	d.notice(NoticeSuccess, "Password changed")
	return nil
}

func isPasswordMismatch(err error) bool {
	var backendErr *backend.Error
	if !errors.As(err, &backendErr) {
		return false
	}
	msg := strings.ToLower(backendErr.Message)
	return strings.Contains(msg, "current password") ||
		strings.Contains(msg, "mot de passe actuel") ||
		strings.Contains(msg, "incorrect password")
}

// DeleteAccount deletes the account after the user re-entered their password and returns where
// the user should be sent next.
func (d *Dashboard) DeleteAccount(ctx context.Context, password string) (string, error) {
	if err := required("password", password); err != nil {
		return "", err
	}
	accountID := d.accountID()
	if accountID == "" {
		return "", ErrProfileNotLoaded
	}

	if err := d.backend.DeleteAccount(ctx, accountID, password); err != nil {
		if isPasswordMismatch(err) {
			d.notice(NoticeError, "%s", ErrCurrentPasswordMismatch.Error())
			return "", ErrCurrentPasswordMismatch
		}
		d.failed("Could not delete your account", err)
		return "", fmt.Errorf("failed to delete account: %w", err)
	}

	if err := d.cache.Clear(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to clear session cache", slog.String("session", d.cache.ID()), slog.Any("err", err))
	}

	d.mu.Lock()
	for res := range d.gens {
		d.gens[res]++
	}
	d.state = d.emptyState()
	d.confirmation = ConfirmationNone
	d.notices = nil
	d.mu.Unlock()

	d.opts.Notifier.Notify(ctx, fmt.Sprintf("Account %s was deleted", accountID))
	return d.opts.LogoutRedirect, nil
}
