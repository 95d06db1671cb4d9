package web

import (
	"net/http"
	"time"

	"github.com/topi314/academy-dashboard/server/auth"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

func (h *handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var form dashboard.ProfileForm
	if !decodeBody(w, r, &form) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.UpdateProfile(r.Context(), form))
}

func (h *handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var form dashboard.PasswordForm
	if !decodeBody(w, r, &form) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.ChangePassword(r.Context(), form))
}

type PasswordCheck struct {
	Enabled bool           `json:"enabled"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// CheckPassword reports whether the password form may be saved without calling the backend.
func (h *handler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	var form dashboard.PasswordForm
	if !decodeBody(w, r, &form) {
		return
	}

	check := PasswordCheck{
		Enabled: dashboard.PasswordSaveEnabled(form),
	}
	if err := dashboard.ValidatePassword(form.NewPassword, form.ConfirmPassword); err != nil {
		check.Error = errorResponse(err)
	}
	writeJSON(r.Context(), w, http.StatusOK, check)
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var rq DeleteAccountRequest
	if !decodeBody(w, r, &rq) {
		return
	}

	d := h.dashboard(r)
	redirect, err := d.DeleteAccount(r.Context(), rq.Password)
	if err != nil {
		respond(w, r, d, err)
		return
	}

	h.EndSession(cacheSessionID(auth.GetSession(r)))
	h.setSessionCookie(w, "", 0)
	writeJSON(r.Context(), w, http.StatusOK, Response{
		Notices:  []dashboard.Notice{{Level: dashboard.NoticeSuccess, Message: "Your account was deleted", CreatedAt: time.Now()}},
		Redirect: redirect,
	})
}
