package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

type Response struct {
	State    *dashboard.State   `json:"state,omitempty"`
	Notices  []dashboard.Notice `json:"notices,omitempty"`
	Redirect string             `json:"redirect,omitempty"`
	Error    *ErrorResponse     `json:"error,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", slog.Any("err", err))
	}
}

// respond writes the state of d together with its pending notices and the outcome of the action.
func respond(w http.ResponseWriter, r *http.Request, d *dashboard.Dashboard, err error) {
	ctx := r.Context()
	state := d.Snapshot()
	rs := Response{
		State:   &state,
		Notices: d.Notices(),
	}
	if err == nil {
		writeJSON(ctx, w, http.StatusOK, rs)
		return
	}

	status := statusOf(err)
	rs.Error = errorResponse(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Dashboard action failed", slog.String("path", r.URL.Path), slog.Any("err", err))
	} else {
		slog.DebugContext(ctx, "Dashboard action rejected", slog.String("path", r.URL.Path), slog.Int("status", status), slog.Any("err", err))
	}
	writeJSON(ctx, w, status, rs)
}

func statusOf(err error) int {
	var validationErr *dashboard.ValidationError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, dashboard.ErrCurrentPasswordMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrNotCaptain):
		return http.StatusForbidden
	case errors.Is(err, dashboard.ErrNoPendingConfirmation),
		errors.Is(err, dashboard.ErrNoPlayer),
		errors.Is(err, dashboard.ErrPlayerExists),
		errors.Is(err, dashboard.ErrNoTeam),
		errors.Is(err, dashboard.ErrProfileNotLoaded):
		return http.StatusConflict
	case errors.Is(err, backend.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func errorResponse(err error) *ErrorResponse {
	var validationErr *dashboard.ValidationError
	if errors.As(err, &validationErr) {
		return &ErrorResponse{
			Message: validationErr.Message,
			Field:   validationErr.Field,
		}
	}
	var backendErr *backend.Error
	if errors.As(err, &backendErr) {
		return &ErrorResponse{Message: backendErr.Message}
	}
	return &ErrorResponse{Message: err.Error()}
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(r.Context(), w, http.StatusBadRequest, Response{
		Error: &ErrorResponse{Message: message},
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, r, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID reads an identifier path value. It ends up in backend urls so only plain ids are accepted.
func pathID(w http.ResponseWriter, r *http.Request, name string) (backend.ID, bool) {
	id := backend.ID(r.PathValue(name))
	if !id.Valid() {
		badRequest(w, r, "Invalid '"+name+"' parameter")
		return "", false
	}
	return id, true
}
