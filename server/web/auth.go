package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/topi314/academy-dashboard/server/auth"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

// auth rejects requests without a usable bearer token and attaches the browser session.
func (h *handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := auth.BearerToken(r)
		if err != nil {
			writeJSON(ctx, w, http.StatusUnauthorized, Response{
				Error: &ErrorResponse{Message: "Please sign in again: " + err.Error()},
			})
			return
		}

		claims, err := auth.Inspect(token, time.Now(), h.Cfg.Auth.Leeway.Std())
		if err != nil {
			slog.DebugContext(ctx, "Rejecting bearer token", slog.Any("err", err))
			writeJSON(ctx, w, http.StatusUnauthorized, Response{
				Error: &ErrorResponse{Message: "Please sign in again: " + err.Error()},
			})
			return
		}

		var sessionID string
		if cookie, err := r.Cookie(h.Cfg.Auth.CookieName); err == nil && auth.ValidSessionID(cookie.Value) {
			sessionID = cookie.Value
		}
		if sessionID == "" {
			sessionID = auth.NewSessionID()
			h.setSessionCookie(w, sessionID, h.Cfg.Server.SessionTTL.Std())
		}

		r = r.WithContext(auth.SetSession(ctx, auth.Session{
			ID:     sessionID,
			Token:  token,
			Claims: claims,
		}))
		next.ServeHTTP(w, r)
	})
}

func (h *handler) setSessionCookie(w http.ResponseWriter, sessionID string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if sessionID == "" {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Auth.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// cacheSessionID scopes the session cache to the signed in account so a shared browser never sees
// another account's cached entries.
func cacheSessionID(session auth.Session) string {
	if session.Claims.Subject == "" {
		return session.ID
	}
	return session.ID + ":" + session.Claims.Subject
}

func (h *handler) dashboard(r *http.Request) *dashboard.Dashboard {
	session := auth.GetSession(r)
	return h.Dashboard(cacheSessionID(session), session.Token)
}
