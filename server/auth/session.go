package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type sessionKey struct{}

var sessionContextKey = &sessionKey{}

// Session identifies the browser session and the user token of a request.
type Session struct {
	ID     string
	Token  string
	Claims Claims
}

func SetSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func GetSession(r *http.Request) Session {
	session, _ := r.Context().Value(sessionContextKey).(Session)
	return session
}

func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID rejects cookie values that were not issued by NewSessionID.
func ValidSessionID(id string) bool {
	return uuid.Validate(id) == nil
}
