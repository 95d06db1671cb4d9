package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrTokenExpired = errors.New("bearer token expired")
)

// BearerToken returns the token of the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect reads the claims of a JWT without verifying its signature, the backend does that on
// every call. Opaque tokens have no claims and are passed through.
func Inspect(token string, now time.Time, leeway time.Duration) (Claims, error) {
	if strings.Count(token, ".") != 2 {
		return Claims{}, nil
	}

	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims := Claims{
		Subject: registered.Subject,
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
		if now.After(claims.ExpiresAt.Add(leeway)) {
			return claims, ErrTokenExpired
		}
	}
	return claims, nil
}
