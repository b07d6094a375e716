package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/altbeat/jukebox/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the HTTP-only cookie carrying the signed session token.
	SessionCookie = "jukebox_session"

	// stateCookie carries the OAuth CSRF state between login and callback.
	stateCookie = "jukebox_oauth_state"

	// SessionTTL is the session token lifetime.
	SessionTTL = 7 * 24 * time.Hour
)

// SessionManager issues and verifies HMAC-signed session tokens stored in an
// HTTP-only cookie.
type SessionManager struct {
	secret []byte
}

// NewSessionManager creates a SessionManager signing with the given secret.
func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret)}
}

// Issue creates a signed session token for the given user id.
func (m *SessionManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the user id it was issued for.
func (m *SessionManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", shared.ErrUnauthorized
	}
	return claims.Subject, nil
}

// SetCookie attaches the session token to the response as an HTTP-only cookie.
func (m *SessionManager) SetCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL.Seconds()),
	})
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// sessionUserID extracts and verifies the session cookie, returning the user
// id or empty when no valid session exists.
func (m *SessionManager) sessionUserID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	userID, err := m.Verify(cookie.Value)
	if err != nil {
		return ""
	}
	return userID
}

// ctxKey avoids collisions with other packages' context values.
type ctxKey string

const userIDKey ctxKey = "userID"

// withUserID stores the authenticated user's id on the request context.
func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user's id from the request context, or
// empty for anonymous requests.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
