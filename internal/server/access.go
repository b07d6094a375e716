package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
	"github.com/charmbracelet/log"
)

// AppNamespace is the cache namespace for anonymous / app-token requests.
const AppNamespace = "app"

// AccessContext is the resolved {token, cache namespace} pair used to serve
// one request. Namespacing keeps per-user and anonymous cache entries from
// colliding, since personalized and app-level responses can differ.
type AccessContext struct {
	Token     string
	Namespace string
}

// userStore is the slice of the user repository the broker needs.
type userStore interface {
	Get(id string) (*models.User, error)
	UpdateRefreshToken(id, refreshToken string) error
}

// TokenBroker resolves a usable bearer token for a request.
//
// User-scoped tokens come from the Spotify refresh grant against the user's
// stored refresh token; anonymous requests (and users with no stored refresh
// token) fall back to the shared client-credentials app token.
type TokenBroker struct {
	identity services.Identity
	users    userStore
	logger   *log.Logger
}

// NewTokenBroker creates a TokenBroker over the given identity provider and user store.
func NewTokenBroker(identity services.Identity, users userStore, logger *log.Logger) *TokenBroker {
	return &TokenBroker{identity: identity, users: users, logger: logger}
}

// UserToken resolves a user-scoped bearer token for the given user.
//
// Fails with [shared.ErrNoRefreshToken] when the user has no stored refresh
// token. When the provider rotates the refresh token during the exchange, the
// new value is persisted, overwriting the stored one.
func (b *TokenBroker) UserToken(ctx context.Context, userID string) (string, error) {
	user, err := b.users.Get(userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	stored := user.RefreshToken()
	if stored == "" {
		return "", fmt.Errorf("%w: user %s", shared.ErrNoRefreshToken, userID)
	}

	token, err := b.identity.Refresh(ctx, stored)
	if err != nil {
		return "", err
	}

	if token.RefreshToken != "" && token.RefreshToken != stored {
		if err := b.users.UpdateRefreshToken(userID, token.RefreshToken); err != nil {
			// The new access token is still usable; losing the rotated refresh
			// token only costs a re-login later.
			b.logger.Error("failed to persist rotated refresh token", "user", userID, "error", err)
		}
	}

	return token.AccessToken, nil
}

// Resolve determines the access context for a request.
//
// An empty userID (anonymous request) and [shared.ErrNoRefreshToken] both
// resolve to the app token under the [AppNamespace]; any other resolution
// failure is surfaced to the caller.
func (b *TokenBroker) Resolve(ctx context.Context, userID string) (AccessContext, error) {
	if userID != "" {
		token, err := b.UserToken(ctx, userID)
		if err == nil {
			return AccessContext{Token: token, Namespace: "user:" + userID}, nil
		}
		if !errors.Is(err, shared.ErrNoRefreshToken) {
			return AccessContext{}, err
		}
		b.logger.Debug("no refresh token, falling back to app token", "user", userID)
	}

	token, err := b.identity.AppToken(ctx)
	if err != nil {
		return AccessContext{}, err
	}
	return AccessContext{Token: token, Namespace: AppNamespace}, nil
}
