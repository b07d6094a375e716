// package services defines interfaces for the upstream music catalog
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// Identity defines the OAuth surface of the catalog provider: the
// authorization-code dance for login plus the two token grants the server
// uses afterwards (refresh_token for signed-in users, client_credentials for
// anonymous traffic).
type Identity interface {
	// AuthURL returns the provider's authorization URL for the given CSRF state.
	AuthURL(state string) string

	// Exchange swaps an authorization code for a token pair.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Refresh exchanges a stored refresh token for a fresh access token.
	// The returned token's RefreshToken field carries the rotated refresh
	// token when the provider issues one, otherwise the input value.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)

	// AppToken returns the shared application-level bearer token, refreshed
	// ahead of expiry so it never expires mid-request.
	AppToken(ctx context.Context) (string, error)

	// Profile fetches the profile of the user the token belongs to.
	Profile(ctx context.Context, token string) (*SpotifyUser, error)
}

// Catalog defines album lookups against the provider, authenticated with
// whatever bearer token the access context resolved.
type Catalog interface {
	// SearchAlbums runs a text search over albums.
	SearchAlbums(ctx context.Context, token, query string, limit int) ([]SpotifyAlbum, error)

	// Album retrieves one album by ID.
	Album(ctx context.Context, token, albumID string) (*SpotifyAlbum, error)

	// SeveralAlbums retrieves up to [MaxBatchAlbums] albums by their IDs.
	SeveralAlbums(ctx context.Context, token string, albumIDs []string) ([]SpotifyAlbum, error)
}

// Provider combines the identity and catalog surfaces of one music service.
type Provider interface {
	Identity
	Catalog

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
