// Spotify API implementation of [Provider]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/altbeat/jukebox/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// MaxBatchAlbums is Spotify's ceiling on the batch album endpoint.
	MaxBatchAlbums = 20

	// appTokenMargin refreshes the shared app token this long before its
	// actual expiry so a token never runs out mid-flight.
	appTokenMargin = 60 * time.Second
)

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	TotalTracks int             `json:"total_tracks"`
	AlbumType   string          `json:"album_type"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// APIError reports a non-2xx response from the Spotify API.
type APIError struct {
	Status   int
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error: status %d (%s)", e.Status, e.Endpoint)
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// SpotifyService implements the [Provider] interface for Spotify API interactions.
// Uses [oauth2] for the authorization-code and refresh grants, and a
// [clientcredentials.Config] token source (wrapped with an early-expiry
// margin) for the shared app token.
type SpotifyService struct {
	config     *oauth2.Config
	appSource  oauth2.TokenSource
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(cfg shared.SpotifyConfig) (*SpotifyService, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id", shared.ErrMissingCredentials)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/api/auth/callback"
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"user-read-email",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	appConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		config: config,
		appSource: oauth2.ReuseTokenSourceWithExpiry(
			nil, appConfig.TokenSource(context.Background()), appTokenMargin,
		),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange swaps an authorization code for a token pair.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Refresh exchanges a stored refresh token for a fresh access token.
//
// Spotify may or may not rotate the refresh token; the oauth2 package carries
// the input value through when no new one is issued, so callers can compare
// to detect rotation.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	return token, nil
}

// AppToken returns the shared client-credentials bearer token, refreshed 60
// seconds ahead of expiry. The underlying token source caches process-wide.
func (s *SpotifyService) AppToken(ctx context.Context) (string, error) {
	token, err := s.appSource.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token.AccessToken, nil
}

// doRequest performs an authenticated GET against the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, token, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spotifyBaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Endpoint: endpoint}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Profile retrieves the profile of the user the token belongs to.
func (s *SpotifyService) Profile(ctx context.Context, token string) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, token, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchAlbums runs a text search over albums.
func (s *SpotifyService) SearchAlbums(ctx context.Context, token, query string, limit int) ([]SpotifyAlbum, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/search?type=album&q=%s&limit=%d", url.QueryEscape(query), limit)

	var response struct {
		Albums struct {
			Items []SpotifyAlbum `json:"items"`
		} `json:"albums"`
	}

	if err := s.doRequest(ctx, token, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Albums.Items, nil
}

// Album retrieves a single album by ID.
func (s *SpotifyService) Album(ctx context.Context, token, albumID string) (*SpotifyAlbum, error) {
	var album SpotifyAlbum
	endpoint := fmt.Sprintf("/albums/%s", albumID)
	if err := s.doRequest(ctx, token, endpoint, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// SeveralAlbums retrieves multiple albums by their IDs (up to [MaxBatchAlbums]).
func (s *SpotifyService) SeveralAlbums(ctx context.Context, token string, albumIDs []string) ([]SpotifyAlbum, error) {
	if len(albumIDs) == 0 {
		return nil, fmt.Errorf("%w: no album IDs provided", shared.ErrInvalidInput)
	}
	if len(albumIDs) > MaxBatchAlbums {
		return nil, fmt.Errorf("%w: maximum %d album IDs allowed", shared.ErrInvalidInput, MaxBatchAlbums)
	}

	ids := strings.Join(albumIDs, ",")
	endpoint := fmt.Sprintf("/albums?ids=%s", url.QueryEscape(ids))

	var response struct {
		Albums []SpotifyAlbum `json:"albums"`
	}

	if err := s.doRequest(ctx, token, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Albums, nil
}

// SetHTTPClient overrides the outbound HTTP client (used by tests).
func (s *SpotifyService) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}
