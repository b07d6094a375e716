// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
	"golang.org/x/oauth2"
)

// MockProvider is a test double for [services.Provider].
//
// Each method delegates to the corresponding Fn field when set, so tests only
// stub the calls they exercise.
type MockProvider struct {
	AuthURLFn       func(state string) string
	ExchangeFn      func(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshFn       func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	AppTokenFn      func(ctx context.Context) (string, error)
	ProfileFn       func(ctx context.Context, token string) (*services.SpotifyUser, error)
	SearchAlbumsFn  func(ctx context.Context, token, query string, limit int) ([]services.SpotifyAlbum, error)
	AlbumFn         func(ctx context.Context, token, albumID string) (*services.SpotifyAlbum, error)
	SeveralAlbumsFn func(ctx context.Context, token string, albumIDs []string) ([]services.SpotifyAlbum, error)
}

func (m *MockProvider) AuthURL(state string) string {
	if m.AuthURLFn != nil {
		return m.AuthURLFn(state)
	}
	return "https://accounts.example.com/authorize?state=" + state
}

func (m *MockProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFn != nil {
		return m.ExchangeFn(ctx, code)
	}
	return &oauth2.Token{AccessToken: "mock-access", RefreshToken: "mock-refresh"}, nil
}

func (m *MockProvider) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}
	return &oauth2.Token{AccessToken: "mock-access", RefreshToken: refreshToken}, nil
}

func (m *MockProvider) AppToken(ctx context.Context) (string, error) {
	if m.AppTokenFn != nil {
		return m.AppTokenFn(ctx)
	}
	return "mock-app-token", nil
}

func (m *MockProvider) Profile(ctx context.Context, token string) (*services.SpotifyUser, error) {
	if m.ProfileFn != nil {
		return m.ProfileFn(ctx, token)
	}
	return &services.SpotifyUser{ID: "mock-user", DisplayName: "Mock User"}, nil
}

func (m *MockProvider) SearchAlbums(ctx context.Context, token, query string, limit int) ([]services.SpotifyAlbum, error) {
	if m.SearchAlbumsFn != nil {
		return m.SearchAlbumsFn(ctx, token, query, limit)
	}
	return []services.SpotifyAlbum{}, nil
}

func (m *MockProvider) Album(ctx context.Context, token, albumID string) (*services.SpotifyAlbum, error) {
	if m.AlbumFn != nil {
		return m.AlbumFn(ctx, token, albumID)
	}
	return &services.SpotifyAlbum{ID: albumID, Name: "Mock Album"}, nil
}

func (m *MockProvider) SeveralAlbums(ctx context.Context, token string, albumIDs []string) ([]services.SpotifyAlbum, error) {
	if m.SeveralAlbumsFn != nil {
		return m.SeveralAlbumsFn(ctx, token, albumIDs)
	}
	albums := make([]services.SpotifyAlbum, 0, len(albumIDs))
	for i, id := range albumIDs {
		albums = append(albums, services.SpotifyAlbum{ID: id, Name: fmt.Sprintf("Album %d", i+1)})
	}
	return albums, nil
}

func (m *MockProvider) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MustOpenDB opens an in-memory SQLite database with all migrations applied.
//
// The database is closed automatically when the test finishes.
func MustOpenDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
