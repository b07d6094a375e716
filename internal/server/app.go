package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/altbeat/jukebox/internal/repositories"
	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
	"github.com/charmbracelet/log"
)

// App wires the REST surface: repositories, the Spotify provider, the token
// broker, response caches, the rate limiter, and session handling.
type App struct {
	config   *shared.Config
	logger   *log.Logger
	users    *repositories.UserRepository
	reviews  *repositories.ReviewRepository
	lists    *repositories.ListRepository
	provider services.Provider
	broker   *TokenBroker
	sessions *SessionManager

	searchCache *TTLCache
	albumCache  *TTLCache
	limiter     *RateLimiter
}

// NewApp creates an App over the given database and catalog provider.
func NewApp(config *shared.Config, logger *log.Logger, db *sql.DB, provider services.Provider) *App {
	users := repositories.NewUserRepository(db)

	return &App{
		config:      config,
		logger:      logger,
		users:       users,
		reviews:     repositories.NewReviewRepository(db),
		lists:       repositories.NewListRepository(db),
		provider:    provider,
		broker:      NewTokenBroker(provider, users, logger),
		sessions:    NewSessionManager(config.Session.Secret),
		searchCache: NewTTLCache(SearchCacheTTL, CacheMaxEntries),
		albumCache:  NewTTLCache(AlbumCacheTTL, CacheMaxEntries),
		limiter:     NewRateLimiter(RateLimitMax, RateLimitWindow),
	}
}

// Router builds the application router with the full middleware stack.
func (a *App) Router() *BasicRouter {
	router := NewBasicRouter()
	router.UseGlobal(
		Recover(a.logger),
		Logging(a.logger),
		CORS(a.config.Server.AllowedOrigins),
	)
	router.Use(RateLimit(a.limiter, a.config.Server.TrustProxy))

	// auth
	router.Handle(http.MethodGet, "/api/auth/login", http.HandlerFunc(a.AuthLogin))
	router.Handle(http.MethodGet, "/api/auth/callback", http.HandlerFunc(a.AuthCallback))
	router.Handle(http.MethodGet, "/api/auth/session", http.HandlerFunc(a.AuthSession))
	router.Handle(http.MethodPost, "/api/auth/logout", http.HandlerFunc(a.AuthLogout))

	// profile
	router.Handle(http.MethodGet, "/api/profile", a.requireUser(a.ProfileGet))
	router.Handle(http.MethodPut, "/api/profile", a.requireUser(a.ProfileUpdate))
	router.Handle(http.MethodPost, "/api/profile/avatar", a.requireUser(a.ProfileAvatar))

	// albums
	router.Handle(http.MethodGet, "/api/albums/search", http.HandlerFunc(a.AlbumSearch))
	router.Handle(http.MethodGet, "/api/albums", http.HandlerFunc(a.AlbumBatch))
	router.Handle(http.MethodGet, "/api/albums/{id}", http.HandlerFunc(a.AlbumGet))

	// reviews
	router.Handle(http.MethodGet, "/api/albums/{id}/reviews", http.HandlerFunc(a.ReviewList))
	router.Handle(http.MethodPost, "/api/albums/{id}/reviews", a.requireUser(a.ReviewCreate))

	// lists
	router.Handle(http.MethodPost, "/api/lists", a.requireUser(a.ListCreate))
	router.Handle(http.MethodGet, "/api/lists/{id}", http.HandlerFunc(a.ListGet))
	router.Handle(http.MethodPut, "/api/lists/{id}", a.requireUser(a.ListUpdate))
	router.Handle(http.MethodPost, "/api/lists/{id}/items", a.requireUser(a.ListAddItem))
	router.Handle(http.MethodPost, "/api/lists/{id}/reorder", a.requireUser(a.ListReorder))
	router.Handle(http.MethodGet, "/api/users/{id}/lists", http.HandlerFunc(a.UserLists))

	// uploaded avatars
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.config.Server.UploadDir)))
	router.Handle(http.MethodGet, "/uploads/{file...}", uploads)

	return router
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled or
// the server fails.
func (a *App) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requireUser wraps a handler, rejecting requests without a valid session.
func (a *App) requireUser(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := a.sessions.sessionUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		handler(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

// accessContext resolves the {token, cache namespace} pair for a request,
// using the session if one exists and falling back to the app token.
func (a *App) accessContext(r *http.Request) (AccessContext, error) {
	return a.broker.Resolve(r.Context(), a.sessions.sessionUserID(r))
}

// upstreamStatus maps an upstream failure to a response status.
//
// Connectivity failures and upstream 5xx/429 map to 503, anything else to 500.
func upstreamStatus(err error) (int, string) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 500 || apiErr.Status == http.StatusTooManyRequests {
			return http.StatusServiceUnavailable, codeServiceUnavailable
		}
		return http.StatusInternalServerError, codeUpstreamError
	}
	if errors.Is(err, shared.ErrServiceUnavailable) {
		return http.StatusServiceUnavailable, codeServiceUnavailable
	}
	return http.StatusInternalServerError, codeUpstreamError
}
