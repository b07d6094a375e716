package server

import (
	"errors"
	"net/http"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// userResponse is the JSON shape for account data.
type userResponse struct {
	ID          string `json:"id"`
	SpotifyID   string `json:"spotify_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	CreatedAt   string `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID(),
		SpotifyID:   u.SpotifyID(),
		DisplayName: u.DisplayName(),
		Email:       u.Email(),
		Bio:         u.Bio(),
		AvatarURL:   u.AvatarURL(),
		CreatedAt:   u.CreatedAt().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// AuthLogin starts the OAuth authorization-code flow.
//
// A random state value is stored in a short-lived cookie for CSRF protection
// before redirecting to the provider's consent page.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	state := shared.GenerateID()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})

	http.Redirect(w, r, a.provider.AuthURL(state), http.StatusFound)
}

// AuthCallback completes the OAuth flow: it validates the state parameter,
// exchanges the authorization code, upserts the account from the Spotify
// profile, stores the refresh token, and issues the session cookie.
func (a *App) AuthCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		a.logger.Warn("authorization denied", "error", r.URL.Query().Get("error"))
		writeError(w, http.StatusBadRequest, codeUnauthorized)
		return
	}

	token, err := a.provider.Exchange(r.Context(), code)
	if err != nil {
		a.logger.Error("code exchange failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeUpstreamError)
		return
	}

	profile, err := a.provider.Profile(r.Context(), token.AccessToken)
	if err != nil {
		a.logger.Error("profile fetch failed", "error", err)
		status, errCode := upstreamStatus(err)
		writeError(w, status, errCode)
		return
	}

	user, err := a.users.GetBySpotifyID(profile.ID)
	switch {
	case err == nil:
		if token.RefreshToken != "" && token.RefreshToken != user.RefreshToken() {
			if err := a.users.UpdateRefreshToken(user.ID(), token.RefreshToken); err != nil {
				a.logger.Error("failed to store refresh token", "user", user.ID(), "error", err)
			}
		}
	case errors.Is(err, shared.ErrNotFound):
		displayName := profile.DisplayName
		if displayName == "" {
			displayName = profile.ID
		}
		user = models.NewUser(0, profile.ID, displayName, profile.Email)
		user.SetRefreshToken(token.RefreshToken)
		if len(profile.Images) > 0 {
			user.SetAvatarURL(profile.Images[0].URL)
		}
		if err := a.users.Create(user); err != nil {
			a.logger.Error("failed to create user", "spotify_id", profile.ID, "error", err)
			writeError(w, http.StatusInternalServerError, codeInternalError)
			return
		}
	default:
		a.logger.Error("user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	session, err := a.sessions.Issue(user.ID())
	if err != nil {
		a.logger.Error("failed to issue session", "user", user.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}
	a.sessions.SetCookie(w, r, session)

	http.Redirect(w, r, a.config.Server.FrontendURL, http.StatusFound)
}

// AuthSession introspects the current session, returning the signed-in user.
func (a *App) AuthSession(w http.ResponseWriter, r *http.Request) {
	userID := a.sessions.sessionUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	user, err := a.users.Get(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

// AuthLogout clears the session cookie.
func (a *App) AuthLogout(w http.ResponseWriter, r *http.Request) {
	a.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
