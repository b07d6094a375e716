package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// maxAvatarBytes bounds avatar uploads at 2 MiB.
const maxAvatarBytes = 2 << 20

var avatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ProfileGet returns the authenticated user's profile.
func (a *App) ProfileGet(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Get(UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ProfileUpdate modifies the authenticated user's display name and bio.
func (a *App) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Get(UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var body struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}

	if body.DisplayName != nil {
		if strings.TrimSpace(*body.DisplayName) == "" || len(*body.DisplayName) > models.MaxDisplayNameLen {
			writeError(w, http.StatusBadRequest, codeProfileInvalid)
			return
		}
		user.SetDisplayName(*body.DisplayName)
	}
	if body.Bio != nil {
		if len(*body.Bio) > models.MaxBioLen {
			writeError(w, http.StatusBadRequest, codeProfileInvalid)
			return
		}
		user.SetBio(*body.Bio)
	}

	if err := a.users.Update(user); err != nil {
		a.logger.Error("profile update failed", "user", user.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ProfileAvatar accepts a multipart image upload and stores it under the
// configured upload directory, replacing the user's avatar URL.
func (a *App) ProfileAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Get(UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !avatarExtensions[ext] {
		writeError(w, http.StatusBadRequest, codeProfileInvalid)
		return
	}

	if err := os.MkdirAll(a.config.Server.UploadDir, 0o755); err != nil {
		a.logger.Error("upload dir create failed", "dir", a.config.Server.UploadDir, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	name := shared.GenerateID() + ext
	dest, err := os.Create(filepath.Join(a.config.Server.UploadDir, name))
	if err != nil {
		a.logger.Error("avatar create failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		a.logger.Error("avatar write failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	user.SetAvatarURL("/uploads/" + name)
	if err := a.users.Update(user); err != nil {
		a.logger.Error("avatar update failed", "user", user.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
