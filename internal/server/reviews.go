package server

import (
	"net/http"

	"github.com/altbeat/jukebox/internal/models"
)

// reviewResponse is the JSON shape for reviews, including the denormalized
// author fields read queries join in.
type reviewResponse struct {
	ID        string `json:"id"`
	AlbumID   string `json:"album_id"`
	Rating    int    `json:"rating"`
	Body      string `json:"body,omitempty"`
	CreatedAt string `json:"created_at"`
	User      struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	} `json:"user"`
}

func toReviewResponse(rev *models.Review) reviewResponse {
	resp := reviewResponse{
		ID:        rev.ID(),
		AlbumID:   rev.AlbumID(),
		Rating:    rev.Rating(),
		Body:      rev.Body(),
		CreatedAt: rev.CreatedAt().UTC().Format("2006-01-02T15:04:05Z"),
	}
	resp.User.ID = rev.UserID()
	resp.User.DisplayName = rev.AuthorName()
	resp.User.AvatarURL = rev.AuthorAvatar()
	return resp
}

// ReviewList returns an album's reviews, newest first.
func (a *App) ReviewList(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	if !models.ValidAlbumID(albumID) {
		writeError(w, http.StatusBadRequest, codeAlbumInvalid)
		return
	}

	reviews, err := a.reviews.List(map[string]any{"album_id": albumID})
	if err != nil {
		a.logger.Error("review list failed", "album", albumID, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	responses := make([]reviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		responses = append(responses, toReviewResponse(rev))
	}

	writeJSON(w, http.StatusOK, map[string]any{"reviews": responses})
}

// ReviewCreate records an authenticated user's review of an album.
func (a *App) ReviewCreate(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	if !models.ValidAlbumID(albumID) {
		writeError(w, http.StatusBadRequest, codeAlbumInvalid)
		return
	}

	var body struct {
		Rating int    `json:"rating"`
		Body   string `json:"body"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}

	if body.Rating < models.MinRating || body.Rating > models.MaxRating {
		writeError(w, http.StatusBadRequest, codeRatingInvalid)
		return
	}
	if len(body.Body) > models.MaxReviewBodyLen {
		writeError(w, http.StatusBadRequest, codeBodyTooLong)
		return
	}

	userID := UserID(r.Context())
	review := models.NewReview(0, userID, albumID, body.Rating, body.Body)
	if err := a.reviews.Create(review); err != nil {
		a.logger.Error("review create failed", "album", albumID, "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	// Re-read through the joined query so the response echoes author fields.
	created, err := a.reviews.Get(review.ID())
	if err != nil {
		a.logger.Error("review readback failed", "review", review.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(created))
}
