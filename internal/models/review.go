package models

import (
	"fmt"
)

const (
	// MinRating and MaxRating bound review scores.
	MinRating = 1
	MaxRating = 10

	// MaxReviewBodyLen bounds review body text.
	MaxReviewBodyLen = 2000

	// MaxAlbumIDLen bounds Spotify album identifiers.
	MaxAlbumIDLen = 32
)

// ValidAlbumID reports whether id looks like a Spotify album identifier
// (non-empty base62 string of bounded length).
func ValidAlbumID(id string) bool {
	if id == "" || len(id) > MaxAlbumIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}

// Review represents a user's rating (and optional text) of one album.
type Review struct {
	entity
	userID  string
	albumID string
	rating  int
	body    string

	// Denormalized author fields populated by joined queries, not persisted
	// on the reviews table itself.
	authorName   string
	authorAvatar string
}

// NewReview creates a Review by the given user for the given album.
func NewReview(sequence int, userID, albumID string, rating int, body string) *Review {
	return &Review{
		entity:  newEntity(sequence),
		userID:  userID,
		albumID: albumID,
		rating:  rating,
		body:    body,
	}
}

func (r *Review) UserID() string       { return r.userID }
func (r *Review) AlbumID() string      { return r.albumID }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Body() string         { return r.body }
func (r *Review) AuthorName() string   { return r.authorName }
func (r *Review) AuthorAvatar() string { return r.authorAvatar }

func (r *Review) SetRating(rating int) { r.rating = rating }
func (r *Review) SetBody(body string)  { r.body = body }

// SetAuthor attaches denormalized author display fields from a join.
func (r *Review) SetAuthor(name, avatarURL string) {
	r.authorName = name
	r.authorAvatar = avatarURL
}

// Validate checks the review's data.
func (r *Review) Validate() error {
	if r.userID == "" {
		return fmt.Errorf("user id is required")
	}
	if !ValidAlbumID(r.albumID) {
		return fmt.Errorf("invalid album id: %q", r.albumID)
	}
	if r.rating < MinRating || r.rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	if len(r.body) > MaxReviewBodyLen {
		return fmt.Errorf("review body exceeds %d characters", MaxReviewBodyLen)
	}
	return nil
}
