package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// ReviewRepository implements [models.Repository] for [models.Review] persistence.
//
// Read queries join the users table so review rows carry author display fields.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new [ReviewRepository] with the given database connection
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewSelect = `
	SELECT r.id, r.sequence, r.user_id, r.album_id, r.rating, r.body,
	       r.created_at, r.updated_at, r.deleted_at,
	       u.display_name, u.avatar_url
	FROM reviews r
	JOIN users u ON u.id = r.user_id
`

// Create inserts a new review into the database with generated ID and sequence
func (r *ReviewRepository) Create(review *models.Review) error {
	sequence, err := NextSequence(r.db, "reviews")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	review.SetID(id)

	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO reviews (id, sequence, user_id, album_id, rating, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, review.UserID(), review.AlbumID(),
		review.Rating(), review.Body(), review.CreatedAt(), review.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// Get retrieves a review by ID, excluding soft-deleted reviews
func (r *ReviewRepository) Get(id string) (*models.Review, error) {
	query := reviewSelect + ` WHERE r.id = ? AND r.deleted_at IS NULL`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query review: %w", err)
	}
	defer rows.Close()

	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("%w: review %s", shared.ErrNotFound, id)
	}
	return reviews[0], nil
}

// Update modifies an existing review's rating and body
func (r *ReviewRepository) Update(review *models.Review) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	review.SetUpdatedAt(now)

	query := `
		UPDATE reviews
		SET rating = ?, body = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, review.Rating(), review.Body(), now, review.ID())
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return requireRowsAffected(result, "review", review.ID())
}

// Delete soft-deletes a review by ID
func (r *ReviewRepository) Delete(id string) error {
	query := `
		UPDATE reviews
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return requireRowsAffected(result, "review", id)
}

// List retrieves reviews matching the given criteria ("album_id" or "user_id"),
// newest first, excluding soft-deleted reviews
func (r *ReviewRepository) List(criteria map[string]any) ([]*models.Review, error) {
	query := reviewSelect + ` WHERE r.deleted_at IS NULL`

	args := []any{}

	if albumID, ok := criteria["album_id"].(string); ok && albumID != "" {
		query += " AND r.album_id = ?"
		args = append(args, albumID)
	}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND r.user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY r.created_at DESC, r.sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

func scanReviews(rows *sql.Rows) ([]*models.Review, error) {
	var reviews []*models.Review
	for rows.Next() {
		var (
			reviewID     string
			sequence     int
			userID       string
			albumID      string
			rating       int
			body         string
			createdAt    time.Time
			updatedAt    time.Time
			deletedAt    sql.NullTime
			authorName   string
			authorAvatar string
		)

		err := rows.Scan(&reviewID, &sequence, &userID, &albumID, &rating, &body,
			&createdAt, &updatedAt, &deletedAt, &authorName, &authorAvatar)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		review := models.NewReview(sequence, userID, albumID, rating, body)
		review.SetID(reviewID)
		review.SetCreatedAt(createdAt)
		review.SetUpdatedAt(updatedAt)
		review.SetAuthor(authorName, authorAvatar)
		if deletedAt.Valid {
			review.SetDeletedAt(&deletedAt.Time)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return reviews, nil
}
