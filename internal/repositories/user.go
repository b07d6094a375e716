package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// UserRepository implements [models.Repository] for [models.User] persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, sequence, spotify_id, display_name, email, bio, avatar_url, refresh_token, created_at, updated_at, deleted_at"

// Create inserts a new user into the database with generated ID and sequence
func (r *UserRepository) Create(user *models.User) error {
	sequence, err := NextSequence(r.db, "users")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	user.SetID(id)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (id, sequence, spotify_id, display_name, email, bio, avatar_url, refresh_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, user.SpotifyID(), user.DisplayName(), user.Email(),
		user.Bio(), user.AvatarURL(), user.RefreshToken(), user.CreatedAt(), user.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID, excluding soft-deleted users
func (r *UserRepository) Get(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetBySpotifyID retrieves a user by Spotify identity, excluding soft-deleted users
func (r *UserRepository) GetBySpotifyID(spotifyID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE spotify_id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, spotifyID), spotifyID)
}

func (r *UserRepository) scanOne(row *sql.Row, key string) (*models.User, error) {
	var (
		userID       string
		sequence     int
		spotifyID    string
		displayName  string
		email        string
		bio          string
		avatarURL    string
		refreshToken string
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&userID, &sequence, &spotifyID, &displayName, &email, &bio,
		&avatarURL, &refreshToken, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user := models.NewUser(sequence, spotifyID, displayName, email)
	user.SetID(userID)
	user.SetBio(bio)
	user.SetAvatarURL(avatarURL)
	user.SetRefreshToken(refreshToken)
	user.SetCreatedAt(createdAt)
	user.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		user.SetDeletedAt(&deletedAt.Time)
	}

	return user, nil
}

// Update modifies an existing user's profile fields in the database
func (r *UserRepository) Update(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	user.SetUpdatedAt(now)

	query := `
		UPDATE users
		SET display_name = ?, email = ?, bio = ?, avatar_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, user.DisplayName(), user.Email(), user.Bio(), user.AvatarURL(), now, user.ID())
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return requireRowsAffected(result, "user", user.ID())
}

// UpdateRefreshToken overwrites the stored refresh token for a user.
//
// Called only when the identity provider rotates the refresh token during an
// access token refresh.
func (r *UserRepository) UpdateRefreshToken(id, refreshToken string) error {
	query := `
		UPDATE users
		SET refresh_token = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, refreshToken, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	return requireRowsAffected(result, "user", id)
}

// Delete soft-deletes a user by ID
func (r *UserRepository) Delete(id string) error {
	query := `
		UPDATE users
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return requireRowsAffected(result, "user", id)
}

// List retrieves all users matching the given criteria, excluding soft-deleted users
func (r *UserRepository) List(criteria map[string]any) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL`

	args := []any{}

	if spotifyID, ok := criteria["spotify_id"].(string); ok && spotifyID != "" {
		query += " AND spotify_id = ?"
		args = append(args, spotifyID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var (
			userID       string
			sequence     int
			spotifyID    string
			displayName  string
			email        string
			bio          string
			avatarURL    string
			refreshToken string
			createdAt    time.Time
			updatedAt    time.Time
			deletedAt    sql.NullTime
		)

		err := rows.Scan(&userID, &sequence, &spotifyID, &displayName, &email, &bio,
			&avatarURL, &refreshToken, &createdAt, &updatedAt, &deletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		user := models.NewUser(sequence, spotifyID, displayName, email)
		user.SetID(userID)
		user.SetBio(bio)
		user.SetAvatarURL(avatarURL)
		user.SetRefreshToken(refreshToken)
		user.SetCreatedAt(createdAt)
		user.SetUpdatedAt(updatedAt)
		if deletedAt.Valid {
			user.SetDeletedAt(&deletedAt.Time)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

// requireRowsAffected converts a zero-row UPDATE into a not-found error.
func requireRowsAffected(result sql.Result, kind, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, kind, id)
	}
	return nil
}
