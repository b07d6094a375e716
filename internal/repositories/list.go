package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// ListRepository implements [models.Repository] for [models.List] persistence,
// plus membership operations on the list_items junction table.
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new [ListRepository] with the given database connection
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

const listColumns = "id, sequence, user_id, title, description, ranked, created_at, updated_at, deleted_at"

// Create inserts a new list into the database with generated ID and sequence
func (r *ListRepository) Create(list *models.List) error {
	sequence, err := NextSequence(r.db, "lists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	list.SetID(id)

	if err := list.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO lists (id, sequence, user_id, title, description, ranked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, list.UserID(), list.Title(),
		list.Description(), list.Ranked(), list.CreatedAt(), list.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}

	return nil
}

// Get retrieves a list by ID, excluding soft-deleted lists
func (r *ListRepository) Get(id string) (*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = ? AND deleted_at IS NULL`

	var (
		listID      string
		sequence    int
		userID      string
		title       string
		description string
		ranked      bool
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := r.db.QueryRow(query, id).Scan(&listID, &sequence, &userID, &title,
		&description, &ranked, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: list %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}

	list := models.NewList(sequence, userID, title, description, ranked)
	list.SetID(listID)
	list.SetCreatedAt(createdAt)
	list.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		list.SetDeletedAt(&deletedAt.Time)
	}

	return list, nil
}

// Update modifies an existing list's title, description and ranked flag
func (r *ListRepository) Update(list *models.List) error {
	if err := list.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	list.SetUpdatedAt(now)

	query := `
		UPDATE lists
		SET title = ?, description = ?, ranked = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, list.Title(), list.Description(), list.Ranked(), now, list.ID())
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}

	return requireRowsAffected(result, "list", list.ID())
}

// Delete soft-deletes a list by ID
func (r *ListRepository) Delete(id string) error {
	query := `
		UPDATE lists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	return requireRowsAffected(result, "list", id)
}

// List retrieves lists matching the given criteria ("user_id"), excluding soft-deleted lists
func (r *ListRepository) List(criteria map[string]any) ([]*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE deleted_at IS NULL`

	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.List
	for rows.Next() {
		var (
			listID      string
			sequence    int
			userID      string
			title       string
			description string
			ranked      bool
			createdAt   time.Time
			updatedAt   time.Time
			deletedAt   sql.NullTime
		)

		err := rows.Scan(&listID, &sequence, &userID, &title, &description,
			&ranked, &createdAt, &updatedAt, &deletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}

		list := models.NewList(sequence, userID, title, description, ranked)
		list.SetID(listID)
		list.SetCreatedAt(createdAt)
		list.SetUpdatedAt(updatedAt)
		if deletedAt.Valid {
			list.SetDeletedAt(&deletedAt.Time)
		}

		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lists, nil
}

// AddItem appends an album to the end of a list.
//
// New items take MIN(position)-1 so existing ordering is untouched; a
// subsequent Reorder renormalizes positions to count..1. Duplicate albums are
// rejected by the UNIQUE(list_id, album_id) constraint.
func (r *ListRepository) AddItem(listID, albumID string) (*models.ListItem, error) {
	if !models.ValidAlbumID(albumID) {
		return nil, fmt.Errorf("%w: invalid album id %q", shared.ErrInvalidInput, albumID)
	}

	var position int
	err := r.db.QueryRow(
		"SELECT COALESCE(MIN(position), 2) - 1 FROM list_items WHERE list_id = ?", listID,
	).Scan(&position)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}

	item := &models.ListItem{
		ID:        shared.GenerateID(),
		ListID:    listID,
		AlbumID:   albumID,
		Position:  position,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO list_items (id, list_id, album_id, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, item.ID, item.ListID, item.AlbumID, item.Position, item.CreatedAt); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("%w: album %s already in list", shared.ErrInvalidInput, albumID)
		}
		return nil, fmt.Errorf("failed to insert list item: %w", err)
	}

	return item, nil
}

// Items retrieves a list's items ordered by descending position (rank #1 first).
func (r *ListRepository) Items(listID string) ([]models.ListItem, error) {
	query := `
		SELECT id, list_id, album_id, position, created_at
		FROM list_items
		WHERE list_id = ?
		ORDER BY position DESC, created_at ASC
	`

	rows, err := r.db.Query(query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer rows.Close()

	var items []models.ListItem
	for rows.Next() {
		var item models.ListItem
		if err := rows.Scan(&item.ID, &item.ListID, &item.AlbumID, &item.Position, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// Reorder replaces a list's ordering with the submitted permutation of album ids.
//
// The submission must be an exact permutation of the current item set: a
// duplicate id fails with [shared.ErrOrderDuplicate], any size or membership
// mismatch with [shared.ErrOrderMismatch]. Positions count..1 are assigned in
// a single CASE-keyed UPDATE so the whole reorder commits or fails as one
// statement.
func (r *ListRepository) Reorder(listID string, albumIDs []string) error {
	seen := make(map[string]bool, len(albumIDs))
	for _, albumID := range albumIDs {
		if seen[albumID] {
			return fmt.Errorf("%w: %s", shared.ErrOrderDuplicate, albumID)
		}
		seen[albumID] = true
	}

	existing, err := r.Items(listID)
	if err != nil {
		return err
	}

	if len(existing) != len(albumIDs) {
		return fmt.Errorf("%w: have %d items, got %d", shared.ErrOrderMismatch, len(existing), len(albumIDs))
	}
	for _, item := range existing {
		if !seen[item.AlbumID] {
			return fmt.Errorf("%w: missing %s", shared.ErrOrderMismatch, item.AlbumID)
		}
	}

	// A CASE needs at least one WHEN arm; an empty list reorders to itself.
	if len(albumIDs) == 0 {
		return nil
	}

	// UPDATE list_items SET position = CASE album_id WHEN ? THEN ? ... END WHERE list_id = ?
	var sb strings.Builder
	sb.WriteString("UPDATE list_items SET position = CASE album_id")
	args := make([]any, 0, 2*len(albumIDs)+1)
	count := len(albumIDs)
	for i, albumID := range albumIDs {
		sb.WriteString(" WHEN ? THEN ?")
		args = append(args, albumID, count-i)
	}
	sb.WriteString(" END WHERE list_id = ?")
	args = append(args, listID)

	if _, err := r.db.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("failed to reorder list items: %w", err)
	}

	return nil
}
