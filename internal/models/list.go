package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxListTitleLen bounds list titles.
	MaxListTitleLen = 120

	// MaxListDescriptionLen bounds list descriptions.
	MaxListDescriptionLen = 1000
)

// List represents a user-curated collection of albums, optionally ranked.
//
// Items of a ranked list carry strictly descending position values so that the
// highest-positioned row is rank #1.
type List struct {
	entity
	userID      string
	title       string
	description string
	ranked      bool
}

// NewList creates a List owned by the given user.
func NewList(sequence int, userID, title, description string, ranked bool) *List {
	return &List{
		entity:      newEntity(sequence),
		userID:      userID,
		title:       title,
		description: description,
		ranked:      ranked,
	}
}

func (l *List) UserID() string      { return l.userID }
func (l *List) Title() string       { return l.title }
func (l *List) Description() string { return l.description }
func (l *List) Ranked() bool        { return l.ranked }

func (l *List) SetTitle(title string)      { l.title = title }
func (l *List) SetDescription(desc string) { l.description = desc }
func (l *List) SetRanked(ranked bool)      { l.ranked = ranked }

// Validate checks the list's data.
func (l *List) Validate() error {
	if l.userID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(l.title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(l.title) > MaxListTitleLen {
		return fmt.Errorf("title exceeds %d characters", MaxListTitleLen)
	}
	if len(l.description) > MaxListDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", MaxListDescriptionLen)
	}
	return nil
}

// ListItem is the junction row linking a list to one album with an ordering position.
type ListItem struct {
	ID        string
	ListID    string
	AlbumID   string
	Position  int
	CreatedAt time.Time
}
