package ui

import (
	"fmt"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = listItem{}
	_ list.Item = albumItem{}
	_ list.Item = reviewItem{}
)

// listItem wraps [models.List] to implement [list.Item].
type listItem struct {
	list *models.List
}

func (i listItem) FilterValue() string { return i.list.Title() }
func (i listItem) Title() string       { return i.list.Title() }
func (i listItem) Description() string {
	desc := "unranked"
	if i.list.Ranked() {
		desc = "ranked"
	}
	if i.list.Description() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.list.Description())
	}
	return desc
}

// albumItem wraps [models.AlbumEntry] to implement [list.Item].
type albumItem struct {
	entry models.AlbumEntry
}

func (i albumItem) FilterValue() string { return i.entry.Name }
func (i albumItem) Title() string {
	name := i.entry.Name
	if name == "" {
		name = i.entry.AlbumID
	}
	return fmt.Sprintf("%d. %s", i.entry.Rank, name)
}
func (i albumItem) Description() string {
	desc := i.entry.Artists
	if i.entry.ReleaseDate != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.entry.ReleaseDate)
	}
	return desc
}

// reviewItem wraps [models.Review] to implement [list.Item].
type reviewItem struct {
	review *models.Review
}

func (i reviewItem) FilterValue() string { return i.review.AuthorName() }
func (i reviewItem) Title() string {
	return fmt.Sprintf("%s — %d/%d", i.review.AuthorName(), i.review.Rating(), models.MaxRating)
}
func (i reviewItem) Description() string {
	body := i.review.Body()
	if len(body) > 80 {
		body = body[:77] + "..."
	}
	return body
}
