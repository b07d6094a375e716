package ui

import (
	"github.com/altbeat/jukebox/internal/models"
)

// listsFetchedMsg carries the result of loading lists from the database.
type listsFetchedMsg struct {
	lists []*models.List
	err   error
}

// albumsFetchedMsg carries a hydrated list export.
type albumsFetchedMsg struct {
	export *models.ListExport
	err    error
}

// reviewsFetchedMsg carries the reviews for one album.
type reviewsFetchedMsg struct {
	albumName string
	reviews   []*models.Review
	err       error
}
