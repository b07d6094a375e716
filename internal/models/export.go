package models

// ListExport bundles a list's metadata with its hydrated album entries.
//
// Entries are ordered by rank, so Entries[0] is the list's #1 album. The
// flattened album fields come from the catalog provider at export time.
type ListExport struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Ranked      bool         `json:"ranked"`
	Owner       string       `json:"owner"`
	Entries     []AlbumEntry `json:"entries"`
}

// AlbumEntry is one album row in a list export.
type AlbumEntry struct {
	Rank        int    `json:"rank"`
	AlbumID     string `json:"album_id"`
	Name        string `json:"name"`
	Artists     string `json:"artists"`
	ReleaseDate string `json:"release_date,omitempty"`
	TotalTracks int    `json:"total_tracks,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
}
