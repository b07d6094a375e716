// package tasks implements operator-driven album list operations with real-time progress reporting.
//
// The core abstraction is ExportEngine, which hydrates stored lists against the catalog
// provider and writes them to disk. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
)

// ListExportJob carries one hydrated list to an export worker.
type ListExportJob struct {
	ListID string
	Export *models.ListExport
}

// ListExportResult contains the outcome of exporting a single list.
type ListExportResult struct {
	ListID    string   // List identifier
	ListTitle string   // List title at export time
	Success   bool     // Whether all files were written
	Files     []string // Paths of files created
	Error     error    // Error if export failed
}

// BulkExportResult contains all data from a full bulk export operation.
type BulkExportResult struct {
	TotalLists        int                // Lists requested
	SuccessfulExports int                // Lists fully written
	FailedExports     int                // Lists that failed to hydrate or write
	OutputDirectory   string             // Base output directory
	ManifestPath      string             // Path of the manifest file
	Results           []ListExportResult // Individual list outcomes
}

// ExportEngine defines operations for exporting album lists to disk.
type ExportEngine interface {
	// ExportUser exports every list belonging to a user.
	ExportUser(ctx context.Context, progress chan<- ProgressUpdate, userID string, opts BulkExportOpts) (*BulkExportResult, error)

	// ExportLists exports the named lists.
	ExportLists(ctx context.Context, progress chan<- ProgressUpdate, listIDs []string, opts BulkExportOpts) (*BulkExportResult, error)
}

// listStore is the slice of the list repository the engine reads from.
type listStore interface {
	Get(id string) (*models.List, error)
	Items(listID string) ([]models.ListItem, error)
	List(criteria map[string]any) ([]*models.List, error)
}

// Engine implements ExportEngine against the catalog provider and the list store.
type Engine struct {
	provider services.Provider
	lists    listStore
}

// NewEngine creates an Engine with the provided dependencies.
func NewEngine(provider services.Provider, lists listStore) *Engine {
	return &Engine{
		provider: provider,
		lists:    lists,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Hydrate loads a list and resolves its album entries against the catalog.
//
// Albums are fetched in batches of [services.MaxBatchAlbums] using the
// application token. Albums the catalog no longer knows keep their ID with
// empty metadata rather than failing the whole list.
func (e *Engine) Hydrate(ctx context.Context, progress chan<- ProgressUpdate, listID string) (*models.ListExport, error) {
	list, err := e.lists.Get(listID)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s", shared.ErrNotFound, listID)
	}

	items, err := e.lists.Items(listID)
	if err != nil {
		return nil, fmt.Errorf("failed to read list items: %w", err)
	}

	export := &models.ListExport{
		ID:          list.ID(),
		Title:       list.Title(),
		Description: list.Description(),
		Ranked:      list.Ranked(),
		Owner:       list.UserID(),
		Entries:     make([]models.AlbumEntry, 0, len(items)),
	}

	token, err := e.provider.AppToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	albums := make(map[string]services.SpotifyAlbum, len(items))
	for start := 0; start < len(items); start += services.MaxBatchAlbums {
		end := min(start+services.MaxBatchAlbums, len(items))

		ids := make([]string, 0, end-start)
		for _, item := range items[start:end] {
			ids = append(ids, item.AlbumID)
		}

		e.sendProgress(progress, hydrateAlbumsUpdate(end, len(items), list.Title()))

		batch, err := e.provider.SeveralAlbums(ctx, token, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch albums: %w", err)
		}
		for _, album := range batch {
			albums[album.ID] = album
		}
	}

	for rank, item := range items {
		entry := models.AlbumEntry{
			Rank:    rank + 1,
			AlbumID: item.AlbumID,
		}
		if album, ok := albums[item.AlbumID]; ok {
			entry.Name = album.Name
			entry.Artists = joinArtists(album.Artists)
			entry.ReleaseDate = album.ReleaseDate
			entry.TotalTracks = album.TotalTracks
			if len(album.Images) > 0 {
				entry.CoverURL = album.Images[0].URL
			}
		}
		export.Entries = append(export.Entries, entry)
	}

	return export, nil
}

func joinArtists(artists []services.SpotifyArtist) string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		names = append(names, artist.Name)
	}
	return strings.Join(names, ", ")
}
