package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/altbeat/jukebox/internal/formatter"
	"github.com/altbeat/jukebox/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk list exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: jukebox_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Catalog requests per second (default: 5)
}

// ExportUser exports every list belonging to the given user.
func (e *Engine) ExportUser(ctx context.Context, progress chan<- ProgressUpdate, userID string, opts BulkExportOpts) (*BulkExportResult, error) {
	lists, err := e.lists.List(map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list user lists: %w", err)
	}
	if len(lists) == 0 {
		return nil, fmt.Errorf("%w: user %s has no lists", shared.ErrNotFound, userID)
	}

	e.sendProgress(progress, foundListsUpdate(len(lists)))

	ids := make([]string, 0, len(lists))
	for _, list := range lists {
		ids = append(ids, list.ID())
	}
	return e.ExportLists(ctx, progress, ids, opts)
}

// ExportLists exports the named lists concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern to efficiently export multiple lists.
// It respects catalog rate limits, handles partial failures gracefully, and generates a
// manifest file summarizing the export results.
func (e *Engine) ExportLists(ctx context.Context, progress chan<- ProgressUpdate, listIDs []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("jukebox_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalLists:      len(listIDs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ListExportResult, 0, len(listIDs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ListExportJob, len(listIDs))
	results := make(chan ListExportResult, len(listIDs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		e.sendProgress(progress, fetchListsUpdate(1, len(listIDs)))
		for i, listID := range listIDs {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			export, err := e.Hydrate(ctx, progress, listID)
			if err != nil {
				results <- ListExportResult{
					ListID:    listID,
					ListTitle: fmt.Sprintf("Unknown (%s)", listID),
					Success:   false,
					Error:     fmt.Errorf("failed to hydrate list: %w", err),
				}
				continue
			}

			jobs <- ListExportJob{
				ListID: listID,
				Export: export,
			}

			e.sendProgress(progress, exportingListUpdate(i+1, len(listIDs), export.Title))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(progress, exportCompletedUpdate(
				completed,
				len(listIDs),
				res.ListTitle,
				len(res.Files),
			))
		} else {
			result.FailedExports++
			e.sendProgress(progress, exportFailedUpdate(
				completed,
				len(listIDs),
				res.ListTitle,
				res.Error,
			))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(buildManifest(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports lists from the jobs channel.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ListExportJob,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleList(job, opts)
	}
}

// exportSingleList writes a single hydrated list in the requested format.
func (e *Engine) exportSingleList(j ListExportJob, opts BulkExportOpts) ListExportResult {
	result := ListExportResult{
		ListID:    j.ListID,
		ListTitle: j.Export.Title,
		Success:   false,
		Files:     []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Export.ID)
		csvRes, err := formatter.WriteCSVExport(j.Export, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.EntriesFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.Export.ID)

		var imageURL string
		if len(j.Export.Entries) > 0 {
			imageURL = j.Export.Entries[0].CoverURL
		}

		mdRes, err := formatter.WriteMarkdownExport(j.Export, outputDir, imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_albums.txt", j.Export.ID))
		filepath, err := formatter.WriteTextExport(j.Export, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{filepath}
		result.Success = true
	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.Export.ID))
		data, err := shared.MarshalJSON(j.Export, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

func buildManifest(result *BulkExportResult, format string) *formatter.Manifest {
	if format == "" {
		format = "json"
	}
	manifest := &formatter.Manifest{
		ExportedAt: time.Now().UTC(),
		Format:     format,
		OutputDir:  result.OutputDirectory,
		Total:      result.TotalLists,
		Succeeded:  result.SuccessfulExports,
		Failed:     result.FailedExports,
		Lists:      make([]formatter.ManifestEntry, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		entry := formatter.ManifestEntry{
			ListID: res.ListID,
			Title:  res.ListTitle,
			Files:  res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		manifest.Lists = append(manifest.Lists, entry)
	}
	return manifest
}
