package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/altbeat/jukebox/internal/shared"
)

// Manifest summarizes a bulk export run for the generated manifest file.
type Manifest struct {
	ExportedAt time.Time       `json:"exported_at"`
	Format     string          `json:"format"`
	OutputDir  string          `json:"output_dir"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Lists      []ManifestEntry `json:"lists"`
}

// ManifestEntry records the outcome of one list export.
type ManifestEntry struct {
	ListID string   `json:"list_id"`
	Title  string   `json:"title"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// WriteManifest writes a bulk export manifest as pretty-printed JSON.
func WriteManifest(manifest *Manifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}
