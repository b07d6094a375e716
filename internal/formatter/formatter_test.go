package formatter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/altbeat/jukebox/internal/models"
	jbtest "github.com/altbeat/jukebox/internal/testing"
)

func sampleExport() *models.ListExport {
	return &models.ListExport{
		ID:          "list-1",
		Title:       "Late Night Rotation",
		Description: "Records for after midnight.",
		Ranked:      true,
		Owner:       "user-1",
		Entries: []models.AlbumEntry{
			{Rank: 1, AlbumID: "a1", Name: "Blue", Artists: "Joni Mitchell", ReleaseDate: "1971-06-22", TotalTracks: 10},
			{Rank: 2, AlbumID: "a2", Name: "In Rainbows", Artists: "Radiohead", ReleaseDate: "2007-10-10", TotalTracks: 10},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleExport())
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Rank,AlbumID,Name,Artists,ReleaseDate,Tracks" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,a1,Blue,Joni Mitchell") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("Without Cover", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport(), "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		md := string(data)

		if !strings.HasPrefix(md, "# Late Night Rotation\n") {
			t.Errorf("missing title heading: %s", md)
		}
		if strings.Contains(md, "![Cover]") {
			t.Error("unexpected cover image reference")
		}
		if !strings.Contains(md, "**Ordering**: ranked") {
			t.Error("missing ordering line")
		}
		if !strings.Contains(md, "1. Joni Mitchell - Blue (1971-06-22)") {
			t.Errorf("missing first entry: %s", md)
		}
	})

	t.Run("With Cover", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport(), "cover.jpg")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "![Cover](cover.jpg)") {
			t.Error("missing cover image reference")
		}
	})

	t.Run("Unranked Ordering", func(t *testing.T) {
		export := sampleExport()
		export.Ranked = false
		data, err := ExportToMarkdown(export, "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "**Ordering**: unranked") {
			t.Error("missing unranked ordering line")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleExport())
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "List: Late Night Rotation") {
		t.Errorf("missing list header: %s", text)
	}
	if !strings.Contains(text, "Albums: 2") {
		t.Errorf("missing album count: %s", text)
	}
	if !strings.Contains(text, "2. Radiohead - In Rainbows") {
		t.Errorf("missing second entry: %s", text)
	}
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(sampleExport())
	if err != nil {
		t.Fatalf("ToMetadataJSON failed: %v", err)
	}

	var metadata map[string]any
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatalf("metadata should be valid JSON: %v", err)
	}
	if metadata["title"] != "Late Night Rotation" {
		t.Errorf("title = %v", metadata["title"])
	}
	if _, ok := metadata["entries"]; ok && metadata["entries"] != nil {
		t.Error("metadata should not carry entries")
	}
}

func TestDownloadImage(t *testing.T) {
	t.Run("Downloads Bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("fake-image-bytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL)
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "fake-image-bytes" {
			t.Errorf("unexpected payload: %q", data)
		}
	})

	t.Run("Rejects Empty URL", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Rejects Non-200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(server.URL); err == nil {
			t.Error("expected error for 404 response")
		}
	})
}

func TestWriteCSVExport(t *testing.T) {
	base := filepath.Join(t.TempDir(), "list-1")

	result, err := WriteCSVExport(sampleExport(), base)
	if err != nil {
		t.Fatalf("WriteCSVExport failed: %v", err)
	}

	jbtest.AssertFileExists(t, result.EntriesFile)
	jbtest.AssertFileExists(t, result.MetadataFile)
	if result.EntriesFile != base+"_albums.csv" {
		t.Errorf("entries file = %s", result.EntriesFile)
	}

	content := jbtest.MustReadFile(t, result.EntriesFile)
	if !strings.Contains(content, "In Rainbows") {
		t.Errorf("CSV missing entry: %s", content)
	}
}

func TestWriteMarkdownExport(t *testing.T) {
	t.Run("Writes README", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "list-1")

		result, err := WriteMarkdownExport(sampleExport(), dir, "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		jbtest.AssertDirExists(t, dir)
		jbtest.AssertFileExists(t, filepath.Join(dir, "README.md"))
		if len(result.Files) != 1 {
			t.Errorf("expected one file, got %v", result.Files)
		}
	})

	t.Run("Downloads Cover When Available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		dir := filepath.Join(t.TempDir(), "list-1")
		result, err := WriteMarkdownExport(sampleExport(), dir, server.URL)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		jbtest.AssertFileExists(t, filepath.Join(dir, "cover.jpg"))
		if result.CoverImage == "" {
			t.Error("expected cover image path in result")
		}
		content := jbtest.MustReadFile(t, filepath.Join(dir, "README.md"))
		if !strings.Contains(content, "![Cover](cover.jpg)") {
			t.Error("README should reference the downloaded cover")
		}
	})
}

func TestWriteTextExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list-1_albums.txt")

	written, err := WriteTextExport(sampleExport(), path)
	if err != nil {
		t.Fatalf("WriteTextExport failed: %v", err)
	}
	if written != path {
		t.Errorf("returned path = %s, want %s", written, path)
	}
	jbtest.AssertFileExists(t, path)
}
