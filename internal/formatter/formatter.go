// package formatter provides functions to export album list data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// ExportToCSV converts a ListExport to CSV format with columns: Rank, AlbumID, Name, Artists, ReleaseDate, Tracks
func ExportToCSV(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "AlbumID", "Name", "Artists", "ReleaseDate", "Tracks"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range export.Entries {
		record := []string{
			strconv.Itoa(entry.Rank),
			entry.AlbumID,
			entry.Name,
			entry.Artists,
			entry.ReleaseDate,
			strconv.Itoa(entry.TotalTracks),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ListExport to Markdown format with optional cover image
func ExportToMarkdown(export *models.ListExport, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if export.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", export.Description))
	}

	buf.WriteString(fmt.Sprintf("**Albums**: %d\n", len(export.Entries)))
	buf.WriteString(fmt.Sprintf("**Ordering**: %s\n\n", orderingString(export.Ranked)))

	buf.WriteString("## Albums\n\n")
	for _, entry := range export.Entries {
		releasePart := ""
		if entry.ReleaseDate != "" {
			releasePart = fmt.Sprintf(" (%s)", entry.ReleaseDate)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", entry.Rank, entry.Artists, entry.Name, releasePart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ListExport to plain text format
func ExportToText(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("List: %s\n", export.Title))
	if export.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", export.Description))
	}
	buf.WriteString(fmt.Sprintf("Albums: %d\n\n", len(export.Entries)))

	for _, entry := range export.Entries {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", entry.Rank, entry.Artists, entry.Name))
	}

	return buf.Bytes(), nil
}

func orderingString(ranked bool) string {
	if ranked {
		return "ranked"
	}
	return "unranked"
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of list metadata (without entries)
func ToMetadataJSON(export *models.ListExport) ([]byte, error) {
	metadata := *export
	metadata.Entries = nil
	return shared.MarshalJSON(metadata, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	EntriesFile  string
	MetadataFile string
}

// WriteCSVExport exports a list to CSV format with accompanying metadata JSON file.
//
// Defaults to list ID as the base filename & creates {base}_albums.csv and {base}_metadata.json
func WriteCSVExport(export *models.ListExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.ID
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	entriesFile := baseFilepath + "_albums.csv"
	if err := os.WriteFile(entriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		EntriesFile:  entriesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a list to Markdown format in a dedicated directory.
//
// Directory name defaults to the list ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(export *models.ListExport, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = export.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(export, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a list to plain text format.
//
// Defaults to {list.ID}_albums.txt as the filename.
func WriteTextExport(export *models.ListExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_albums.txt", export.ID)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
