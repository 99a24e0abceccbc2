// package formatter provides functions to export the card deck to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/turntable/internal/models"
)

// Export is a snapshot of the deck.
type Export struct {
	Mood       models.Mood       `json:"mood"`
	Genres     []models.Genre    `json:"genres"`
	Playlists  []models.Playlist `json:"playlists"`
	ExportedAt time.Time         `json:"exported_at"`
}

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat accepts the names and common aliases of the export formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Render encodes export in format f.
func Render(export *Export, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export, nil)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

// ExportToCSV converts the deck to CSV format with columns: Position, ID, Genre, Title, Query, Image, Created
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Genre", "Title", "Query", "Image", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, p := range export.Playlists {
		record := []string{
			fmt.Sprint(i + 1),
			p.ID,
			string(p.Genre),
			p.Title,
			p.Query,
			p.ImageURL,
			p.CreatedAt.UTC().Format(time.RFC3339),
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

// ExportToMarkdown converts the deck to Markdown. covers maps playlist IDs to local image files;
// cards without one link their remote image.
func ExportToMarkdown(export *Export, covers map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Mood))
	buf.WriteString(fmt.Sprintf("**Genres**: %s\n", joinGenres(export.Genres)))
	buf.WriteString(fmt.Sprintf("**Cards**: %d\n\n", len(export.Playlists)))

	for i, p := range export.Playlists {
		buf.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, p.Title))
		if img := covers[p.ID]; img != "" {
			buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", p.Genre, img))
		} else if p.ImageURL != "" {
			buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", p.Genre, p.ImageURL))
		}
		buf.WriteString(fmt.Sprintf("- **Genre**: %s\n", p.Genre))
		buf.WriteString(fmt.Sprintf("- **Search**: `%s`\n\n", p.Query))
	}

	return buf.Bytes(), nil
}

// ExportToText converts the deck to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Mood: %s\n", export.Mood))
	buf.WriteString(fmt.Sprintf("Genres: %s\n", joinGenres(export.Genres)))
	buf.WriteString(fmt.Sprintf("Cards: %d\n\n", len(export.Playlists)))

	for i, p := range export.Playlists {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s\n", i+1, p.Genre, p.Title, p.Query))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts the deck to indented JSON.
func ExportToJSON(export *Export) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return append(data, '\n'), nil
}

func joinGenres(genres []models.Genre) string {
	parts := make([]string, len(genres))
	for i, g := range genres {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
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

// WriteExport writes the deck in format f to path.
func WriteExport(export *Export, f Format, path string) error {
	data, err := Render(export, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Covers    int
	Failed    int
}

// WriteMarkdownExport exports the deck to Markdown format in a dedicated directory.
//
// When download is set, each card's cover is saved next to README.md as {id}.jpg.
// Failed downloads fall back to the remote link.
func WriteMarkdownExport(ctx context.Context, export *Export, outputDir string, download bool, client *http.Client) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "deck"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: outputDir, Files: []string{}}

	covers := map[string]string{}
	if download {
		for _, p := range export.Playlists {
			if p.ImageURL == "" {
				continue
			}
			data, err := DownloadImage(ctx, client, p.ImageURL)
			if err != nil {
				result.Failed++
				continue
			}
			name := p.ID + ".jpg"
			path := filepath.Join(outputDir, name)
			if err := os.WriteFile(path, data, 0644); err != nil {
				result.Failed++
				continue
			}
			covers[p.ID] = name
			result.Covers++
			result.Files = append(result.Files, path)
		}
	}

	mdData, err := ExportToMarkdown(export, covers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}
