package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reelrank/internal/media"
)

// Document is the exported JSON shape for one ranking run.
type Document struct {
	GeneratedAt string `json:"generated_at"`
	MediaType   string `json:"media_type"`
	RunID       string `json:"run_id,omitempty"`
	Items       []Item `json:"items"`
}

// Item is one exported ranking entry.
type Item struct {
	Rank         int           `json:"rank"`
	Title        string        `json:"title"`
	OriginalTitle string       `json:"original_title,omitempty"`
	Year         int           `json:"year,omitempty"`
	TMDBID       int64         `json:"tmdb_id"`
	IMDBID       string        `json:"imdb_id,omitempty"`
	Composite    *float64      `json:"composite"`
	Coverage     int           `json:"coverage"`
	Signals      media.Signals `json:"signals"`
	Platforms    []string      `json:"platforms,omitempty"`
	Genres       []string      `json:"genres,omitempty"`
	MatchedTitle string        `json:"matched_title,omitempty"`
	MatchedURL   string        `json:"matched_url,omitempty"`
}

// Filename returns the export file name for a media type.
func Filename(mediaType media.Type) string {
	if mediaType == media.TypeSeries {
		return "top_series.json"
	}
	return "top_movies.json"
}

// Write serializes a ranking to dir atomically and returns the final path.
func Write(dir string, mediaType media.Type, runID string, items []media.Ranked) (string, error) {
	doc := Document{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		MediaType:   string(mediaType),
		RunID:       runID,
		Items:       make([]Item, 0, len(items)),
	}
	for _, ranked := range items {
		doc.Items = append(doc.Items, Item{
			Rank:          ranked.Rank,
			Title:         ranked.Title(),
			OriginalTitle: ranked.TitleOriginal,
			Year:          ranked.Year,
			TMDBID:        ranked.TMDBID,
			IMDBID:        ranked.IMDBID,
			Composite:     ranked.Composite,
			Coverage:      ranked.Coverage,
			Signals:       ranked.Signals,
			Platforms:     ranked.Platforms,
			Genres:        ranked.Genres,
			MatchedTitle:  ranked.MatchedTitle,
			MatchedURL:    ranked.MatchedURL,
		})
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	payload = append(payload, '\n')

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	finalPath := filepath.Join(dir, Filename(mediaType))
	tempPath := finalPath + ".tmp"
	if err := os.WriteFile(tempPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("write export temp file: %w", err)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("replace export file: %w", err)
	}
	return finalPath, nil
}
