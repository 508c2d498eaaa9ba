package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"reelrank/internal/media"
)

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	items := []media.Ranked{
		{
			Enriched: media.Enriched{
				Item: media.Item{
					Type:         media.TypeMovie,
					TMDBID:       693134,
					IMDBID:       "tt15239678",
					TitlePrimary: "Dune: Part Two",
					Year:         2024,
					Platforms:    []string{"Max"},
				},
				Signals:   media.Signals{Scraped: media.Float(7.8)},
				Composite: media.Float(7.8),
				Coverage:  1,
			},
			Rank: 1,
		},
	}

	path, err := Write(dir, media.TypeMovie, "run-1", items)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "top_movies.json" {
		t.Errorf("export path = %q, want top_movies.json", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if doc.MediaType != "movie" || doc.RunID != "run-1" {
		t.Errorf("document header = %+v", doc)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("exported %d items, want 1", len(doc.Items))
	}
	got := doc.Items[0]
	if got.Rank != 1 || got.Title != "Dune: Part Two" {
		t.Errorf("item = %+v", got)
	}
	if got.Composite == nil || *got.Composite != 7.8 {
		t.Errorf("composite = %v, want 7.8", got.Composite)
	}

	// No temp file may survive a successful write.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestWriteEmptyRankingIsValid(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, media.TypeSeries, "", nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "top_series.json" {
		t.Errorf("export path = %q, want top_series.json", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if doc.Items == nil || len(doc.Items) != 0 {
		t.Errorf("items = %#v, want empty non-nil list", doc.Items)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(media.TypeMovie); got != "top_movies.json" {
		t.Errorf("Filename(movie) = %q", got)
	}
	if got := Filename(media.TypeSeries); got != "top_series.json" {
		t.Errorf("Filename(series) = %q", got)
	}
}
