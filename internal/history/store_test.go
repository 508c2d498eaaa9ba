package history

import (
	"context"
	"path/filepath"
	"testing"

	"reelrank/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRanked(rank int, title string, composite float64) media.Ranked {
	return media.Ranked{
		Enriched: media.Enriched{
			Item: media.Item{
				Type:         media.TypeMovie,
				TMDBID:       int64(1000 + rank),
				IMDBID:       "tt0000001",
				TitlePrimary: title,
				Year:         2024,
			},
			Signals: media.Signals{
				Scraped:     media.Float(7.8),
				UserScore10: media.Float(8.1),
			},
			Composite: media.Float(composite),
			Coverage:  2,
		},
		Rank: rank,
	}
}

func TestRunRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, media.TypeMovie)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("BeginRun returned empty run ID")
	}

	items := []media.Ranked{
		sampleRanked(1, "Dune: Part Two", 8.05),
		sampleRanked(2, "Conclave", 7.4),
	}
	if err := store.SaveRanking(ctx, run.ID, items); err != nil {
		t.Fatalf("SaveRanking: %v", err)
	}
	if err := store.FinishRun(ctx, run.ID, len(items)); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	latest, err := store.LatestRun(ctx, media.TypeMovie)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest == nil || latest.ID != run.ID {
		t.Fatalf("LatestRun = %+v, want run %s", latest, run.ID)
	}
	if latest.FinishedAt == nil {
		t.Error("finished run has nil FinishedAt")
	}
	if latest.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", latest.ItemCount)
	}

	records, err := store.RankingForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("RankingForRun: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("stored %d records, want 2", len(records))
	}
	first := records[0]
	if first.Rank != 1 || first.Title != "Dune: Part Two" {
		t.Errorf("first record = %+v, want rank 1 Dune: Part Two", first)
	}
	if first.Composite == nil || *first.Composite != 8.05 {
		t.Errorf("composite = %v, want 8.05", first.Composite)
	}
	if first.Signals.Scraped == nil || *first.Signals.Scraped != 7.8 {
		t.Errorf("scraped signal = %v, want 7.8 after JSON round trip", first.Signals.Scraped)
	}
	if first.Signals.NumericAPI != nil {
		t.Errorf("absent signal came back as %v, want nil", *first.Signals.NumericAPI)
	}
}

func TestLatestRunFiltersByMediaType(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.BeginRun(ctx, media.TypeMovie); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	latest, err := store.LatestRun(ctx, media.TypeSeries)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestRun(series) = %+v, want nil with only movie runs", latest)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := store.BeginRun(ctx, media.TypeMovie)
		if err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != ids[2] {
		t.Errorf("newest run = %s, want %s", runs[0].ID, ids[2])
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var newest string
	for i := 0; i < 5; i++ {
		run, err := store.BeginRun(ctx, media.TypeMovie)
		if err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		if err := store.SaveRanking(ctx, run.ID, []media.Ranked{sampleRanked(1, "Title", 7.0)}); err != nil {
			t.Fatalf("SaveRanking: %v", err)
		}
		newest = run.ID
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune removed %d runs, want 3", removed)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("%d runs survive prune, want 2", len(runs))
	}
	if runs[0].ID != newest {
		t.Errorf("newest surviving run = %s, want %s", runs[0].ID, newest)
	}

	// Cascade must have dropped the pruned runs' items.
	records, err := store.RankingForRun(ctx, runs[0].ID)
	if err != nil {
		t.Fatalf("RankingForRun: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("surviving run has %d records, want 1", len(records))
	}
}
