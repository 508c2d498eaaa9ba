package ranking

import (
	"testing"

	"reelrank/internal/media"
)

func enrichedWithComposite(title string, score float64) media.Enriched {
	return media.Enriched{
		Item:      media.Item{TitlePrimary: title},
		Signals:   media.Signals{Scraped: media.Float(score)},
		Composite: media.Float(score),
		Coverage:  1,
	}
}

func TestSelectTopRanksAndTruncates(t *testing.T) {
	items := []media.Enriched{
		enrichedWithComposite("c", 6.1),
		enrichedWithComposite("a", 9.2),
		enrichedWithComposite("f", 3.3),
		enrichedWithComposite("b", 8.4),
		enrichedWithComposite("e", 4.5),
		enrichedWithComposite("d", 5.6),
		enrichedWithComposite("g", 2.7),
		enrichedWithComposite("h", 1.8),
	}

	ranked := SelectTop(items, 5)
	if len(ranked) != 5 {
		t.Fatalf("SelectTop returned %d items, want 5", len(ranked))
	}
	for idx, item := range ranked {
		if item.Rank != idx+1 {
			t.Errorf("rank at index %d = %d, want %d", idx, item.Rank, idx+1)
		}
	}
	for idx := 1; idx < len(ranked); idx++ {
		if SortScore(ranked[idx].Enriched) > SortScore(ranked[idx-1].Enriched) {
			t.Errorf("scores not non-increasing at index %d", idx)
		}
	}
	if ranked[0].TitlePrimary != "a" {
		t.Errorf("top item = %q, want %q", ranked[0].TitlePrimary, "a")
	}
}

func TestSelectTopExcludesZeroCoverage(t *testing.T) {
	// A display-only composite without any real signal must never rank.
	bare := media.Enriched{
		Item:      media.Item{TitlePrimary: "ghost"},
		Composite: media.Float(9.9),
	}
	real := enrichedWithComposite("real", 5.0)

	ranked := SelectTop([]media.Enriched{bare, real}, 5)
	if len(ranked) != 1 {
		t.Fatalf("SelectTop returned %d items, want 1", len(ranked))
	}
	if ranked[0].TitlePrimary != "real" {
		t.Errorf("ranked item = %q, want %q", ranked[0].TitlePrimary, "real")
	}
}

func TestSelectTopFallbackScores(t *testing.T) {
	noComposite := media.Enriched{
		Item:    media.Item{TitlePrimary: "api only"},
		Signals: media.Signals{NumericAPI: media.Float(7.5)},
	}
	scrapedOnly := media.Enriched{
		Item:    media.Item{TitlePrimary: "scraped only"},
		Signals: media.Signals{Scraped: media.Float(8.1)},
	}
	withComposite := enrichedWithComposite("composite", 7.9)

	ranked := SelectTop([]media.Enriched{noComposite, scrapedOnly, withComposite}, 3)
	if len(ranked) != 3 {
		t.Fatalf("SelectTop returned %d items, want 3", len(ranked))
	}
	want := []string{"scraped only", "composite", "api only"}
	for idx, title := range want {
		if ranked[idx].TitlePrimary != title {
			t.Errorf("rank %d = %q, want %q", idx+1, ranked[idx].TitlePrimary, title)
		}
	}
}

func TestSelectTopStable(t *testing.T) {
	items := []media.Enriched{
		enrichedWithComposite("first", 7.0),
		enrichedWithComposite("second", 7.0),
		enrichedWithComposite("third", 7.0),
	}
	a := SelectTop(items, 3)
	b := SelectTop(items, 3)
	for idx := range a {
		if a[idx].TitlePrimary != b[idx].TitlePrimary {
			t.Fatalf("SelectTop not deterministic at index %d", idx)
		}
	}
}

func TestSelectTopShortList(t *testing.T) {
	ranked := SelectTop([]media.Enriched{enrichedWithComposite("only", 5)}, 5)
	if len(ranked) != 1 {
		t.Fatalf("SelectTop returned %d items, want 1", len(ranked))
	}
	if ranked[0].Rank != 1 {
		t.Errorf("rank = %d, want 1", ranked[0].Rank)
	}
}
