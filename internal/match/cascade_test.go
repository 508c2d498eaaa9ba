package match

import (
	"context"
	"errors"
	"testing"

	"reelrank/internal/media"
)

type fakeSearcher struct {
	results       map[string][]Candidate
	details       map[string]Candidate
	searchErr     error
	detailErr     error
	searchQueries []string
	detailURLs    []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ media.Type) ([]Candidate, error) {
	f.searchQueries = append(f.searchQueries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeSearcher) Detail(_ context.Context, url string) (Candidate, error) {
	f.detailURLs = append(f.detailURLs, url)
	if f.detailErr != nil {
		return Candidate{}, f.detailErr
	}
	return f.details[url], nil
}

func newTestCascade(searcher Searcher) *Cascade {
	return NewCascade(searcher, newTestResolver(), NewCache(), 8, nil)
}

func TestCascadeQueryOrder(t *testing.T) {
	searcher := &fakeSearcher{}
	cascade := newTestCascade(searcher)

	item := media.Item{
		Type:          media.TypeMovie,
		TitlePrimary:  "The Substance",
		TitleOriginal: "La Sustancia",
		Year:          2024,
	}
	cascade.FindRating(context.Background(), item)

	want := []string{
		"The Substance 2024",
		"The Substance",
		"La Sustancia 2024",
		"La Sustancia",
	}
	if len(searcher.searchQueries) != len(want) {
		t.Fatalf("issued %d queries, want %d: %v", len(searcher.searchQueries), len(want), searcher.searchQueries)
	}
	for i, query := range want {
		if searcher.searchQueries[i] != query {
			t.Errorf("query[%d] = %q, want %q", i, searcher.searchQueries[i], query)
		}
	}
}

func TestCascadeStopsAtFirstHit(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]Candidate{
			"Nosferatu 2024": {
				{Title: "Nosferatu", Type: media.TypeMovie, Year: 2024, Rating: media.Float(7.1), URL: "/film1.html"},
			},
		},
	}
	cascade := newTestCascade(searcher)

	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Nosferatu", Year: 2024}
	got := cascade.FindRating(context.Background(), item)

	if got.Rating == nil || *got.Rating != 7.1 {
		t.Fatalf("FindRating = %+v, want rating 7.1", got)
	}
	if len(searcher.searchQueries) != 1 {
		t.Errorf("issued %d queries after a hit, want 1", len(searcher.searchQueries))
	}
}

func TestCascadeMemoizesNegatives(t *testing.T) {
	searcher := &fakeSearcher{}
	cache := NewCache()
	cascade := NewCascade(searcher, newTestResolver(), cache, 8, nil)

	item := media.Item{Type: media.TypeSeries, TitlePrimary: "Severance", Year: 2025}
	cascade.FindRating(context.Background(), item)
	first := len(searcher.searchQueries)

	// Second pass over the same item must be answered entirely from cache.
	cascade.FindRating(context.Background(), item)
	if len(searcher.searchQueries) != first {
		t.Errorf("repeat run issued %d extra searches, want 0", len(searcher.searchQueries)-first)
	}
	if cache.Len() != first {
		t.Errorf("cache holds %d entries, want %d negative entries", cache.Len(), first)
	}
}

func TestCascadeMemoizedHitShortCircuits(t *testing.T) {
	searcher := &fakeSearcher{}
	cache := NewCache()
	cache.Put("Heat 1995", media.TypeMovie, Resolution{
		Rating:      media.Float(8.3),
		Title:       "Heat",
		MatchedType: media.TypeMovie,
	})
	cascade := NewCascade(searcher, newTestResolver(), cache, 8, nil)

	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Heat", Year: 1995}
	got := cascade.FindRating(context.Background(), item)

	if got.Rating == nil || *got.Rating != 8.3 {
		t.Fatalf("FindRating = %+v, want cached rating 8.3", got)
	}
	if len(searcher.searchQueries) != 0 {
		t.Errorf("cached hit still issued %d searches", len(searcher.searchQueries))
	}
}

func TestCascadeSearchErrorDegradesToNoData(t *testing.T) {
	searcher := &fakeSearcher{searchErr: errors.New("connect: connection refused")}
	cascade := newTestCascade(searcher)

	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Anora", Year: 2024}
	got := cascade.FindRating(context.Background(), item)

	if got.Found() {
		t.Errorf("FindRating = %+v, want empty resolution on transport failure", got)
	}
}

func TestCascadeFetchesDetailForBareListing(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]Candidate{
			"Conclave 2024": {
				{Title: "Conclave", Type: media.TypeUnknown, Year: 2024, URL: "/film9.html"},
			},
		},
		details: map[string]Candidate{
			"/film9.html": {Title: "Conclave", Type: media.TypeMovie, Year: 2024, Rating: media.Float(7.0)},
		},
	}
	cascade := newTestCascade(searcher)

	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Conclave", Year: 2024}
	got := cascade.FindRating(context.Background(), item)

	if len(searcher.detailURLs) != 1 || searcher.detailURLs[0] != "/film9.html" {
		t.Fatalf("detail fetches = %v, want [/film9.html]", searcher.detailURLs)
	}
	if got.Rating == nil || *got.Rating != 7.0 {
		t.Errorf("FindRating rating = %v, want 7.0 from detail page", got.Rating)
	}
	if got.MatchedType != media.TypeMovie {
		t.Errorf("MatchedType = %q, want movie from detail page", got.MatchedType)
	}
}

func TestCascadeDetailErrorKeepsListing(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]Candidate{
			"Conclave 2024": {
				{Title: "Conclave", Type: media.TypeMovie, Year: 2024, URL: "/film9.html"},
			},
		},
		detailErr: errors.New("read: timeout"),
	}
	cascade := newTestCascade(searcher)

	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Conclave", Year: 2024}
	got := cascade.FindRating(context.Background(), item)

	if got.Title != "Conclave" || got.URL != "/film9.html" {
		t.Errorf("FindRating = %+v, want listing data kept on detail failure", got)
	}
	if got.Rating != nil {
		t.Errorf("rating = %v, want nil when detail fetch fails", got.Rating)
	}
}

func TestCascadeTruncatesCandidateList(t *testing.T) {
	// 10 results for the first query; only the first 2 may be scored.
	results := make([]Candidate, 10)
	for i := range results {
		results[i] = Candidate{Title: "Wrong Answer", Type: media.TypeMovie, Year: 2024}
	}
	results[5] = Candidate{Title: "Mickey 17", Type: media.TypeMovie, Year: 2024, Rating: media.Float(6.9)}
	searcher := &fakeSearcher{
		results: map[string][]Candidate{"Mickey 17 2024": results},
	}
	cascade := NewCascade(searcher, newTestResolver(), NewCache(), 2, nil)

	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Mickey 17", Year: 2024}
	got := cascade.FindRating(context.Background(), item)

	if got.Rating != nil {
		t.Errorf("FindRating = %+v; the good candidate past the cap must not be scored", got)
	}
}
