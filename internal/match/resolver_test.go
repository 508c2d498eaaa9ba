package match

import (
	"testing"

	"reelrank/internal/media"
)

func newTestResolver() *Resolver {
	return NewResolver(DefaultResolverConfig(), nil)
}

func TestResolveHardRejectsTypeMismatch(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Fargo", Year: 1996}
	candidates := []Candidate{
		// Identical title, but a known series must never match a movie.
		{Title: "Fargo", Type: media.TypeSeries, Year: 1996, Rating: media.Float(8.6), URL: "/film1.html"},
	}
	if got := newTestResolver().Resolve(item, candidates); got != nil {
		t.Errorf("Resolve selected type-mismatched candidate %q", got.Title)
	}
}

func TestResolveUnknownTypeNotRejected(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Fargo", Year: 1996}
	candidates := []Candidate{
		{Title: "Fargo", Type: media.TypeUnknown, Year: 1996, Rating: media.Float(8.1)},
	}
	got := newTestResolver().Resolve(item, candidates)
	if got == nil {
		t.Fatal("unknown candidate type must not trigger the type hard-reject")
	}
}

func TestResolveHardRejectsYearGap(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Suspiria", Year: 2018}
	candidates := []Candidate{
		{Title: "Suspiria", Type: media.TypeMovie, Year: 1977, Rating: media.Float(7.9)},
	}
	if got := newTestResolver().Resolve(item, candidates); got != nil {
		t.Errorf("Resolve selected candidate with year gap: %q (%d)", got.Title, got.Year)
	}
}

func TestResolveYearWithinToleranceSurvives(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "The Lighthouse", Year: 2019}
	candidates := []Candidate{
		{Title: "The Lighthouse", Type: media.TypeMovie, Year: 2020},
	}
	if got := newTestResolver().Resolve(item, candidates); got == nil {
		t.Error("off-by-one year should not hard-reject")
	}
}

func TestResolveSimilarityFloor(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Oppenheimer", Year: 2023}
	candidates := []Candidate{
		// Best of a bad lot: barely related title must still be refused.
		{Title: "Barbie the Album Behind the Scenes", Type: media.TypeMovie, Year: 2023, Rating: media.Float(6.0), URL: "/x"},
	}
	if got := newTestResolver().Resolve(item, candidates); got != nil {
		t.Errorf("Resolve accepted %q below similarity floor", got.Title)
	}
}

func TestResolveYearBonusDominates(t *testing.T) {
	// Localized search hits share only one token with the target, so this
	// runs with a loosened floor; the point is that the year-exact bonus
	// picks the 2024 release over the near-title 1984 one.
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Dune", Year: 2024}
	candidates := []Candidate{
		{Title: "Dune: Parte Dos", Type: media.TypeMovie, Year: 2024, Rating: media.Float(7.8)},
		{Title: "Duna 1984", Type: media.TypeMovie, Year: 1984, Rating: media.Float(6.5)},
	}
	resolver := NewResolver(ResolverConfig{MinSimilarity: 0.3, YearTolerance: 1}, nil)
	got := resolver.Resolve(item, candidates)
	if got == nil {
		t.Fatal("Resolve returned nil, want the 2024 candidate")
	}
	if got.Year != 2024 {
		t.Errorf("Resolve selected year %d, want 2024", got.Year)
	}
	if got.Rating == nil || *got.Rating != 7.8 {
		t.Errorf("Resolve rating = %v, want 7.8", got.Rating)
	}
}

func TestResolveExactTitleBonus(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitlePrimary: "Heat", Year: 1995}
	candidates := []Candidate{
		{Title: "Heat 2", Type: media.TypeMovie, Year: 1995},
		{Title: "Heat", Type: media.TypeMovie, Year: 1995},
	}
	got := newTestResolver().Resolve(item, candidates)
	if got == nil || got.Title != "Heat" {
		t.Errorf("Resolve = %+v, want exact-title candidate", got)
	}
}

func TestResolveFallsBackToOriginalTitle(t *testing.T) {
	item := media.Item{Type: media.TypeMovie, TitleOriginal: "La Haine", Year: 1995}
	candidates := []Candidate{
		{Title: "La Haine", Type: media.TypeMovie, Year: 1995},
	}
	if got := newTestResolver().Resolve(item, candidates); got == nil {
		t.Error("Resolve should match against the original title when primary is absent")
	}
}

func TestResolveEmptyInputs(t *testing.T) {
	resolver := newTestResolver()
	if got := resolver.Resolve(media.Item{}, []Candidate{{Title: "x"}}); got != nil {
		t.Error("item without any title must resolve to nil")
	}
	if got := resolver.Resolve(media.Item{TitlePrimary: "Dune"}, nil); got != nil {
		t.Error("empty candidate list must resolve to nil")
	}
}
