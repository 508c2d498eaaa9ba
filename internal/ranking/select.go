package ranking

import (
	"sort"

	"reelrank/internal/media"
	"reelrank/internal/scoring"
)

// SortScore returns the value an item is ordered by. The fallback order is
// evaluated top to bottom:
//
//  1. composite score
//  2. primary numeric API rating
//  3. scraped rating
//  4. zero
func SortScore(enriched media.Enriched) float64 {
	switch {
	case enriched.Composite != nil:
		return *enriched.Composite
	case enriched.Signals.NumericAPI != nil:
		return *enriched.Signals.NumericAPI
	case enriched.Signals.Scraped != nil:
		return *enriched.Signals.Scraped
	default:
		return 0
	}
}

// SelectTop filters to admissible items, sorts descending by SortScore,
// truncates to n, and assigns dense ranks starting at 1. The sort is
// stable so repeated runs over identical input produce identical order.
func SelectTop(items []media.Enriched, n int) []media.Ranked {
	admissible := make([]media.Enriched, 0, len(items))
	for _, item := range items {
		if scoring.Admissible(item) {
			admissible = append(admissible, item)
		}
	}

	sort.SliceStable(admissible, func(i, j int) bool {
		return SortScore(admissible[i]) > SortScore(admissible[j])
	})

	if n >= 0 && len(admissible) > n {
		admissible = admissible[:n]
	}

	ranked := make([]media.Ranked, 0, len(admissible))
	for idx, item := range admissible {
		ranked = append(ranked, media.Ranked{Enriched: item, Rank: idx + 1})
	}
	return ranked
}
