package scoring

import "reelrank/internal/media"

// Coverage counts how many of the six signal slots are present (0..6).
func Coverage(signals media.Signals) int {
	count := 0
	for _, slot := range signals.Slots() {
		if slot != nil {
			count++
		}
	}
	return count
}

// Admissible reports whether an item may be ranked at all. An item whose
// composite would derive from zero real signals must never be exposed,
// even when a display-only fallback score exists elsewhere.
func Admissible(enriched media.Enriched) bool {
	return Coverage(enriched.Signals) > 0
}
