package filmaffinity

import (
	"regexp"
	"strconv"
	"strings"

	"reelrank/internal/media"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// seriesMarkers are the parenthetical suffixes FilmAffinity appends to
// non-film entries, in the site languages we query.
var seriesMarkers = []string{
	"(serie de tv",
	"(tv series",
	"(miniserie de tv",
	"(tv miniseries",
	"(mini-series",
}

// parseRating converts a displayed rating like "7,8" or "7.8" to a value on
// the 0-10 scale. Returns nil for empty, unparsable, or out-of-range text.
func parseRating(text string) *float64 {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if text == "" {
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value < 0 || value > 10 {
		return nil
	}
	return media.Float(value)
}

// extractYear pulls the first plausible release year out of free text.
// Returns 0 when none is found.
func extractYear(text string) int {
	matched := yearPattern.FindString(text)
	if matched == "" {
		return 0
	}
	year, err := strconv.Atoi(matched)
	if err != nil {
		return 0
	}
	return year
}

// inferType classifies an entry from its displayed title text. This is a
// best-effort heuristic over page content: a missing marker means UNKNOWN,
// never MOVIE, so the resolver does not reject films the site labels
// inconsistently.
func inferType(text string) media.Type {
	lowered := strings.ToLower(text)
	for _, marker := range seriesMarkers {
		if strings.Contains(lowered, marker) {
			return media.TypeSeries
		}
	}
	return media.TypeUnknown
}

// stripTypeMarker removes the parenthetical type suffix from a displayed
// title so similarity is computed on the title proper.
func stripTypeMarker(title string) string {
	if idx := strings.Index(title, "("); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return strings.TrimSpace(title)
}
