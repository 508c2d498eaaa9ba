package media

import "strings"

// Type identifies the media category of an item or search candidate.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
	// TypeUnknown marks candidates whose category could not be inferred.
	// An unknown type never participates in type-mismatch rejection.
	TypeUnknown Type = "unknown"
)

// ParseType maps free-form type labels to a Type, defaulting to unknown.
func ParseType(value string) Type {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "film":
		return TypeMovie
	case "series", "tv", "show", "tv series":
		return TypeSeries
	default:
		return TypeUnknown
	}
}

// Item is one canonical catalog record to be rated. It is created once per
// discovery cycle and not mutated; enrichment happens on Enriched copies.
type Item struct {
	Type          Type     `json:"type"`
	TMDBID        int64    `json:"tmdb_id,omitempty"`
	IMDBID        string   `json:"imdb_id,omitempty"`
	TitlePrimary  string   `json:"title"`
	TitleOriginal string   `json:"original_title,omitempty"`
	Year          int      `json:"year,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"` // YYYY-MM-DD
	Platforms     []string `json:"platforms,omitempty"`
	Genres        []string `json:"genres,omitempty"`
}

// Title returns the preferred title for matching: the localized primary
// title with the original title as fallback.
func (i Item) Title() string {
	if strings.TrimSpace(i.TitlePrimary) != "" {
		return i.TitlePrimary
	}
	return i.TitleOriginal
}

// Enriched is an Item plus everything learned about its reception during
// one run. Populated once, in resolve -> aggregate -> gate order.
type Enriched struct {
	Item
	Signals      Signals  `json:"signals"`
	Composite    *float64 `json:"composite_score,omitempty"`
	Coverage     int      `json:"coverage"`
	MatchedTitle string   `json:"matched_title,omitempty"`
	MatchedURL   string   `json:"matched_url,omitempty"`
}

// Ranked is the terminal form written to the output boundary.
type Ranked struct {
	Enriched
	Rank int `json:"rank"`
}

// Float returns a pointer to v, for populating optional signal slots.
func Float(v float64) *float64 {
	return &v
}
