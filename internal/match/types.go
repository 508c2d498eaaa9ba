package match

import (
	"context"

	"reelrank/internal/media"
)

// Candidate is one external search hit for a query. Produced and discarded
// within a single resolution call. Type and Year come from best-effort
// inference over page content and are not guaranteed accurate.
type Candidate struct {
	Title  string
	Type   media.Type
	Year   int
	Rating *float64
	URL    string
}

// Resolution is the outcome of resolving one item against the scraped
// source. The zero value means "nothing found".
type Resolution struct {
	Rating      *float64
	Title       string
	URL         string
	MatchedType media.Type
}

// Found reports whether the resolution carries any usable data.
func (r Resolution) Found() bool {
	return r.Rating != nil || r.Title != ""
}

// Searcher is the candidate-search collaborator. Implementations return an
// empty slice (not an error) for "no results"; errors are reserved for
// transport failures, which the cascade degrades to "no data".
type Searcher interface {
	Search(ctx context.Context, query string, mediaType media.Type) ([]Candidate, error)
	Detail(ctx context.Context, url string) (Candidate, error)
}
