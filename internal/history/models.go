package history

import (
	"time"

	"reelrank/internal/media"
)

// Run is one recorded ranking invocation.
type Run struct {
	ID         string
	MediaType  media.Type
	StartedAt  time.Time
	FinishedAt *time.Time
	ItemCount  int
}

// RankedRecord is one stored ranking row.
type RankedRecord struct {
	RunID        string
	Rank         int
	TMDBID       int64
	IMDBID       string
	Title        string
	Year         int
	MediaType    media.Type
	Composite    *float64
	Coverage     int
	Signals      media.Signals
	MatchedTitle string
	MatchedURL   string
}
