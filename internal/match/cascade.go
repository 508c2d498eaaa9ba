package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reelrank/internal/logging"
	"reelrank/internal/media"
)

// Cascade drives the resolver across an ordered list of alternate queries
// for an item, stopping at the first query that yields a usable result.
type Cascade struct {
	searcher      Searcher
	resolver      *Resolver
	cache         *Cache
	maxCandidates int
	logger        *slog.Logger
}

// NewCascade creates a cascade. The cache must be scoped to one run.
func NewCascade(searcher Searcher, resolver *Resolver, cache *Cache, maxCandidates int, logger *slog.Logger) *Cascade {
	if cache == nil {
		cache = NewCache()
	}
	if maxCandidates < 1 {
		maxCandidates = 8
	}
	return &Cascade{
		searcher:      searcher,
		resolver:      resolver,
		cache:         cache,
		maxCandidates: maxCandidates,
		logger:        logging.NewComponentLogger(logger, "cascade"),
	}
}

// FindRating resolves the scraped rating for an item. Every query outcome,
// including negatives, is memoized before moving on. Returns the zero
// Resolution when every query is exhausted without a usable result.
func (c *Cascade) FindRating(ctx context.Context, item media.Item) Resolution {
	for _, query := range buildQueries(item) {
		if cached, ok := c.cache.Get(query, item.Type); ok {
			if cached.Found() {
				return cached
			}
			continue
		}

		resolution := c.resolveQuery(ctx, item, query)
		c.cache.Put(query, item.Type, resolution)
		if resolution.Found() {
			return resolution
		}
	}
	return Resolution{MatchedType: media.TypeUnknown}
}

func (c *Cascade) resolveQuery(ctx context.Context, item media.Item, query string) Resolution {
	candidates, err := c.searcher.Search(ctx, query, item.Type)
	if err != nil {
		// A failed or slow search degrades to "no data for this query".
		c.logger.Warn("candidate search failed",
			logging.String("query", query),
			logging.Error(err))
		return Resolution{MatchedType: media.TypeUnknown}
	}
	if len(candidates) > c.maxCandidates {
		candidates = candidates[:c.maxCandidates]
	}

	winner := c.resolver.Resolve(item, candidates)
	if winner == nil {
		return Resolution{MatchedType: media.TypeUnknown}
	}

	// Bare search listings carry no rating; the detail page usually does.
	if winner.Rating == nil && winner.URL != "" {
		if detail, err := c.searcher.Detail(ctx, winner.URL); err == nil {
			if detail.Rating != nil {
				winner.Rating = detail.Rating
			}
			if detail.Title != "" {
				winner.Title = detail.Title
			}
			if detail.Type != media.TypeUnknown && detail.Type != "" {
				winner.Type = detail.Type
			}
		} else {
			c.logger.Warn("candidate detail fetch failed",
				logging.String("url", winner.URL),
				logging.Error(err))
		}
	}

	matchedType := winner.Type
	if matchedType == "" {
		matchedType = media.TypeUnknown
	}
	return Resolution{
		Rating:      winner.Rating,
		Title:       winner.Title,
		URL:         winner.URL,
		MatchedType: matchedType,
	}
}

// buildQueries returns the cascade's query list in confidence order:
// localized title plus year disambiguates best; a bare original title is
// the weakest signal and tried last. Null/empty entries are skipped.
func buildQueries(item media.Item) []string {
	primary := strings.TrimSpace(item.TitlePrimary)
	original := strings.TrimSpace(item.TitleOriginal)

	queries := make([]string, 0, 4)
	add := func(query string) {
		if query == "" {
			return
		}
		for _, existing := range queries {
			if existing == query {
				return
			}
		}
		queries = append(queries, query)
	}

	if primary != "" && item.Year != 0 {
		add(fmt.Sprintf("%s %d", primary, item.Year))
	}
	add(primary)
	if original != "" && item.Year != 0 {
		add(fmt.Sprintf("%s %d", original, item.Year))
	}
	add(original)
	return queries
}
