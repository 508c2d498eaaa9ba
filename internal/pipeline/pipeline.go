package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"reelrank/internal/config"
	"reelrank/internal/logging"
	"reelrank/internal/match"
	"reelrank/internal/media"
	"reelrank/internal/ranking"
	"reelrank/internal/scoring"
	"reelrank/internal/services/omdb"
	"reelrank/internal/services/tmdb"
)

// ScrapedFinder resolves the scraped rating for one item. Satisfied by
// match.Cascade; a nil finder disables the signal.
type ScrapedFinder interface {
	FindRating(ctx context.Context, item media.Item) match.Resolution
}

// Result summarizes one completed run.
type Result struct {
	MediaType  media.Type
	Discovered int
	Eligible   int
	Ranked     []media.Ranked
}

// Pipeline wires the boundary collaborators to the ranking core.
type Pipeline struct {
	cfg     *config.Config
	catalog tmdb.Catalog
	ratings omdb.Source
	scraped ScrapedFinder
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a pipeline. ratings and scraped may be nil; the matching
// signals are then simply absent and items rank on what remains.
func New(cfg *config.Config, catalog tmdb.Catalog, ratings omdb.Source, scraped ScrapedFinder, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		catalog: catalog,
		ratings: ratings,
		scraped: scraped,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full ranking pass for the given media type. Discovery
// failure is the only error: without a candidate list there is nothing to
// rank. Everything downstream degrades per item or per signal.
func (p *Pipeline) Run(ctx context.Context, mediaType media.Type) (*Result, error) {
	now := p.now().UTC()
	since := now.AddDate(0, 0, -p.cfg.Ranking.DiscoverDays)

	results, err := p.discover(ctx, mediaType, since, now)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", mediaType, err)
	}

	p.logger.Info("discovery complete",
		logging.String("media_type", string(mediaType)),
		logging.Int("results", len(results)))

	enriched := make([]media.Enriched, 0, len(results))
	eligible := 0
	for _, result := range results {
		item, ok := p.loadItem(ctx, mediaType, result)
		if !ok {
			continue
		}

		// New seasons of old shows surface in discovery; only series that
		// actually premiered inside the recency window are ranked.
		if mediaType == media.TypeSeries &&
			!ranking.InWindow(item.ReleaseDate, p.cfg.Ranking.SeriesWindowDays, now) {
			p.logger.Debug("series outside premiere window",
				logging.String("title", item.Title()),
				logging.String("first_air_date", item.ReleaseDate))
			continue
		}
		eligible++

		enriched = append(enriched, p.enrich(ctx, item, result))
	}

	ranked := ranking.SelectTop(enriched, p.cfg.Ranking.TopN)
	p.logger.Info("run complete",
		logging.String("media_type", string(mediaType)),
		logging.Int("discovered", len(results)),
		logging.Int("eligible", eligible),
		logging.Int("ranked", len(ranked)))

	return &Result{
		MediaType:  mediaType,
		Discovered: len(results),
		Eligible:   eligible,
		Ranked:     ranked,
	}, nil
}

func (p *Pipeline) discover(ctx context.Context, mediaType media.Type, since, until time.Time) ([]tmdb.Result, error) {
	var (
		resp *tmdb.Response
		err  error
	)
	switch mediaType {
	case media.TypeSeries:
		resp, err = p.catalog.DiscoverTV(ctx, since, until)
	default:
		resp, err = p.catalog.DiscoverMovies(ctx, since, until)
	}
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// loadItem fetches catalog details and builds the canonical item. A failed
// details call skips just this item.
func (p *Pipeline) loadItem(ctx context.Context, mediaType media.Type, result tmdb.Result) (media.Item, bool) {
	var (
		details *tmdb.Details
		err     error
	)
	switch mediaType {
	case media.TypeSeries:
		details, err = p.catalog.TVDetails(ctx, result.ID)
	default:
		details, err = p.catalog.MovieDetails(ctx, result.ID)
	}
	if err != nil {
		p.logger.Warn("details lookup failed, skipping item",
			logging.Int64("tmdb_id", result.ID),
			logging.Error(err))
		return media.Item{}, false
	}

	genres := make([]string, 0, len(details.Genres))
	for _, genre := range details.Genres {
		genres = append(genres, genre.Name)
	}

	item := media.Item{
		Type:          mediaType,
		TMDBID:        details.ID,
		IMDBID:        details.ExternalIDs.IMDBID,
		TitlePrimary:  details.BestTitle(),
		TitleOriginal: details.BestOriginalTitle(),
		ReleaseDate:   details.BestDate(),
		Year:          yearOf(details.BestDate()),
		Platforms:     details.Providers(p.cfg.TMDB.Region),
		Genres:        genres,
	}
	return item, true
}

// enrich gathers every obtainable signal for one item and aggregates them.
func (p *Pipeline) enrich(ctx context.Context, item media.Item, result tmdb.Result) media.Enriched {
	enriched := media.Enriched{Item: item}

	if result.VoteCount > 0 && result.VoteAverage > 0 {
		enriched.Signals.UserScore10 = media.Float(result.VoteAverage)
	}

	if p.ratings != nil && item.IMDBID != "" {
		ratings, err := p.ratings.Rating(ctx, item.IMDBID)
		if err != nil {
			p.logger.Warn("rating lookup failed",
				logging.String("title", item.Title()),
				logging.String("imdb_id", item.IMDBID),
				logging.Error(err))
		} else if ratings != nil {
			enriched.Signals.NumericAPI = ratings.IMDB
			enriched.Signals.CriticPercent = ratings.CriticPercent
			enriched.Signals.AudiencePercent = ratings.AudiencePercent
			enriched.Signals.CriticPercent2 = ratings.Metacritic
		}
	}

	if p.scraped != nil {
		resolution := p.scraped.FindRating(ctx, item)
		if resolution.Rating != nil {
			enriched.Signals.Scraped = resolution.Rating
		}
		if resolution.Found() {
			enriched.MatchedTitle = resolution.Title
			enriched.MatchedURL = resolution.URL
		}
	}

	enriched.Composite = scoring.Aggregate(enriched.Signals, p.weights())
	enriched.Coverage = scoring.Coverage(enriched.Signals)
	return enriched
}

func (p *Pipeline) weights() scoring.Weights {
	s := p.cfg.Scoring
	if s.Scraped == 0 && s.NumericAPI == 0 && s.CriticPercent == 0 &&
		s.AudiencePercent == 0 && s.CriticPercent2 == 0 && s.UserScore10 == 0 {
		return scoring.DefaultWeights()
	}
	return scoring.Weights{
		Scraped:         s.Scraped,
		NumericAPI:      s.NumericAPI,
		CriticPercent:   s.CriticPercent,
		AudiencePercent: s.AudiencePercent,
		CriticPercent2:  s.CriticPercent2,
		UserScore10:     s.UserScore10,
	}
}

func yearOf(dateISO string) int {
	if len(dateISO) < 4 {
		return 0
	}
	year, err := strconv.Atoi(dateISO[:4])
	if err != nil {
		return 0
	}
	return year
}
