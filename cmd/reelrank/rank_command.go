package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reelrank/internal/config"
	"reelrank/internal/export"
	"reelrank/internal/history"
	"reelrank/internal/logging"
	"reelrank/internal/match"
	"reelrank/internal/media"
	"reelrank/internal/pipeline"
	"reelrank/internal/services"
	"reelrank/internal/services/filmaffinity"
	"reelrank/internal/services/omdb"
	"reelrank/internal/services/tmdb"
)

const apiTimeout = 15 * time.Second

func newRankCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string
	var topFlag int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Discover recent releases, gather ratings, and rank them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mediaTypes, err := parseTypeFlag(typeFlag)
			if err != nil {
				return err
			}
			if topFlag > 0 {
				cfg.Ranking.TopN = topFlag
			}
			return runRank(cmd, cfg, mediaTypes, jsonFlag)
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "all", "Media type to rank: movie, series, or all")
	cmd.Flags().IntVarP(&topFlag, "top", "n", 0, "Override the number of items to select")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print results as JSON instead of a table")
	return cmd
}

func parseTypeFlag(value string) ([]media.Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies", "film":
		return []media.Type{media.TypeMovie}, nil
	case "series", "tv", "shows":
		return []media.Type{media.TypeSeries}, nil
	case "all", "":
		return []media.Type{media.TypeMovie, media.TypeSeries}, nil
	default:
		return nil, fmt.Errorf("unknown media type %q (want movie, series, or all)", value)
	}
}

func runRank(cmd *cobra.Command, cfg *config.Config, mediaTypes []media.Type, asJSON bool) error {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "reelrank.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return errors.New("another reelrank run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	catalog, err := tmdb.New(
		cfg.TMDB.APIKey,
		cfg.TMDB.BaseURL,
		cfg.TMDB.Language,
		cfg.TMDB.Region,
		tmdb.WithHTTPClient(services.NewAPIClient(apiTimeout)),
	)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "tmdb", "new", "create catalog client", err)
	}

	var ratings omdb.Source
	if strings.TrimSpace(cfg.OMDB.APIKey) != "" {
		client, err := omdb.New(
			cfg.OMDB.APIKey,
			cfg.OMDB.BaseURL,
			omdb.WithHTTPClient(services.NewAPIClient(apiTimeout)),
		)
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "omdb", "new", "create rating client", err)
		}
		ratings = client
	} else {
		logger.Info("omdb api key not set, numeric api signals disabled")
	}

	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	for _, mediaType := range mediaTypes {
		if err := rankOne(cmd, cfg, logger, catalog, ratings, store, mediaType, asJSON); err != nil {
			return err
		}
	}
	return nil
}

func rankOne(
	cmd *cobra.Command,
	cfg *config.Config,
	logger *slog.Logger,
	catalog tmdb.Catalog,
	ratings omdb.Source,
	store *history.Store,
	mediaType media.Type,
	asJSON bool,
) error {
	ctx := cmd.Context()

	scraper, err := filmaffinity.New(
		cfg.FilmAffinity.BaseURL,
		time.Duration(cfg.FilmAffinity.ThrottleMS)*time.Millisecond,
		time.Duration(cfg.FilmAffinity.RequestTimeout)*time.Second,
		logger,
	)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "filmaffinity", "new", "create scraping client", err)
	}

	resolver := match.NewResolver(match.ResolverConfig{
		MinSimilarity: cfg.Matching.MinSimilarity,
		YearTolerance: cfg.Matching.YearTolerance,
	}, logger)
	// Fresh cache per run: memoized outcomes must not leak across runs.
	cascade := match.NewCascade(scraper, resolver, match.NewCache(), cfg.Matching.MaxCandidates, logger)

	run, err := store.BeginRun(ctx, mediaType)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}

	p := pipeline.New(cfg, catalog, ratings, cascade, logger)
	result, err := p.Run(ctx, mediaType)
	if err != nil {
		return err
	}

	if err := store.SaveRanking(ctx, run.ID, result.Ranked); err != nil {
		logger.Warn("save ranking failed", logging.Error(err))
	}
	if err := store.FinishRun(ctx, run.ID, len(result.Ranked)); err != nil {
		logger.Warn("finish run failed", logging.Error(err))
	}

	exportPath, err := export.Write(cfg.Paths.DataDir, mediaType, run.ID, result.Ranked)
	if err != nil {
		logger.Warn("write export failed", logging.Error(err))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return printRankingJSON(out, mediaType, run.ID, result.Ranked)
	}

	fmt.Fprintf(out, "\nTop %s (%d of %d discovered, window-eligible %d)\n",
		pluralType(mediaType), len(result.Ranked), result.Discovered, result.Eligible)
	fmt.Fprintln(out, renderRankingTable(result.Ranked, isTerminal(out)))
	if exportPath != "" {
		fmt.Fprintf(out, "Exported to %s\n", exportPath)
	}
	return nil
}

func printRankingJSON(out io.Writer, mediaType media.Type, runID string, items []media.Ranked) error {
	doc := struct {
		MediaType string         `json:"media_type"`
		RunID     string         `json:"run_id"`
		Items     []media.Ranked `json:"items"`
	}{
		MediaType: string(mediaType),
		RunID:     runID,
		Items:     items,
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func renderRankingTable(items []media.Ranked, styled bool) string {
	headers := []string{"#", "Title", "Year", "Score", "Coverage", "Platforms"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Rank),
			item.Title(),
			formatYear(item.Year),
			formatScore(item.Composite),
			fmt.Sprintf("%d/6", item.Coverage),
			strings.Join(item.Platforms, ", "),
		})
	}
	return renderTable(headers, rows, aligns, styled)
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *score)
}

func formatYear(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", year)
}

func pluralType(mediaType media.Type) string {
	if mediaType == media.TypeSeries {
		return "series"
	}
	return "movies"
}
