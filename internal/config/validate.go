package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelrank/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'reelrank config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MinSimilarity < 0 || c.Matching.MinSimilarity > 1 {
		return errors.New("matching.min_similarity must be between 0 and 1")
	}
	if c.Matching.YearTolerance < 0 {
		return errors.New("matching.year_tolerance must not be negative")
	}
	if c.Matching.MaxCandidates < 1 {
		return errors.New("matching.max_candidates must be at least 1")
	}
	return nil
}

func (c *Config) validateScoring() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"scoring.scraped", c.Scoring.Scraped},
		{"scoring.numeric_api", c.Scoring.NumericAPI},
		{"scoring.critic_percent", c.Scoring.CriticPercent},
		{"scoring.audience_percent", c.Scoring.AudiencePercent},
		{"scoring.critic_percent2", c.Scoring.CriticPercent2},
		{"scoring.user_score_10", c.Scoring.UserScore10},
	}
	var sum float64
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%s must not be negative", w.name)
		}
		sum += w.value
	}
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

func (c *Config) validateRanking() error {
	if c.Ranking.TopN < 1 {
		return errors.New("ranking.top_n must be at least 1")
	}
	if c.Ranking.SeriesWindowDays < 0 {
		return errors.New("ranking.series_window_days must not be negative")
	}
	if c.Ranking.DiscoverDays < 1 {
		return errors.New("ranking.discover_days must be at least 1")
	}
	return nil
}
