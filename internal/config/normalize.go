package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeOMDB()
	c.normalizeFilmAffinity()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if strings.TrimSpace(c.TMDB.Language) == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeOMDB() {
	if c.OMDB.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.OMDB.BaseURL), "/")
	if c.OMDB.BaseURL == "" {
		c.OMDB.BaseURL = defaultOMDBBaseURL
	}
}

func (c *Config) normalizeFilmAffinity() {
	c.FilmAffinity.BaseURL = strings.TrimRight(strings.TrimSpace(c.FilmAffinity.BaseURL), "/")
	if c.FilmAffinity.BaseURL == "" {
		c.FilmAffinity.BaseURL = defaultFilmAffinityBaseURL
	}
	if c.FilmAffinity.ThrottleMS <= 0 {
		c.FilmAffinity.ThrottleMS = defaultThrottleMS
	}
	if c.FilmAffinity.RequestTimeout <= 0 {
		c.FilmAffinity.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
