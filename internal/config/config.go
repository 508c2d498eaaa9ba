package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// TMDB contains configuration for The Movie Database API (the metadata
// catalog and discovery source).
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
	Region   string `toml:"region"`
}

// OMDB contains configuration for the numeric-rating API. An empty API key
// disables the source; items then rank on their remaining signals.
type OMDB struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// FilmAffinity contains configuration for the scraped rating site.
type FilmAffinity struct {
	BaseURL        string `toml:"base_url"`
	ThrottleMS     int    `toml:"throttle_ms"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Matching contains the candidate-resolution thresholds. Defaults follow
// the most defensive variant: hard type reject with a 0.45 floor.
type Matching struct {
	MinSimilarity float64 `toml:"min_similarity"`
	YearTolerance int     `toml:"year_tolerance"`
	MaxCandidates int     `toml:"max_candidates"`
}

// Scoring contains the per-signal composite weights. They should sum to 1.
type Scoring struct {
	Scraped         float64 `toml:"scraped"`
	NumericAPI      float64 `toml:"numeric_api"`
	CriticPercent   float64 `toml:"critic_percent"`
	AudiencePercent float64 `toml:"audience_percent"`
	CriticPercent2  float64 `toml:"critic_percent2"`
	UserScore10     float64 `toml:"user_score_10"`
}

// Ranking contains admission and selection settings.
type Ranking struct {
	TopN             int `toml:"top_n"`
	SeriesWindowDays int `toml:"series_window_days"`
	DiscoverDays     int `toml:"discover_days"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelrank.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - TMDB: catalog discovery and item details
//   - OMDB: numeric-rating API lookup
//   - FilmAffinity: scraped rating site and its self-throttle
//   - Matching: candidate resolver thresholds
//   - Scoring: composite score weights
//   - Ranking: top-N size and recency windows
//   - Logging: log format and level
type Config struct {
	Paths        Paths        `toml:"paths"`
	TMDB         TMDB         `toml:"tmdb"`
	OMDB         OMDB         `toml:"omdb"`
	FilmAffinity FilmAffinity `toml:"filmaffinity"`
	Matching     Matching     `toml:"matching"`
	Scoring      Scoring      `toml:"scoring"`
	Ranking      Ranking      `toml:"ranking"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelrank/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelrank.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
