package config

const (
	defaultDataDir             = "~/.local/share/reelrank"
	defaultLogDir              = "~/.local/share/reelrank/logs"
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBLanguage        = "en-US"
	defaultTMDBRegion          = "US"
	defaultOMDBBaseURL         = "https://www.omdbapi.com"
	defaultFilmAffinityBaseURL = "https://www.filmaffinity.com"
	defaultThrottleMS          = 300
	defaultRequestTimeout      = 15
	defaultMinSimilarity       = 0.45
	defaultYearTolerance       = 1
	defaultMaxCandidates       = 8
	defaultTopN                = 5
	defaultSeriesWindowDays    = 14
	defaultDiscoverDays        = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
			Region:   defaultTMDBRegion,
		},
		OMDB: OMDB{
			BaseURL: defaultOMDBBaseURL,
		},
		FilmAffinity: FilmAffinity{
			BaseURL:        defaultFilmAffinityBaseURL,
			ThrottleMS:     defaultThrottleMS,
			RequestTimeout: defaultRequestTimeout,
		},
		Matching: Matching{
			MinSimilarity: defaultMinSimilarity,
			YearTolerance: defaultYearTolerance,
			MaxCandidates: defaultMaxCandidates,
		},
		Scoring: Scoring{
			Scraped:         0.25,
			NumericAPI:      0.25,
			CriticPercent:   0.125,
			AudiencePercent: 0.125,
			CriticPercent2:  0.125,
			UserScore10:     0.125,
		},
		Ranking: Ranking{
			TopN:             defaultTopN,
			SeriesWindowDays: defaultSeriesWindowDays,
			DiscoverDays:     defaultDiscoverDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
