package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result represents a single TMDB discover/search entry.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// Response models the TMDB paginated result payload.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is one TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ExternalIDs carries cross-catalog identifiers for an item.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// WatchProviders models the "watch/providers" appended response. Only the
// flat-rate (subscription) providers of the configured region are used.
type WatchProviders struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderName string `json:"provider_name"`
		} `json:"flatrate"`
	} `json:"results"`
}

// Details is the full item payload with appended external IDs and
// providers. Movie and TV payloads share this shape; TV uses Name and
// FirstAirDate.
type Details struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Name           string         `json:"name"`
	OriginalTitle  string         `json:"original_title"`
	OriginalName   string         `json:"original_name"`
	ReleaseDate    string         `json:"release_date"`
	FirstAirDate   string         `json:"first_air_date"`
	VoteAverage    float64        `json:"vote_average"`
	VoteCount      int64          `json:"vote_count"`
	Genres         []Genre        `json:"genres"`
	ExternalIDs    ExternalIDs    `json:"external_ids"`
	WatchProviders WatchProviders `json:"watch/providers"`
}

// BestTitle returns the localized title regardless of media type.
func (d *Details) BestTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// BestOriginalTitle returns the original-language title.
func (d *Details) BestOriginalTitle() string {
	if d.OriginalTitle != "" {
		return d.OriginalTitle
	}
	return d.OriginalName
}

// BestDate returns the release or first-air date.
func (d *Details) BestDate() string {
	if d.ReleaseDate != "" {
		return d.ReleaseDate
	}
	return d.FirstAirDate
}

// Providers lists the flat-rate provider names for the given region.
func (d *Details) Providers(region string) []string {
	entry, ok := d.WatchProviders.Results[strings.ToUpper(region)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(entry.Flatrate))
	for _, p := range entry.Flatrate {
		names = append(names, p.ProviderName)
	}
	return names
}

// Catalog defines the TMDB operations the pipeline depends on.
type Catalog interface {
	DiscoverMovies(ctx context.Context, since, until time.Time) (*Response, error)
	DiscoverTV(ctx context.Context, since, until time.Time) (*Response, error)
	MovieDetails(ctx context.Context, movieID int64) (*Details, error)
	TVDetails(ctx context.Context, showID int64) (*Details, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	region     string
	httpClient *http.Client
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language, region string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		region:     strings.ToUpper(strings.TrimSpace(region)),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

const dateLayout = "2006-01-02"

// DiscoverMovies lists movies released in the given date range, most
// popular first.
func (c *Client) DiscoverMovies(ctx context.Context, since, until time.Time) (*Response, error) {
	params := c.baseParams()
	params.Set("sort_by", "popularity.desc")
	params.Set("primary_release_date.gte", since.UTC().Format(dateLayout))
	params.Set("primary_release_date.lte", until.UTC().Format(dateLayout))
	if c.region != "" {
		params.Set("region", c.region)
	}

	var payload Response
	if err := c.get(ctx, "/discover/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DiscoverTV lists series that first aired in the given date range, most
// popular first.
func (c *Client) DiscoverTV(ctx context.Context, since, until time.Time) (*Response, error) {
	params := c.baseParams()
	params.Set("sort_by", "popularity.desc")
	params.Set("first_air_date.gte", since.UTC().Format(dateLayout))
	params.Set("first_air_date.lte", until.UTC().Format(dateLayout))

	var payload Response
	if err := c.get(ctx, "/discover/tv", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieDetails fetches a movie with external IDs and watch providers.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	params := c.baseParams()
	params.Set("append_to_response", "external_ids,watch/providers")

	var payload Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// TVDetails fetches a series with external IDs and watch providers.
func (c *Client) TVDetails(ctx context.Context, showID int64) (*Details, error) {
	params := c.baseParams()
	params.Set("append_to_response", "external_ids,watch/providers")

	var payload Details
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", showID), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
