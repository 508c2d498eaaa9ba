package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Ratings carries every numeric signal one OMDb lookup can produce. Each
// field is nil when the payload had no usable value for it.
type Ratings struct {
	IMDB            *float64 // 0-10
	CriticPercent   *float64 // Rotten Tomatoes critics, 0-100
	AudiencePercent *float64 // Rotten Tomatoes audience, 0-100
	Metacritic      *float64 // 0-100
}

// payload models the subset of the OMDb response we read. OMDb reports
// missing values as the literal string "N/A".
type payload struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	IMDBRating string `json:"imdbRating"`
	Metascore  string `json:"Metascore"`
	Ratings    []struct {
		Source string `json:"Source"`
		Value  string `json:"Value"`
	} `json:"Ratings"`
	TomatoUserMeter string `json:"tomatoUserMeter"`
}

// Source defines the numeric-rating lookup the pipeline depends on.
type Source interface {
	Rating(ctx context.Context, imdbID string) (*Ratings, error)
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Source = (*Client)(nil)

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

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Rating looks up the ratings for one IMDb ID. An empty ID short-circuits
// to nil without a network call; a not-found or malformed response also
// yields nil rather than an error.
func (c *Client) Rating(ctx context.Context, imdbID string) (*Ratings, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("tomatoes", "true")

	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb returned %d", resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// Malformed payload degrades to "no data" per the boundary contract.
		return nil, nil
	}
	if !strings.EqualFold(body.Response, "True") {
		return nil, nil
	}

	return body.ratings(), nil
}

func (p *payload) ratings() *Ratings {
	out := &Ratings{
		IMDB:            parseScale10(p.IMDBRating),
		Metacritic:      parsePercentValue(p.Metascore),
		AudiencePercent: parsePercentValue(p.TomatoUserMeter),
	}
	for _, entry := range p.Ratings {
		switch entry.Source {
		case "Rotten Tomatoes":
			out.CriticPercent = parsePercentValue(entry.Value)
		case "Metacritic":
			if out.Metacritic == nil {
				out.Metacritic = parsePercentValue(entry.Value)
			}
		}
	}
	if out.IMDB == nil && out.CriticPercent == nil && out.AudiencePercent == nil && out.Metacritic == nil {
		return nil
	}
	return out
}

// parseScale10 parses values like "8.5" or "8.5/10".
func parseScale10(value string) *float64 {
	value = strings.TrimSpace(strings.TrimSuffix(value, "/10"))
	if value == "" || value == "N/A" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 10 {
		return nil
	}
	return &parsed
}

// parsePercentValue parses values like "92%", "79/100", or "79".
func parsePercentValue(value string) *float64 {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "%")
	value = strings.TrimSuffix(value, "/100")
	if value == "" || value == "N/A" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 100 {
		return nil
	}
	return &parsed
}
