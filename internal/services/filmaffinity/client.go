package filmaffinity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"reelrank/internal/logging"
	"reelrank/internal/match"
	"reelrank/internal/media"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/128.0"

// Client scrapes FilmAffinity. It implements match.Searcher so the query
// cascade can drive it without knowing which site backs it.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ match.Searcher = (*Client)(nil)

// New creates a scraping client. throttle is the minimum spacing between
// any two requests; every Search and Detail call waits its turn.
func New(baseURL string, throttle, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("filmaffinity base url required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse filmaffinity base url: %w", err)
	}
	if throttle <= 0 {
		throttle = 300 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(throttle), 1),
		logger:     logging.NewComponentLogger(logger, "filmaffinity"),
	}, nil
}

// Search runs a title query and returns the parsed result listings. A query
// that matches exactly one film redirects straight to its page; that case
// comes back as a single fully-populated candidate.
func (c *Client) Search(ctx context.Context, query string, _ media.Type) ([]match.Candidate, error) {
	endpoint := *c.baseURL
	endpoint.Path = "/es/search.php"
	endpoint.RawQuery = url.Values{
		"stype": []string{"title"},
		"stext": []string{query},
	}.Encode()

	doc, finalURL, err := c.fetchDocument(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	if doc.Find("#main-title").Length() > 0 {
		candidate := parseFilmPage(doc, finalURL)
		c.logger.Debug("search redirected to film page",
			logging.String("query", query),
			logging.String("title", candidate.Title))
		return []match.Candidate{candidate}, nil
	}
	return c.extractListings(doc), nil
}

// Detail fetches one film page and returns its full candidate record.
func (c *Client) Detail(ctx context.Context, pageURL string) (match.Candidate, error) {
	resolved, err := c.resolveURL(pageURL)
	if err != nil {
		return match.Candidate{}, err
	}
	doc, finalURL, err := c.fetchDocument(ctx, resolved)
	if err != nil {
		return match.Candidate{}, err
	}
	return parseFilmPage(doc, finalURL), nil
}

// extractListings parses the search result list. Listings carry a title,
// year, and page link; the rating column is present on some layouts only.
func (c *Client) extractListings(doc *goquery.Document) []match.Candidate {
	var candidates []match.Candidate
	doc.Find("div.se-it").Each(func(_ int, sel *goquery.Selection) {
		anchor := sel.Find(".mc-title a").First()
		rawTitle := strings.TrimSpace(anchor.Text())
		if rawTitle == "" {
			return
		}
		href, _ := anchor.Attr("href")

		candidate := match.Candidate{
			Title:  stripTypeMarker(rawTitle),
			Type:   inferType(rawTitle),
			Year:   extractYear(sel.Find(".ye-w").Text()),
			Rating: parseRating(sel.Find(".avgrat").Text()),
			URL:    href,
		}
		if candidate.Year == 0 {
			candidate.Year = extractYear(sel.Text())
		}
		candidates = append(candidates, candidate)
	})
	return candidates
}

// parseFilmPage parses a film detail page into a candidate.
func parseFilmPage(doc *goquery.Document, pageURL string) match.Candidate {
	title := strings.TrimSpace(doc.Find("#main-title span[itemprop='name']").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("#main-title").First().Text())
	}

	mediaType := inferType(doc.Find("#main-title").Text())
	if mediaType == media.TypeUnknown {
		// Series pages label themselves in the info block, not the title.
		mediaType = inferType(doc.Find(".movie-info").Text())
	}

	return match.Candidate{
		Title:  stripTypeMarker(title),
		Type:   mediaType,
		Year:   extractYear(doc.Find("dd[itemprop='datePublished']").First().Text()),
		Rating: parseRating(doc.Find("#movie-rat-avg").First().Text()),
		URL:    pageURL,
	}
}

func (c *Client) resolveURL(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse film url %q: %w", pageURL, err)
	}
	return c.baseURL.ResolveReference(parsed).String(), nil
}

// fetchDocument performs one throttled GET and parses the body. It returns
// the final URL after redirects so direct-hit searches keep a usable link.
func (c *Client) fetchDocument(ctx context.Context, endpoint string) (*goquery.Document, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("throttle wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.5")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, "", fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("filmaffinity returned %d for %s (latency=%v)", resp.StatusCode, endpoint, latency)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("parse page: %w", err)
	}
	return doc, resp.Request.URL.String(), nil
}
