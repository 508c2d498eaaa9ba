// Package filmaffinity scrapes FilmAffinity search and film pages to obtain
// a community rating on the 0-10 scale. It is the only HTML-scraping
// collaborator; every request passes through a shared rate limiter so the
// site sees at most a few requests per second, and a failed request is
// reported as an error for the caller to degrade, never retried here.
package filmaffinity
