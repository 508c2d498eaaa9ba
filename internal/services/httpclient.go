package services

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// NewAPIClient returns an HTTP client with bounded retries for the JSON
// API collaborators. Retry policy lives here, at the I/O boundary; the
// ranking core never retries.
func NewAPIClient(timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 3 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	client := rc.StandardClient()
	client.Timeout = timeout
	return client
}
