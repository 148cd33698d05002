// Package fetcher performs the HTTP retrieval step of an analysis.
package fetcher

import (
	"net/http"
	"time"
)

// Response represents the result of fetching a URL.
type Response struct {
	// Original requested URL
	RequestURL string

	// Final URL after redirects
	FinalURL string

	// HTTP status code (0 when the request never completed)
	StatusCode int

	// Response headers
	Headers http.Header

	// Response body (HTML content)
	Body []byte

	// Wall-clock duration of the fetch, measured up to the failure
	// point when the request did not complete
	Duration time.Duration

	// Whether the HTTP round trip completed. A non-2xx status still
	// counts as a completed fetch; only transport failures clear this.
	Succeeded bool

	// Error if the request failed
	Error error
}

// IsSuccess returns true if the response status was 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Seconds returns the fetch duration in seconds.
func (r *Response) Seconds() float64 {
	return r.Duration.Seconds()
}
