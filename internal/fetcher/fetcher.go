package fetcher

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/seoforge/seoforge/internal/config"
)

// Fetcher issues a single GET per analysis request.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	transport   *http.Transport
}

// New creates a fetcher configured for page analysis: redirects are
// followed automatically and TLS certificate errors are ignored so
// misconfigured sites can still be scored.
func New(cfg *config.Config) *Fetcher {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	f := &Fetcher{
		userAgent:   cfg.UserAgent,
		maxBodySize: cfg.MaxResponseSize,
		transport:   transport,
	}
	if f.maxBodySize <= 0 {
		f.maxBodySize = 10 * 1024 * 1024
	}

	f.client = &http.Client{
		Transport: transport,
		Timeout:   cfg.FetchTimeout,
	}

	return f
}

// Fetch performs one GET against rawURL. Transport errors never
// propagate as Go errors to the caller; they are recorded on the
// Response with Succeeded=false so the analysis can degrade instead
// of aborting.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *Response {
	startTime := time.Now()
	response := &Response{
		RequestURL: rawURL,
		FinalURL:   rawURL,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		response.Duration = time.Since(startTime)
		response.Error = fmt.Errorf("failed to create request: %w", err)
		return response
	}
	f.setRequestHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		response.Duration = time.Since(startTime)
		response.Error = f.categorizeError(err)
		return response
	}
	defer resp.Body.Close()

	response.StatusCode = resp.StatusCode
	response.Headers = resp.Header
	if resp.Request != nil && resp.Request.URL != nil {
		response.FinalURL = resp.Request.URL.String()
	}

	body, err := f.readBody(resp)
	response.Duration = time.Since(startTime)
	if err != nil {
		response.Error = fmt.Errorf("failed to read body: %w", err)
		return response
	}

	response.Body = body
	response.Succeeded = true
	return response
}

// setRequestHeaders sets common request headers.
func (f *Fetcher) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip")
}

// readBody reads the response body with size limit.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode error: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	return io.ReadAll(io.LimitReader(reader, f.maxBodySize))
}

// categorizeError categorizes network errors.
func (f *Fetcher) categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return fmt.Errorf("timeout: %w", err)
	}

	if _, ok := err.(*net.DNSError); ok {
		return fmt.Errorf("DNS error: %w", err)
	}

	if opErr, ok := err.(*net.OpError); ok && opErr.Op == "dial" {
		return fmt.Errorf("connection failed: %w", err)
	}

	if strings.Contains(err.Error(), "tls:") || strings.Contains(err.Error(), "certificate") {
		return fmt.Errorf("TLS error: %w", err)
	}

	return err
}

// SetUserAgent overrides the User-Agent sent with requests.
func (f *Fetcher) SetUserAgent(ua string) {
	if ua != "" {
		f.userAgent = ua
	}
}

// SetMaxBodySize sets the maximum body size to read.
func (f *Fetcher) SetMaxBodySize(size int64) {
	f.maxBodySize = size
}

// Close releases pooled connections.
func (f *Fetcher) Close() {
	f.transport.CloseIdleConnections()
}
