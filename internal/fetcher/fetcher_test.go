package fetcher

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seoforge/seoforge/internal/config"
)

func newTestFetcher() *Fetcher {
	cfg := config.DefaultConfig()
	cfg.FetchTimeout = 5 * time.Second
	return New(cfg)
}

func TestFetchSuccess(t *testing.T) {
	const page = "<html><head><title>ok</title></head><body></body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "SEOForge Analyzer/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	resp := f.Fetch(context.Background(), srv.URL)

	if !resp.Succeeded {
		t.Fatalf("Succeeded = false, error: %v", resp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if string(resp.Body) != page {
		t.Errorf("Body = %q", resp.Body)
	}
	if resp.Duration <= 0 {
		t.Error("Duration not recorded")
	}
	if !resp.IsSuccess() {
		t.Error("IsSuccess = false for 200")
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.Redirect(w, r, srv.URL+"/final", http.StatusMovedPermanently)
		case "/final":
			w.Write([]byte("landed"))
		}
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	resp := f.Fetch(context.Background(), srv.URL+"/")

	if !resp.Succeeded {
		t.Fatalf("Succeeded = false, error: %v", resp.Error)
	}
	if resp.FinalURL != srv.URL+"/final" {
		t.Errorf("FinalURL = %q, want %q", resp.FinalURL, srv.URL+"/final")
	}
	if resp.RequestURL != srv.URL+"/" {
		t.Errorf("RequestURL = %q", resp.RequestURL)
	}
	if string(resp.Body) != "landed" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestFetchDecodesGzip(t *testing.T) {
	const page = "<html><body>compressed content</body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Error("request did not advertise gzip")
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(page))
		gz.Close()
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	resp := f.Fetch(context.Background(), srv.URL)

	if !resp.Succeeded {
		t.Fatalf("Succeeded = false, error: %v", resp.Error)
	}
	if string(resp.Body) != page {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestFetchNonOKStatusStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("custom not found page"))
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	resp := f.Fetch(context.Background(), srv.URL)

	// The round trip completed, so the body is available for analysis.
	if !resp.Succeeded {
		t.Fatalf("Succeeded = false, error: %v", resp.Error)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if resp.IsSuccess() {
		t.Error("IsSuccess = true for 404")
	}
	if string(resp.Body) != "custom not found page" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	f := newTestFetcher()
	defer f.Close()

	resp := f.Fetch(context.Background(), srv.URL)

	if resp.Succeeded {
		t.Fatal("Succeeded = true for a closed server")
	}
	if resp.Error == nil {
		t.Fatal("Error is nil")
	}
	if resp.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", resp.StatusCode)
	}
	if resp.Duration <= 0 {
		t.Error("Duration not recorded on failure")
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := newTestFetcher()
	defer f.Close()

	resp := f.Fetch(context.Background(), "http://\x7f invalid")

	if resp.Succeeded {
		t.Fatal("Succeeded = true for an unparsable URL")
	}
	if resp.Error == nil {
		t.Fatal("Error is nil")
	}
}

func TestFetchBodySizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()
	f.SetMaxBodySize(100)

	resp := f.Fetch(context.Background(), srv.URL)

	if !resp.Succeeded {
		t.Fatalf("Succeeded = false, error: %v", resp.Error)
	}
	if len(resp.Body) != 100 {
		t.Errorf("len(Body) = %d, want the 100 byte cap", len(resp.Body))
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	resp := f.Fetch(ctx, srv.URL)

	if resp.Succeeded {
		t.Fatal("Succeeded = true for a cancelled request")
	}
	if resp.Error == nil {
		t.Fatal("Error is nil")
	}
}
