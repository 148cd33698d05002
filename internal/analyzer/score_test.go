package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/seoforge/seoforge/internal/fetcher"
)

func TestScoreMidRangePage(t *testing.T) {
	// A page with a short title, no description, one h1, full alt
	// coverage, fast load, viewport, https, no schema, few internal
	// links, one external link, moderate word count.
	results := map[string]Result{
		"basic": {
			"title":         "Acme Widgets Home",
			"title_length":  17,
			"title_optimal": false,
			"word_count":    350,
		},
		"meta": {
			"description":         "",
			"description_length":  0,
			"description_optimal": false,
		},
		"headings": {"h1_count": 1, "h1_optimal": true},
		"images": {
			"total_images":    10,
			"images_with_alt": 10,
			"alt_ratio":       100.0,
		},
		"links": {
			"total_links":    8,
			"internal_links": 5,
			"external_links": 2,
		},
		"performance":     {"load_time": 1.2, "load_time_optimal": true},
		"mobile":          {"mobile_friendly": true},
		"security":        {"uses_https": true},
		"structured_data": {"has_schema": false, "schema_count": 0},
	}

	// title 5, desc 0, h1 10, alt 15, load 15, mobile 10, https 10,
	// schema 0, internal 0 (needs >5), external 5, words 5
	if got := Score(results); got != 75 {
		t.Errorf("Score = %d, want 75", got)
	}
}

func TestScoreCapsAt100(t *testing.T) {
	results := map[string]Result{
		"basic": {
			"title":         strings.Repeat("t", 45),
			"title_optimal": true,
			"word_count":    1500,
		},
		"meta": {
			"description":         strings.Repeat("d", 140),
			"description_optimal": true,
		},
		"headings":        {"h1_optimal": true},
		"images":          {"alt_ratio": 100.0},
		"links":           {"internal_links": 20, "external_links": 3},
		"performance":     {"load_time": 0.8, "load_time_optimal": true},
		"mobile":          {"mobile_friendly": true},
		"security":        {"uses_https": true},
		"structured_data": {"has_schema": true},
	}

	if got := Score(results); got != 100 {
		t.Errorf("Score = %d, want 100", got)
	}
}

func TestScoreAltRatioTiers(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{100.0, 15},
		{90.0, 15},
		{89.99, 10},
		{50.0, 10},
		{49.99, 5},
		{0.01, 5},
		{0.0, 0},
	}

	for _, tt := range tests {
		results := map[string]Result{
			"images": {"alt_ratio": tt.ratio},
			// Worst-case performance contributes a fixed 5
			"performance": {"load_time": 9.0, "load_time_optimal": false},
		}
		if got := Score(results); got != tt.want+5 {
			t.Errorf("alt_ratio %v: Score = %d, want %d", tt.ratio, got, tt.want+5)
		}
	}
}

func TestScoreLoadTimeTiers(t *testing.T) {
	tests := []struct {
		loadTime float64
		optimal  bool
		want     int
	}{
		{1.0, true, 15},
		{4.9, false, 10},
		{5.0, false, 5},
		{12.0, false, 5},
	}

	for _, tt := range tests {
		results := map[string]Result{
			"performance": {"load_time": tt.loadTime, "load_time_optimal": tt.optimal},
		}
		if got := Score(results); got != tt.want {
			t.Errorf("load_time %v: Score = %d, want %d", tt.loadTime, got, tt.want)
		}
	}
}

func TestScoreInternalLinksThresholdIsStrict(t *testing.T) {
	base := map[string]Result{
		"performance": {"load_time": 9.0, "load_time_optimal": false},
	}

	base["links"] = Result{"internal_links": 5, "external_links": 0}
	atThreshold := Score(base)

	base["links"] = Result{"internal_links": 6, "external_links": 0}
	aboveThreshold := Score(base)

	if aboveThreshold-atThreshold != 5 {
		t.Errorf("6 internal links scored %d, 5 scored %d; want a 5 point gap", aboveThreshold, atThreshold)
	}
}

func TestScoreTolerantOfJSONRoundTrippedNumbers(t *testing.T) {
	// Numbers decoded from stored JSON arrive as float64.
	results := map[string]Result{
		"basic":       {"title": "x", "word_count": float64(400)},
		"links":       {"internal_links": float64(7), "external_links": float64(1)},
		"images":      {"alt_ratio": float64(95)},
		"performance": {"load_time": 9.0, "load_time_optimal": false},
	}

	// title 5, words 5, internal 5, external 5, alt 15, load 5
	if got := Score(results); got != 40 {
		t.Errorf("Score = %d, want 40", got)
	}
}

func TestScoreOnFetchFailure(t *testing.T) {
	// Error-state extractors contribute nothing; security and the
	// performance floor still count.
	results := map[string]Result{
		"basic":           errorResult(),
		"meta":            errorResult(),
		"headings":        errorResult(),
		"images":          errorResult(),
		"links":           errorResult(),
		"mobile":          errorResult(),
		"structured_data": errorResult(),
		"performance":     {"load_time": 0.05, "load_time_optimal": true},
		"security":        {"uses_https": true, "secure": true},
	}

	if got := Score(results); got != 25 {
		t.Errorf("Score = %d, want 25", got)
	}
}

type stubFetcher struct {
	resp *fetcher.Response
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) *fetcher.Response {
	r := *s.resp
	r.RequestURL = rawURL
	r.FinalURL = rawURL
	return &r
}

func TestAnalyzePipeline(t *testing.T) {
	html := `<!DOCTYPE html><html><head>
		<title>Complete Example Page For Pipeline Testing</title>
		<meta name="viewport" content="width=device-width">
		<script type="application/ld+json">{"@type": "WebPage"}</script>
	</head><body>
		<h1>Welcome</h1>
		<img src="/logo.png" alt="logo">
		<a href="/about">about</a>
		<a href="https://partner.example.org/">partner</a>
	</body></html>`

	a := New(&stubFetcher{resp: &fetcher.Response{
		StatusCode: 200,
		Body:       []byte(html),
		Duration:   800 * time.Millisecond,
		Succeeded:  true,
	}})

	analysis := a.Analyze(context.Background(), "https://example.com")

	if analysis.URL != "https://example.com" {
		t.Errorf("URL = %q", analysis.URL)
	}
	if len(analysis.Results) != len(ExtractorNames) {
		t.Fatalf("got %d result groups, want %d", len(analysis.Results), len(ExtractorNames))
	}
	for _, name := range ExtractorNames {
		if _, ok := analysis.Results[name]; !ok {
			t.Errorf("missing result group %q", name)
		}
	}

	if got := analysis.Results["basic"]["title"]; got != "Complete Example Page For Pipeline Testing" {
		t.Errorf("title = %v", got)
	}
	if got := analysis.Results["images"]["alt_ratio"]; got != 100.0 {
		t.Errorf("alt_ratio = %v", got)
	}
	if got := analysis.Results["links"]["external_links"]; got != 1 {
		t.Errorf("external_links = %v", got)
	}
	if got := analysis.Results["structured_data"]["schema_count"]; got != 1 {
		t.Errorf("schema_count = %v", got)
	}

	// title 10 (42 runes is optimal), h1 10, alt 15, load 15,
	// mobile 10, https 10, schema 10, external 5
	if analysis.Score != 85 {
		t.Errorf("Score = %d, want 85", analysis.Score)
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	a := New(&stubFetcher{resp: &fetcher.Response{
		Duration:  200 * time.Millisecond,
		Succeeded: false,
		Error:     errors.New("dial tcp: connection refused"),
	}})

	analysis := a.Analyze(context.Background(), "https://down.example.com")

	if len(analysis.Results) != len(ExtractorNames) {
		t.Fatalf("got %d result groups, want %d", len(analysis.Results), len(ExtractorNames))
	}
	for _, name := range ExtractorNames {
		if name == "security" || name == "performance" {
			continue
		}
		if got := analysis.Results[name]["error"]; got != FetchErrorMessage {
			t.Errorf("%s: error = %v, want %q", name, got, FetchErrorMessage)
		}
	}
	if got := analysis.Results["security"]["uses_https"]; got != true {
		t.Errorf("security uses_https = %v", got)
	}
	if got := analysis.Results["performance"]["load_time"]; got != 0.2 {
		t.Errorf("performance load_time = %v", got)
	}
}
