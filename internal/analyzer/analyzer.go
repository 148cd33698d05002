package analyzer

import (
	"context"

	"github.com/seoforge/seoforge/internal/document"
	"github.com/seoforge/seoforge/internal/fetcher"
)

// ExtractorNames lists the nine extractor keys every analysis reports,
// in pipeline order.
var ExtractorNames = []string{
	"basic", "meta", "headings", "images", "links",
	"performance", "mobile", "security", "structured_data",
}

// PageFetcher retrieves a page for analysis.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) *fetcher.Response
}

// Analysis is the outcome of one pipeline pass. Immutable once built.
type Analysis struct {
	URL     string
	Score   int
	Results map[string]Result
}

// Analyzer runs the fetch -> parse -> extract -> score pipeline.
type Analyzer struct {
	fetcher    PageFetcher
	extractors []Extractor
}

// New creates an Analyzer with the standard extractor set.
func New(f PageFetcher) *Analyzer {
	return &Analyzer{
		fetcher: f,
		extractors: []Extractor{
			NewBasicExtractor(),
			NewMetaExtractor(),
			NewHeadingsExtractor(),
			NewImagesExtractor(),
			NewLinksExtractor(),
			NewPerformanceExtractor(),
			NewMobileExtractor(),
			NewSecurityExtractor(),
			NewStructuredDataExtractor(),
		},
	}
}

// Analyze fetches rawURL once, parses it once, and runs every
// extractor over the shared document. A failed fetch still yields a
// full result set: HTML-dependent extractors degrade to their error
// payload while security and performance compute normally.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) *Analysis {
	resp := a.fetcher.Fetch(ctx, rawURL)

	rawHTML := ""
	if resp.Succeeded {
		rawHTML = string(resp.Body)
	}

	ectx := &Context{
		Doc:      document.Parse(rawHTML),
		RawHTML:  rawHTML,
		URL:      rawURL,
		Duration: resp.Duration,
		Fetched:  resp.Succeeded,
	}

	results := make(map[string]Result, len(a.extractors))
	for _, ex := range a.extractors {
		results[ex.Name()] = ex.Extract(ectx)
	}

	return &Analysis{
		URL:     rawURL,
		Score:   Score(results),
		Results: results,
	}
}
