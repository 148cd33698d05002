// Package analyzer runs SEO extractors over a fetched page and scores
// the combined results.
package analyzer

import (
	"time"

	"github.com/seoforge/seoforge/internal/document"
)

// FetchErrorMessage is the uniform payload every HTML-dependent
// extractor reports when the page could not be fetched. Existing
// consumers match on this exact string.
const FetchErrorMessage = "Failed to fetch URL"

// Result is one extractor's output: a fixed mapping from field name to
// a typed value.
type Result map[string]any

// Context carries everything an extractor may consume. It is built
// once per analysis and treated as read-only by every extractor.
type Context struct {
	// Parsed document; empty tree when the fetch failed
	Doc *document.Document

	// Raw HTML exactly as fetched
	RawHTML string

	// The URL the caller asked to analyze
	URL string

	// Wall-clock duration of the fetch
	Duration time.Duration

	// Whether the HTTP fetch completed
	Fetched bool
}

// Extractor computes one named group of SEO signals. Extractors are
// pure: same context in, same result out, no shared mutable state.
type Extractor interface {
	// Name returns the extractor key used in the results mapping
	Name() string

	// Extract computes the extractor's fields
	Extract(ctx *Context) Result
}

// Thresholds for SEO scoring.
var Thresholds = struct {
	TitleMinLength     int
	TitleMaxLength     int
	MetaDescMinLength  int
	MetaDescMaxLength  int
	OptimalLoadTime    float64 // seconds
	AcceptableLoadTime float64 // seconds
	MinInternalLinks   int
	MinWordCount       int
	RichWordCount      int
	GoodAltRatio       float64 // percent
	FairAltRatio       float64 // percent
}{
	TitleMinLength:     30,
	TitleMaxLength:     60,
	MetaDescMinLength:  120,
	MetaDescMaxLength:  160,
	OptimalLoadTime:    3,
	AcceptableLoadTime: 5,
	MinInternalLinks:   5,
	MinWordCount:       300,
	RichWordCount:      1000,
	GoodAltRatio:       90,
	FairAltRatio:       50,
}

// errorResult is what HTML-dependent extractors return on fetch failure.
func errorResult() Result {
	return Result{"error": FetchErrorMessage}
}
