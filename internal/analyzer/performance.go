package analyzer

import "math"

// PerformanceExtractor reports the fetch timing measured by the
// fetcher. It depends only on the duration and raw byte length, so it
// still computes normally when the fetch failed.
type PerformanceExtractor struct{}

func NewPerformanceExtractor() *PerformanceExtractor {
	return &PerformanceExtractor{}
}

func (e *PerformanceExtractor) Name() string {
	return "performance"
}

func (e *PerformanceExtractor) Extract(ctx *Context) Result {
	loadTime := ctx.Duration.Seconds()

	return Result{
		"load_time":         math.Round(loadTime*1000) / 1000,
		"load_time_optimal": loadTime < Thresholds.OptimalLoadTime,
		"page_size":         len(ctx.RawHTML),
	}
}
