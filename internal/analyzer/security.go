package analyzer

import "strings"

// SecurityExtractor reports transport security. It inspects only the
// request URL string, so it computes normally when the fetch failed.
type SecurityExtractor struct{}

func NewSecurityExtractor() *SecurityExtractor {
	return &SecurityExtractor{}
}

func (e *SecurityExtractor) Name() string {
	return "security"
}

func (e *SecurityExtractor) Extract(ctx *Context) Result {
	// Deliberately a prefix check rather than a parsed scheme check,
	// for compatibility with existing consumers
	usesHTTPS := strings.HasPrefix(ctx.URL, "https://")

	return Result{
		"uses_https": usesHTTPS,
		"secure":     usesHTTPS,
	}
}
