package renderer

import (
	"testing"

	"github.com/seoforge/seoforge/internal/analyzer"
	"github.com/seoforge/seoforge/internal/config"
)

// The renderer must be a drop-in replacement for the HTTP fetcher,
// including the typed Error field on its responses.
var _ analyzer.PageFetcher = (*Renderer)(nil)

func TestNewUsesConfiguredTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	r := New(cfg)
	defer r.Close()

	if r.timeout != cfg.RenderTimeout {
		t.Errorf("timeout = %v, want %v", r.timeout, cfg.RenderTimeout)
	}
	if r.allocator == nil {
		t.Error("allocator not initialized")
	}
}
