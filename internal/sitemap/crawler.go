package sitemap

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/seoforge/seoforge/internal/document"
	"github.com/seoforge/seoforge/internal/fetcher"
	"github.com/seoforge/seoforge/internal/platform/errs"
)

// Fetcher fetches one page during a crawl.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) *fetcher.Response
}

// CrawledPage is one page discovered by a crawl.
type CrawledPage struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Depth      int    `json:"depth"`
}

// CrawlResult summarizes one crawl run.
type CrawlResult struct {
	StartURL string         `json:"start_url"`
	Pages    []*CrawledPage `json:"pages"`
	Stored   int            `json:"stored"`
}

// Crawler walks a site breadth-first to discover sitemap URLs. Only
// pages on the start URL's host are visited, and only 200 responses
// are expanded for further links.
type Crawler struct {
	fetcher  Fetcher
	limiter  *rate.Limiter
	maxPages int
	timeout  time.Duration
	log      *slog.Logger
}

// NewCrawler creates a crawler bounded to maxPages, with one fetch
// timeout per page and a global requests-per-second cap.
func NewCrawler(f Fetcher, maxPages int, timeout time.Duration, rps float64, log *slog.Logger) *Crawler {
	if maxPages <= 0 {
		maxPages = 100
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &Crawler{
		fetcher:  f,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		maxPages: maxPages,
		timeout:  timeout,
		log:      log,
	}
}

type queueItem struct {
	url   string
	depth int
}

// Crawl walks the site starting at startURL and returns the pages it
// reached, in discovery order.
func (c *Crawler) Crawl(ctx context.Context, startURL string) ([]*CrawledPage, error) {
	start, err := url.Parse(startURL)
	if err != nil || !start.IsAbs() || start.Host == "" {
		return nil, errs.Invalid("Invalid URL format")
	}

	visited := map[string]bool{}
	queue := []queueItem{{url: normalizeURL(start), depth: 0}}
	var pages []*CrawledPage

	for len(queue) > 0 && len(pages) < c.maxPages {
		item := queue[0]
		queue = queue[1:]

		if visited[item.url] {
			continue
		}
		visited[item.url] = true

		if err := c.limiter.Wait(ctx); err != nil {
			return pages, err
		}

		fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp := c.fetcher.Fetch(fetchCtx, item.url)
		cancel()

		if !resp.Succeeded {
			c.log.Debug("crawl fetch failed", "url", item.url, "error", resp.Error)
			continue
		}

		pages = append(pages, &CrawledPage{
			URL:        item.url,
			StatusCode: resp.StatusCode,
			Depth:      item.depth,
		})

		if resp.StatusCode != 200 {
			continue
		}

		doc := document.Parse(string(resp.Body))
		for _, anchor := range doc.Anchors() {
			next := resolveLink(start, item.url, anchor.Href)
			if next == "" || visited[next] {
				continue
			}
			queue = append(queue, queueItem{url: next, depth: item.depth + 1})
		}
	}

	return pages, nil
}

// CrawlAndStore crawls a site and stores each reachable 200 page as a
// general sitemap entry. The home page gets priority 1.0, pages one
// level deep 0.8, everything else 0.5.
func (c *Crawler) CrawlAndStore(ctx context.Context, svc *Service, startURL, projectID string) (*CrawlResult, error) {
	pages, err := c.Crawl(ctx, startURL)
	if err != nil {
		return nil, err
	}

	result := &CrawlResult{StartURL: startURL, Pages: pages}
	for _, page := range pages {
		if page.StatusCode != 200 {
			continue
		}
		priority := 0.5
		switch page.Depth {
		case 0:
			priority = 1.0
		case 1:
			priority = 0.8
		}
		if _, err := svc.Create(&CreateRequest{
			ProjectID: projectID,
			Type:      "general",
			URL:       page.URL,
			Priority:  priority,
		}); err != nil {
			c.log.Warn("failed to store crawled URL", "url", page.URL, "error", err)
			continue
		}
		result.Stored++
	}
	return result, nil
}

// resolveLink resolves href against the current page and returns the
// normalized absolute URL, or empty when the link leaves the crawl
// scope.
func resolveLink(start *url.URL, pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "javascript:") {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host != start.Host {
		return ""
	}
	return normalizeURL(resolved)
}

// normalizeURL strips fragments and trailing slashes so the same page
// is not visited twice.
func normalizeURL(u *url.URL) string {
	clone := *u
	clone.Fragment = ""
	s := clone.String()
	if strings.HasSuffix(clone.Path, "/") && clone.Path != "/" {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}
