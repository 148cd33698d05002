// Package renderer fetches pages through headless Chromium so that
// client-side rendered markup is visible to the analyzer.
package renderer

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/seoforge/seoforge/internal/config"
	"github.com/seoforge/seoforge/internal/fetcher"
)

// Renderer drives a headless browser and exposes the same fetch
// surface as the plain HTTP fetcher, so the analyzer does not care
// which one it is given.
type Renderer struct {
	allocator context.Context
	cancel    context.CancelFunc
	timeout   time.Duration
}

// New creates a renderer backed by one Chromium allocator.
func New(cfg *config.Config) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(cfg.UserAgent),
	)
	if cfg.ChromiumPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromiumPath))
	}

	allocator, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Renderer{
		allocator: allocator,
		cancel:    cancel,
		timeout:   cfg.RenderTimeout,
	}
}

// Fetch navigates to rawURL, waits for the DOM, and returns the
// rendered HTML. Render failures are recorded on the response the same
// way transport errors are on the HTTP fetcher.
func (r *Renderer) Fetch(ctx context.Context, rawURL string) *fetcher.Response {
	resp := &fetcher.Response{RequestURL: rawURL}
	start := time.Now()

	browserCtx, cancelBrowser := chromedp.NewContext(r.allocator)
	defer cancelBrowser()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	// Capture the main document's status code from network events.
	chromedp.ListenTarget(timeoutCtx, func(ev any) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			if e.Type == network.ResourceTypeDocument {
				resp.StatusCode = int(e.Response.Status)
			}
		case *page.EventJavascriptDialogOpening:
			go chromedp.Run(timeoutCtx, page.HandleJavaScriptDialog(true))
		}
	})

	var html, finalURL string
	err := chromedp.Run(timeoutCtx,
		network.Enable(),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&finalURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			return err
		}),
	)
	resp.Duration = time.Since(start)

	if err != nil {
		resp.Error = err
		return resp
	}

	resp.FinalURL = finalURL
	resp.Body = []byte(html)
	resp.Succeeded = true
	return resp
}

// Close releases the browser allocator.
func (r *Renderer) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}
