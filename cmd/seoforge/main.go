// Package main is the entry point for the SEOForge toolkit server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/seoforge/seoforge/internal/analyzer"
	"github.com/seoforge/seoforge/internal/api"
	"github.com/seoforge/seoforge/internal/config"
	"github.com/seoforge/seoforge/internal/contentai"
	"github.com/seoforge/seoforge/internal/fetcher"
	"github.com/seoforge/seoforge/internal/imageseo"
	"github.com/seoforge/seoforge/internal/localseo"
	"github.com/seoforge/seoforge/internal/monitor"
	"github.com/seoforge/seoforge/internal/monitoring"
	"github.com/seoforge/seoforge/internal/platform/logger"
	"github.com/seoforge/seoforge/internal/redirect"
	"github.com/seoforge/seoforge/internal/renderer"
	"github.com/seoforge/seoforge/internal/seo"
	"github.com/seoforge/seoforge/internal/sitemap"
	"github.com/seoforge/seoforge/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	listenAddr := flag.String("listen", "", "listen address, overrides config")
	flag.Parse()

	if err := run(*configPath, *listenAddr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, listenAddr string) error {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)

	db, err := storage.NewDatabase(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	httpFetcher := fetcher.New(cfg)
	defer httpFetcher.Close()

	// The analyzer sees either plain HTTP responses or rendered DOM,
	// depending on the configured mode.
	var pageFetcher analyzer.PageFetcher = httpFetcher
	if cfg.RenderMode == config.RenderJS {
		r := renderer.New(cfg)
		defer r.Close()
		pageFetcher = r
		log.Info("JavaScript rendering enabled", "timeout", cfg.RenderTimeout)
	}

	metrics := monitoring.NewMetrics()

	crawlFetcher := fetcher.New(cfg)
	crawlFetcher.SetUserAgent(cfg.CrawlUserAgent)
	defer crawlFetcher.Close()

	handler := api.NewHandler(
		seo.NewService(analyzer.New(pageFetcher), db, log),
		redirect.NewService(db),
		monitor.NewService(db),
		sitemap.NewService(db),
		sitemap.NewCrawler(crawlFetcher, cfg.CrawlMaxPages, cfg.CrawlTimeout, cfg.CrawlRequestsPerSecond, log),
		localseo.NewService(db, nil),
		imageseo.NewService(httpFetcher, db),
		contentai.NewService(db),
		metrics,
		log,
	)

	srv := api.NewServer(cfg, handler, metrics, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
