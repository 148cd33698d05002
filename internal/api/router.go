package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the HTTP mux for the toolkit API.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Page analysis
	mux.HandleFunc("POST /api/seo-analysis/analyze", h.analyze)
	mux.HandleFunc("GET /api/seo-analysis/history", h.analysisHistory)

	// Redirections
	mux.HandleFunc("GET /api/redirections", h.listRedirections)
	mux.HandleFunc("POST /api/redirections", h.createRedirection)
	mux.HandleFunc("GET /api/redirections/check", h.checkRedirection)
	mux.HandleFunc("POST /api/redirections/import", h.importRedirections)
	mux.HandleFunc("PUT /api/redirections/{id}", h.updateRedirection)
	mux.HandleFunc("DELETE /api/redirections/{id}", h.deleteRedirection)

	// 404 monitor
	mux.HandleFunc("GET /api/404-monitor/logs", h.listNotFound)
	mux.HandleFunc("POST /api/404-monitor/log", h.logNotFound)
	mux.HandleFunc("POST /api/404-monitor/clear", h.clearNotFound)
	mux.HandleFunc("GET /api/404-monitor/export", h.exportNotFound)
	mux.HandleFunc("DELETE /api/404-monitor/{id}", h.deleteNotFound)

	// Sitemap
	mux.HandleFunc("GET /api/sitemap", h.listSitemapEntries)
	mux.HandleFunc("POST /api/sitemap", h.createSitemapEntry)
	mux.HandleFunc("GET /api/sitemap/generate-xml", h.generateSitemapXML)
	mux.HandleFunc("POST /api/sitemap/crawl", h.crawlSitemap)
	mux.HandleFunc("DELETE /api/sitemap/{id}", h.deleteSitemapEntry)

	// Local SEO
	mux.HandleFunc("GET /api/local-seo/locations", h.listLocations)
	mux.HandleFunc("POST /api/local-seo/locations", h.createLocation)
	mux.HandleFunc("GET /api/local-seo/nearby", h.nearbyLocations)
	mux.HandleFunc("GET /api/local-seo/locations/{id}", h.getLocation)
	mux.HandleFunc("PUT /api/local-seo/locations/{id}", h.updateLocation)
	mux.HandleFunc("DELETE /api/local-seo/locations/{id}", h.deleteLocation)
	mux.HandleFunc("GET /api/local-seo/locations/{id}/schema", h.locationSchema)

	// Image SEO
	mux.HandleFunc("GET /api/image-seo/images", h.listImages)
	mux.HandleFunc("POST /api/image-seo/analyze", h.analyzeImage)
	mux.HandleFunc("POST /api/image-seo/bulk-analyze", h.bulkAnalyzeImages)
	mux.HandleFunc("PUT /api/image-seo/{id}", h.updateImage)

	// Content templates
	mux.HandleFunc("POST /api/content-ai/generate", h.generateContent)
	mux.HandleFunc("GET /api/content-ai/suggestions", h.contentSuggestions)
	mux.HandleFunc("POST /api/content-ai/rewrite", h.rewriteContent)
	mux.HandleFunc("GET /api/content-ai/history", h.contentHistory)

	// Reports
	mux.HandleFunc("GET /api/reports", h.listReports)
	mux.HandleFunc("GET /api/reports/{type}/export", h.exportReport)

	return mux
}
