package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/seoforge/seoforge/internal/contentai"
	"github.com/seoforge/seoforge/internal/imageseo"
	"github.com/seoforge/seoforge/internal/localseo"
	"github.com/seoforge/seoforge/internal/monitor"
	"github.com/seoforge/seoforge/internal/monitoring"
	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/redirect"
	"github.com/seoforge/seoforge/internal/seo"
	"github.com/seoforge/seoforge/internal/sitemap"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	seo       *seo.Service
	redirect  *redirect.Service
	monitor   *monitor.Service
	sitemap   *sitemap.Service
	crawler   *sitemap.Crawler
	localseo  *localseo.Service
	imageseo  *imageseo.Service
	contentai *contentai.Service
	metrics   *monitoring.Metrics
	log       *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	seoSvc *seo.Service,
	redirectSvc *redirect.Service,
	monitorSvc *monitor.Service,
	sitemapSvc *sitemap.Service,
	crawler *sitemap.Crawler,
	localseoSvc *localseo.Service,
	imageseoSvc *imageseo.Service,
	contentaiSvc *contentai.Service,
	metrics *monitoring.Metrics,
	log *slog.Logger,
) *Handler {
	return &Handler{
		seo:       seoSvc,
		redirect:  redirectSvc,
		monitor:   monitorSvc,
		sitemap:   sitemapSvc,
		crawler:   crawler,
		localseo:  localseoSvc,
		imageseo:  imageseoSvc,
		contentai: contentaiSvc,
		metrics:   metrics,
		log:       log,
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]any{
		"status":    "ok",
		"version":   "1.0.0",
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req seo.AnalyzeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.seo.Analyze(r.Context(), &req)
	if err != nil {
		h.observeAnalysis(err, 0)
		writeError(w, h.log, err)
		return
	}

	h.observeAnalysis(nil, result.Score)
	writeData(w, result)
}

func (h *Handler) analysisHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, err := h.seo.History(q.Get("type"), q.Get("project_id"), limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, entries)
}

func (h *Handler) observeAnalysis(err error, score int) {
	if h.metrics == nil {
		return
	}
	switch {
	case err == nil:
		h.metrics.ObserveAnalysis("ok", score)
	case errs.IsKind(err, errs.InvalidInput):
		h.metrics.ObserveAnalysis("invalid_input", 0)
	default:
		h.metrics.ObserveAnalysis("failed", 0)
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errs.Invalid("Invalid ID")
	}
	return id, nil
}
