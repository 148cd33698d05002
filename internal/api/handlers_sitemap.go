package api

import (
	"net/http"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/sitemap"
)

func (h *Handler) listSitemapEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.sitemap.List(q.Get("project_id"), q.Get("type"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, entries)
}

func (h *Handler) createSitemapEntry(w http.ResponseWriter, r *http.Request) {
	var req sitemap.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	entry, err := h.sitemap.Create(&req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeCreated(w, entry)
}

func (h *Handler) deleteSitemapEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.sitemap.Delete(id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Sitemap entry deleted")
}

func (h *Handler) generateSitemapXML(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	xml, err := h.sitemap.Generate(q.Get("project_id"), q.Get("type"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml))
}

func (h *Handler) crawlSitemap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL       string `json:"url"`
		ProjectID string `json:"project_id,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if req.URL == "" {
		writeError(w, h.log, errs.Invalid("URL is required"))
		return
	}

	result, err := h.crawler.CrawlAndStore(r.Context(), h.sitemap, req.URL, req.ProjectID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, result)
}
