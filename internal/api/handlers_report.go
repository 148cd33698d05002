package api

import (
	"net/http"
	"strconv"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/report"
)

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Type        string `json:"type"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var items []item
	for _, def := range report.Definitions() {
		items = append(items, item{Type: string(def.Type), Name: def.Name, Description: def.Description})
	}
	writeData(w, items)
}

func (h *Handler) exportReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := report.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, h.log, errs.Invalid(err.Error()))
		return
	}

	reportType := report.Type(r.PathValue("type"))
	projectID := q.Get("project_id")

	var rep *report.Report
	switch reportType {
	case report.TypeAnalysisHistory:
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit <= 0 {
			limit = 100
		}
		entries, err := h.seo.History(q.Get("type"), projectID, limit)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		rep = report.FromAnalysisHistory(entries)

	case report.TypeNotFoundLog:
		logs, err := h.monitor.All(projectID)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		rep = report.FromNotFoundLogs(logs)

	case report.TypeRedirections:
		redirections, err := h.redirect.List(q.Get("status"), projectID)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		rep = report.FromRedirections(redirections)

	case report.TypeSitemapEntries:
		entries, err := h.sitemap.List(projectID, q.Get("sitemap_type"))
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		rep = report.FromSitemapEntries(entries)

	default:
		writeError(w, h.log, errs.Invalid("Unknown report type"))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(reportType)+`.`+string(format)+`"`)
	if err := report.Export(w, rep, format); err != nil {
		h.log.Error("export failed", "error", err)
	}
}
