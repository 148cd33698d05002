package api

import (
	"net/http"
	"strconv"

	"github.com/seoforge/seoforge/internal/monitor"
	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/report"
)

func (h *Handler) listNotFound(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	result, err := h.monitor.List(monitor.ListParams{
		ProjectID: q.Get("project_id"),
		OrderBy:   q.Get("order_by"),
		Ascending: q.Get("order") == "asc",
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, result)
}

func (h *Handler) logNotFound(w http.ResponseWriter, r *http.Request) {
	var req monitor.LogRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if req.IPAddress == "" {
		req.IPAddress = r.RemoteAddr
	}

	id, err := h.monitor.Log(&req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeCreated(w, map[string]int64{"id": id})
}

func (h *Handler) deleteNotFound(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.monitor.Delete(id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Log deleted")
}

func (h *Handler) clearNotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.monitor.Clear(r.URL.Query().Get("project_id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Logs cleared")
}

func (h *Handler) exportNotFound(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, h.log, errs.Invalid(err.Error()))
		return
	}

	logs, err := h.monitor.All(r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="404-log.`+string(format)+`"`)
	if err := report.Export(w, report.FromNotFoundLogs(logs), format); err != nil {
		h.log.Error("export failed", "error", err)
	}
}
