package api

import (
	"net/http"
	"strconv"

	"github.com/seoforge/seoforge/internal/contentai"
)

func (h *Handler) generateContent(w http.ResponseWriter, r *http.Request) {
	var req contentai.GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	result, err := h.contentai.Generate(&req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, result)
}

func (h *Handler) contentSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.contentai.Suggestions(r.URL.Query().Get("keyword"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, suggestions)
}

func (h *Handler) rewriteContent(w http.ResponseWriter, r *http.Request) {
	var req contentai.RewriteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	rewritten, err := h.contentai.Rewrite(&req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, map[string]string{"content": rewritten})
}

func (h *Handler) contentHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	records, err := h.contentai.History(q.Get("project_id"), limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, records)
}
