package api

import (
	"net/http"
)

func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var optimized *bool
	if v := q.Get("optimized"); v != "" {
		b := v == "true" || v == "1"
		optimized = &b
	}

	images, err := h.imageseo.List(q.Get("project_id"), optimized)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, images)
}

func (h *Handler) analyzeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string `json:"project_id,omitempty"`
		ImageURL  string `json:"image_url"`
		AltText   string `json:"alt_text,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	analysis, err := h.imageseo.AnalyzeAndStore(r.Context(), req.ProjectID, req.ImageURL, req.AltText)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, analysis)
}

func (h *Handler) updateImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.imageseo.UpdateMetadata(id, fields); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Image updated")
}

func (h *Handler) bulkAnalyzeImages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.imageseo.AnalyzePage(r.Context(), req.URL)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, result)
}
