package api

import (
	"net/http"

	"github.com/seoforge/seoforge/internal/redirect"
)

func (h *Handler) listRedirections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	redirections, err := h.redirect.List(q.Get("status"), q.Get("project_id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, redirections)
}

func (h *Handler) createRedirection(w http.ResponseWriter, r *http.Request) {
	var req redirect.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	created, err := h.redirect.Create(&req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeCreated(w, created)
}

func (h *Handler) updateRedirection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	var req redirect.UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.redirect.Update(id, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Redirection updated")
}

func (h *Handler) deleteRedirection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.redirect.Delete(id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Redirection deleted")
}

func (h *Handler) checkRedirection(w http.ResponseWriter, r *http.Request) {
	result, err := h.redirect.Check(r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, result)
}

func (h *Handler) importRedirections(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	result, err := h.redirect.ImportCSV(r.Body, r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, result)
}
