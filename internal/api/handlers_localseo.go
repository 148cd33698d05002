package api

import (
	"net/http"
	"strconv"

	"github.com/seoforge/seoforge/internal/localseo"
	"github.com/seoforge/seoforge/internal/platform/errs"
)

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.localseo.List(r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, locations)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	location, err := h.localseo.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, location)
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req localseo.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	location, err := h.localseo.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeCreated(w, location)
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
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
	if err := h.localseo.Update(id, fields); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Location updated")
}

func (h *Handler) deleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.localseo.Delete(id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeMessage(w, "Location deleted")
}

func (h *Handler) locationSchema(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	schema, err := h.localseo.Schema(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, schema)
}

func (h *Handler) nearbyLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, h.log, errs.Invalid("Invalid latitude"))
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		writeError(w, h.log, errs.Invalid("Invalid longitude"))
		return
	}
	radius, _ := strconv.ParseFloat(q.Get("radius"), 64)

	locations, err := h.localseo.Nearby(q.Get("project_id"), lat, lng, radius)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, locations)
}
