// Package api exposes the toolkit over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/seoforge/seoforge/internal/platform/errs"
)

// envelope is the uniform JSON response shape.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message})
}

// writeError maps application error kinds to HTTP status codes.
// Internal details are logged, never sent to the caller.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		log.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	message := appErr.Message
	switch appErr.Kind {
	case errs.InvalidInput:
		status = http.StatusBadRequest
	case errs.NotFound:
		status = http.StatusNotFound
	case errs.Conflict:
		status = http.StatusConflict
	case errs.Unreachable, errs.Timeout:
		status = http.StatusBadGateway
	case errs.Storage:
		message = "Internal server error"
	}

	if status >= 500 {
		log.Error("request failed", "error", err)
	}
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Invalid("Invalid JSON body")
	}
	return nil
}
