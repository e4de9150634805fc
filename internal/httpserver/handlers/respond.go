package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// maxJSONBody bounds every JSON request body.
const maxJSONBody = 1 << 20

type detailResponse struct {
	Detail string `json:"detail"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// writeError maps domain errors onto status codes. Unexpected errors are
// logged and reported without internals.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredential):
		writeDetail(w, http.StatusUnauthorized, "Invalid authentication")
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		writeDetail(w, http.StatusBadRequest, "SMTP settings not configured")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.Warn("request gave up waiting", logger.String("path", r.URL.Path), logger.Error(err))
		writeDetail(w, http.StatusServiceUnavailable, "Service busy, retry later")
	case errors.Is(err, domain.ErrCorruptDocument):
		log.Error("stored document is corrupt", logger.String("path", r.URL.Path), logger.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Stored document is corrupt")
	default:
		log.Error("request failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads one JSON object into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
