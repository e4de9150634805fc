package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports ready once the backend answers and the stored document can be loaded and decoded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.StorePinger != nil {
			if err := d.StorePinger.Ping(r.Context()); err != nil {
				d.Logger.Warn("readiness probe failed", logger.String("backend", d.StoreBackend), logger.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: "document store unreachable"})
				return
			}
		}
		if _, err := d.Guard.Snapshot(r.Context()); err != nil {
			d.Logger.Warn("readiness probe failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: "document store unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
