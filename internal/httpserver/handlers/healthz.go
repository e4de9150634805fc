package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
)

type healthzBuild struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status        string       `json:"status"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	Store         string       `json:"store,omitempty"`
	Uploads       string       `json:"uploads,omitempty"`
	Build         healthzBuild `json:"build"`
}

// Healthz is the liveness probe. It never touches the store; readiness is Readyz's job.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := healthzBuild{Version: d.Version, Commit: d.Commit, BuildDate: d.BuildDate, GoVersion: d.GoVersion}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(d.StartTime).Seconds(),
			Store:         d.StoreBackend,
			Uploads:       d.UploadsBackend,
			Build:         build,
		})
	}
}
