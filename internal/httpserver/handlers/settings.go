package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
)

type settingsResponse struct {
	Success  bool                `json:"success"`
	Settings domain.SiteSettings `json:"settings"`
}

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Content.Settings.Get(r.Context())
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if s == nil {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SiteSettings
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		stored, err := d.Content.Settings.Replace(r.Context(), req)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: stored})
	}
}

// PublicSettings serves the redacted, anonymous view.
func PublicSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := d.Content.Settings.Public(r.Context())
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
