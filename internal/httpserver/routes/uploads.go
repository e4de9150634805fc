package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
)

func init() { RegisterRoot(registerUploads) }

// registerUploads serves locally stored logos. Directory listings are refused.
func registerUploads(r chi.Router, d deps.Deps) {
	if d.UploadsDir == "" {
		return
	}
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, req)
	})
}
