package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
)

type rootResponse struct {
	Message string `json:"message"`
}

func Root(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rootResponse{Message: d.APIName})
	}
}
