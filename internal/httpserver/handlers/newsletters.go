package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

func Subscribe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		_, created, err := d.Content.Newsletters.Subscribe(r.Context(), req.Email)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		msg := "Subscribed successfully"
		if !created {
			msg = "Already subscribed"
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true, Message: msg})
	}
}

func ListNewsletters(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := d.Content.Newsletters.List(r.Context())
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

func DeleteNewsletter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := d.Content.Newsletters.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}
