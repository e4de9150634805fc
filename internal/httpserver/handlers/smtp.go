package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/content"
	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/mailer"
)

func GetSMTPSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Content.SMTP.Get(r.Context())
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if cfg == nil {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func PutSMTPSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SMTPConfig
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if err := d.Content.SMTP.Replace(r.Context(), req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

type composeRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Compose sends one HTML e-mail. The document is only read, so no guard is held while sending.
func Compose(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req composeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if !content.ValidEmail(req.To) {
			writeDetail(w, http.StatusBadRequest, "Recipient is not a valid e-mail address")
			return
		}

		cfg, err := d.Content.SMTP.Get(r.Context())
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if !cfg.Configured() {
			writeDetail(w, http.StatusBadRequest, "SMTP settings not configured")
			return
		}

		err = d.Mailer.Send(r.Context(), *cfg, mailer.Outgoing{To: req.To, Subject: req.Subject, HTMLBody: req.Body})
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Failed to send email: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Email sent successfully"})
	}
}
