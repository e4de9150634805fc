package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.RequireAdmin(d.Tokens, d.Logger))

		r.Post("/admin/change-password", handlers.ChangePassword(d))
		r.Post("/admin/upload-logo", handlers.UploadLogo(d))

		r.Get("/admin/settings", handlers.GetSettings(d))
		r.Put("/admin/settings", handlers.PutSettings(d))

		r.Get("/admin/messages", handlers.ListMessages(d))
		r.Delete("/admin/messages/{id}", handlers.DeleteMessage(d))
		r.Put("/admin/messages/{id}/read", handlers.MarkMessageRead(d))

		r.Get("/admin/newsletters", handlers.ListNewsletters(d))
		r.Delete("/admin/newsletters/{id}", handlers.DeleteNewsletter(d))

		r.Get("/admin/smtp-settings", handlers.GetSMTPSettings(d))
		r.Put("/admin/smtp-settings", handlers.PutSMTPSettings(d))
		r.Post("/admin/compose", handlers.Compose(d))
	})
}
