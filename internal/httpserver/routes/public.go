package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/mw"
)

func init() { Register(registerPublic) }

func registerPublic(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Root(d))
	r.Get("/settings", handlers.PublicSettings(d))

	// contact and newsletter share one per-IP budget
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			Group:             "public",
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitRefillPerMin,
			TrustProxy:        d.TrustProxy,
		}))
		r.Post("/contact", handlers.SubmitContact(d))
		r.Post("/newsletter", handlers.Subscribe(d))
	})

	r.With(mw.RateLimit(mw.RateLimitConfig{
		Group:             "login",
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRefillPerMin,
		TrustProxy:        d.TrustProxy,
	})).Post("/admin/login", handlers.Login(d))
}
