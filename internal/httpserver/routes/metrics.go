package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/mw"
)

func init() { RegisterRoot(registerMetrics) }

func registerMetrics(r chi.Router, d deps.Deps) {
	if d.MetricsRegistry == nil {
		return
	}
	h := promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{Registry: d.MetricsRegistry})
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Handle("/metrics", h)
}
