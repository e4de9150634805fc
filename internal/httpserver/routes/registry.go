package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
)

// APIPrefix is where every Register'd registrar is mounted.
const APIPrefix = "/api"

type Registrar func(r chi.Router, d deps.Deps)

type entry struct {
	reg  Registrar
	root bool
}

var registry []entry

// Register adds a registrar mounted under APIPrefix.
func Register(reg Registrar) {
	registry = append(registry, entry{reg: reg})
}

// RegisterRoot adds a registrar mounted at the server root (probes, metrics, static files).
func RegisterRoot(reg Registrar) {
	registry = append(registry, entry{reg: reg, root: true})
}

// Called once from httpserver.NewRouter()
func RegisterAll(r chi.Router, d deps.Deps) {
	r.Route(APIPrefix, func(api chi.Router) {
		for _, e := range registry {
			if !e.root {
				e.reg(api, d)
			}
		}
	})
	for _, e := range registry {
		if e.root {
			e.reg(r, d)
		}
	}
}
