// Package content exposes typed views over the sections of the shared Document.
//
// Reads go straight to a snapshot. Every write goes through the guard.
package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/sitecms/internal/guard"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// Collections bundles the four resource collections over one guard.
type Collections struct {
	Messages    *Messages
	Newsletters *Newsletters
	Settings    *Settings
	SMTP        *SMTP
}

// New wires every collection to g.
func New(g *guard.Guard, defaultCompany string, log logger.Logger) *Collections {
	stamp := stamper{now: time.Now, newID: uuid.NewString}
	log = logger.Component(log, "content")
	return &Collections{
		Messages:    &Messages{guard: g, stamp: stamp, logger: log},
		Newsletters: &Newsletters{guard: g, stamp: stamp, logger: log},
		Settings:    &Settings{guard: g, defaultCompany: defaultCompany},
		SMTP:        &SMTP{guard: g},
	}
}

// stamper generates the server-side id and timestamp of new entries.
type stamper struct {
	now   func() time.Time
	newID func() string
}
