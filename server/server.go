// Package server renders the admin console: gin routes, the per-request
// session middleware, and the four views backed by the game backend's
// admin API.
package server

import (
	"github.com/termle/admin-console/api"
	"github.com/termle/admin-console/logger"
	"github.com/termle/admin-console/session"
)

// Server holds the wired dependencies of the console.
type Server struct {
	cfg      *AppConfig
	api      *api.Client
	sessions *session.Controller
	log      *logger.Logger
}

// New assembles a Server from already-constructed parts.
func New(cfg *AppConfig, client *api.Client, sessions *session.Controller, log *logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		api:      client,
		sessions: sessions,
		log:      log,
	}
}
