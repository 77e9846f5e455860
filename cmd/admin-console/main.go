package main

import (
	"github.com/termle/admin-console/api"
	"github.com/termle/admin-console/logger"
	"github.com/termle/admin-console/server"
	"github.com/termle/admin-console/session"
	"github.com/termle/admin-console/store"
)

func main() {
	cfg := server.GetConfig()
	log := logger.New(cfg.Log.Level)

	var (
		creds  store.CredentialStore
		nonces store.NonceStore
	)
	switch cfg.Store.Backend {
	case "valkey":
		vs, err := store.NewValkeyStore(cfg.Store.ValkeyAddr, cfg.Store.ValkeyPrefix, cfg.CredentialTTL(), cfg.NonceTTL())
		if err != nil {
			log.Fatal("valkey store init failed", "addr", cfg.Store.ValkeyAddr, "error", err)
		}
		defer vs.Close()
		creds, nonces = vs, vs
	default:
		bs, err := store.NewBuntStore(cfg.Store.Path, cfg.CredentialTTL(), cfg.NonceTTL())
		if err != nil {
			log.Fatal("buntdb store init failed", "path", cfg.Store.Path, "error", err)
		}
		defer bs.Close()
		creds, nonces = bs, bs
	}

	client, err := api.NewClient(cfg.Backend.BaseURL)
	if err != nil {
		log.Fatal("backend client init failed", "base_url", cfg.Backend.BaseURL, "error", err)
	}

	sessions := session.NewController(client, creds, nonces, cfg.OAuth.RedirectURL, log)
	srv := server.New(cfg, client, sessions, log)
	r := server.NewGinEngine(srv)

	log.Info("admin console listening", "addr", cfg.Listen, "backend", cfg.Backend.BaseURL, "env", cfg.Env)
	if err := r.Run(cfg.Listen); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
