package main

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kurobon/gitview/internal/config"
	"github.com/kurobon/gitview/internal/server"
	"github.com/kurobon/gitview/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("configuration problems, using defaults where invalid", "err", err)
	}
	config.Global = cfg

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetReportTimestamp(true)

	manager := state.NewManager()
	if cfg.DefaultRepo != "" {
		if _, err := manager.Open(cfg.DefaultRepo); err != nil {
			log.Warn("default repository unavailable", "repo", cfg.DefaultRepo, "err", err)
		} else {
			log.Info("default repository ready", "repo", cfg.DefaultRepo)
		}
	}

	srv := server.NewServer(manager, cfg)

	log.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
