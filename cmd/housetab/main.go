package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gsapre/housetab/internal/api"
	"github.com/gsapre/housetab/internal/cache"
	"github.com/gsapre/housetab/internal/config"
	"github.com/gsapre/housetab/internal/logging"
	"github.com/gsapre/housetab/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	client := api.NewClient(cfg.Server.BaseURL, logger)

	// The snapshot cache is best effort: run without it if it fails.
	var snap *cache.Cache
	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		logger.Warn("mkdir cache dir", zap.Error(err))
	} else if snap, err = cache.Open(cfg.Cache.Path); err != nil {
		logger.Warn("open snapshot cache", zap.Error(err))
		snap = nil
	}
	if snap != nil {
		defer snap.Close()
	}

	p := tea.NewProgram(tui.New(cfg, client, snap, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
