package core

import (
	"fmt"
	"os"
	"time"

	"github.com/akari-dl/hondana/internal/config"
	"github.com/akari-dl/hondana/internal/downloader"
	"github.com/akari-dl/hondana/internal/library"
	"github.com/akari-dl/hondana/internal/logbuf"
	"github.com/akari-dl/hondana/internal/metadata"
	"github.com/akari-dl/hondana/internal/models"
	"github.com/akari-dl/hondana/internal/settings"
	"github.com/akari-dl/hondana/internal/websocket"
)

// App holds the process-scoped services shared between the server, the
// background worker and the CLI. Everything is constructed once here
// and injected; nothing is ambient.
type App struct {
	Config     *config.Config
	Logs       *logbuf.Buffer
	Hub        *websocket.Hub
	Meta       *metadata.Store
	Settings   *settings.Service
	Library    *library.Service
	Downloader *downloader.Orchestrator
	Watcher    *library.Watcher
}

// New sets up and returns a new App instance from the on-disk
// configuration.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig wires all services from an already-built config. Tests
// use it directly with temp paths.
func NewWithConfig(cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.Library.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download root: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	logs := logbuf.New(logbuf.DefaultCapacity)
	logs.OnAppend(func(line string) {
		hub.BroadcastJSON(models.LogEvent{Line: line})
	})

	meta := metadata.NewStore(cfg.Metadata.Path)
	settingsSvc := settings.NewService(cfg.Settings.Path)

	catalog := library.NewCatalog(cfg.Library.Path)
	cache := library.NewCache(time.Duration(cfg.CacheTTL) * time.Second)
	librarySvc := library.NewService(catalog, cache, meta)

	orch := downloader.NewOrchestrator(cfg.Library.Path, cfg.Provider, meta, cache, logs, settingsSvc)

	return &App{
		Config:     cfg,
		Logs:       logs,
		Hub:        hub,
		Meta:       meta,
		Settings:   settingsSvc,
		Library:    librarySvc,
		Downloader: orch,
		Watcher:    library.NewWatcher(cfg.Library.Path, cache),
	}, nil
}

// Close releases the application's background resources.
func (a *App) Close() {
	if a.Watcher != nil {
		a.Watcher.Stop()
	}
}
