// Package testutil provides helpers for setting up a test environment.
package testutil

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/akari-dl/hondana/internal/api"
	"github.com/akari-dl/hondana/internal/config"
	"github.com/akari-dl/hondana/internal/core"
	"github.com/akari-dl/hondana/internal/downloader/providers"
	"github.com/akari-dl/hondana/internal/downloader/providers/mockhub"
)

// TestConfig returns a config rooted in a fresh temp directory.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Port:     8000,
		CacheTTL: 300,
		Provider: "mockhub",
	}
	cfg.Library.Path = filepath.Join(dir, "downloads")
	cfg.Metadata.Path = filepath.Join(dir, "metadata.json")
	cfg.Settings.Path = filepath.Join(dir, "settings.json")
	return cfg
}

// SetupTestApp creates an App backed by temp paths with the mockhub
// provider registered.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	providers.UnregisterAll()
	providers.Register(mockhub.New())

	app, err := core.NewWithConfig(TestConfig(t))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

// SetupTestServer creates a test server with a full App instance. It
// returns the app and the server for making requests.
func SetupTestServer(t *testing.T) (*core.App, *httptest.Server) {
	t.Helper()
	app := SetupTestApp(t)
	ts := httptest.NewServer(api.NewServer(app).Router())
	t.Cleanup(ts.Close)
	return app, ts
}
