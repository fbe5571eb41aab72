package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akari-dl/hondana/internal/api"
	"github.com/akari-dl/hondana/internal/core"
	"github.com/akari-dl/hondana/internal/downloader/providers"
	"github.com/akari-dl/hondana/internal/downloader/providers/mockhub"
	"github.com/akari-dl/hondana/internal/jobs"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New()
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// Register all available downloader providers here.
	providers.Register(mockhub.New())

	// Watch the download root so out-of-band changes show up without
	// waiting out the cache TTL.
	if err := app.Watcher.Start(); err != nil {
		log.Printf("Warning: failed to start file watcher: %v", err)
	}

	// Periodic warm scan keeps the listing cache populated.
	scheduler := jobs.Start(app.Library, app.Config.WarmInterval)
	defer scheduler.Stop()

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	// Start the server in a goroutine so it doesn't block.
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Wait for an interrupt signal. The /api/shutdown endpoint funnels
	// into the same path by signalling the process.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a context with a timeout to allow existing connections to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
