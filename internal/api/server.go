// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/akari-dl/hondana/internal/core"
	"github.com/akari-dl/hondana/internal/library"
)

// Server holds the dependencies for our API.
type Server struct {
	app *core.App
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{app: app}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// The service is consumed by local frontends on other ports.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Library Routes
		r.Get("/library", s.handleGetLibrary)
		r.Get("/manga/{name}", s.handleGetMangaDetail)
		r.Post("/manga/delete", s.handleDeleteManga)
		r.Get("/thumbnail", s.handleGetThumbnail)

		// Metadata Routes
		r.Post("/metadata", s.handleUpdateMetadata)
		r.Post("/metadata/batch", s.handleUpdateMetadataBatch)
		r.Post("/metadata/sync-names", s.handleSyncNames)
		r.Get("/metadata/{id}", s.handleGetMetadata)

		// Downloader Routes
		r.Post("/download/batch", s.handleDownloadBatch)
		r.Get("/logs", s.handleGetLogs)
		r.Get("/search", s.handleSearch)

		// Settings Routes
		r.Get("/settings", s.handleGetSettings)
		r.Post("/settings", s.handleUpdateSettings)

		r.Post("/shutdown", s.handleShutdown)
	})

	// WebSocket route
	r.Get("/ws/progress", func(w http.ResponseWriter, r *http.Request) {
		s.app.Hub.ServeWs(w, r)
	})

	// Static file mount for downloaded pages.
	FileServer(r, library.FilesMount, http.Dir(s.app.Config.Library.Path))

	return r
}

// FileServer conveniently sets up a static file server that doesn't list directories.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	fs := http.StripPrefix(path, http.FileServer(root))
	r.Get(path+"/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})
}
