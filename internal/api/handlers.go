package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akari-dl/hondana/internal/library"
	"github.com/akari-dl/hondana/internal/util"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Service is running",
	})
}

// handleGetLibrary serves the merged library listing, from cache while
// fresh. `?refresh=true` forces a rescan.
func (s *Server) handleGetLibrary(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	mangas, err := s.app.Library.Listing(refresh)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Scan failed: %v", err))
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{"mangas": mangas})
}

// handleGetMangaDetail performs a full scan of one manga folder.
func (s *Server) handleGetMangaDetail(w http.ResponseWriter, r *http.Request) {
	// Folder names may contain special characters, so the parameter
	// needs to be decoded.
	name, _ := url.PathUnescape(chi.URLParam(r, "name"))
	if err := util.ValidateMangaName(name); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid manga name")
		return
	}

	manga, err := s.app.Library.Detail(name)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "Manga not found")
		} else {
			RespondWithError(w, http.StatusInternalServerError, "Failed to parse manga")
		}
		return
	}
	RespondWithJSON(w, http.StatusOK, manga)
}

// DeleteRequest identifies a manga by its on-disk folder name.
type DeleteRequest struct {
	MangaName string `json:"manga_name"`
}

func (s *Server) handleDeleteManga(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := util.ValidateMangaName(req.MangaName); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid manga name")
		return
	}

	if err := s.app.Library.Delete(req.MangaName); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "Manga not found")
		} else {
			RespondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Delete failed: %v", err))
		}
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": fmt.Sprintf("Deleted %s", req.MangaName),
	})
}

// handleGetThumbnail renders a scaled-down JPEG of a manga's cover.
func (s *Server) handleGetThumbnail(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := util.ValidateMangaName(name); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid manga name")
		return
	}

	coverPath, err := s.app.Library.Catalog().CoverFile(name)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Cover not found")
		return
	}
	data, err := os.ReadFile(coverPath)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, "Cover not found")
		return
	}
	thumb, err := library.RenderThumbnail(data)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to render thumbnail")
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(thumb)
}

// handleShutdown acknowledges the request, then signals the process so
// the server's usual signal handling performs the exit.
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	pid := os.Getpid()
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"status": "shutting_down",
		"pid":    pid,
	})
	go func() {
		time.Sleep(500 * time.Millisecond)
		if p, err := os.FindProcess(pid); err == nil {
			p.Signal(syscall.SIGTERM)
		}
	}()
}
