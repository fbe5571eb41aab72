// A handler file for all downloader-related API endpoints.

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akari-dl/hondana/internal/downloader/providers"
	"github.com/akari-dl/hondana/internal/models"
)

// searchResultCap bounds how many provider search hits are returned.
const searchResultCap = 30

// DownloadRequest is the expected structure for submitting a batch.
type DownloadRequest struct {
	AlbumIDs []string                `json:"album_ids"`
	Config   *models.DownloadOptions `json:"config"`
}

// handleDownloadBatch accepts a batch and returns immediately; the
// batch runs on a detached worker observed via /api/logs.
func (s *Server) handleDownloadBatch(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(req.AlbumIDs) == 0 {
		RespondWithError(w, http.StatusBadRequest, "No IDs provided")
		return
	}

	s.app.Downloader.RunBatch(req.AlbumIDs, req.Config)

	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"message": fmt.Sprintf("Started %d download task(s)", len(req.AlbumIDs)),
	})
}

func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string][]string{
		"logs": s.app.Logs.Snapshot(),
	})
}

// handleSearch proxies the provider's search. Provider failures
// degrade to an empty result set rather than an error status so the
// search box stays usable while the source is down.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing query")
		return
	}

	provider, ok := providers.Get(s.app.Config.Provider)
	if !ok {
		RespondWithJSON(w, http.StatusOK, map[string]any{
			"query":   query,
			"total":   0,
			"results": []models.AlbumSummary{},
			"error":   fmt.Sprintf("provider %q is not registered", s.app.Config.Provider),
		})
		return
	}

	results, err := provider.Search(query)
	if err != nil {
		RespondWithJSON(w, http.StatusOK, map[string]any{
			"query":   query,
			"total":   0,
			"results": []models.AlbumSummary{},
			"error":   err.Error(),
		})
		return
	}
	if len(results) > searchResultCap {
		results = results[:searchResultCap]
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"total":   len(results),
		"results": results,
	})
}
