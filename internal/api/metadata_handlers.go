// Handlers for the user-editable metadata overlay.

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akari-dl/hondana/internal/metadata"
)

// handleUpdateMetadata merges an arbitrary attribute record into one
// manga's metadata. The payload must carry an "id" key; everything
// else is stored verbatim.
func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	id, _ := payload["id"].(string)
	if id == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing ID")
		return
	}

	rec, err := s.app.Meta.Upsert(id, metadata.Record(payload))
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to save metadata")
		return
	}
	// The next listing must reflect the change immediately.
	s.app.Library.Cache().Clear()

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"metadata": rec,
	})
}

// BatchMetadataRequest carries multiple updates, each with its own
// "id" key.
type BatchMetadataRequest struct {
	Updates []metadata.Record `json:"updates"`
}

func (s *Server) handleUpdateMetadataBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	count, err := s.app.Meta.UpsertBatch(req.Updates)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to save metadata")
		return
	}
	s.app.Library.Cache().Clear()

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"updated": count,
	})
}

// handleGetMetadata returns one raw record; absent IDs read as an
// empty record.
func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	RespondWithJSON(w, http.StatusOK, s.app.Meta.Get(id))
}

// handleSyncNames resynchronizes metadata titles from the first
// chapter folder of every manga.
func (s *Server) handleSyncNames(w http.ResponseWriter, r *http.Request) {
	count, err := s.app.Library.SyncTitles()
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to sync names")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
}
