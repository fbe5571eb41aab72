package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Settings.Load())
}

// handleUpdateSettings merges the posted sections over the current
// document and returns the result.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch map[string]map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := s.app.Settings.Update(patch)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}
