package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"skillgraphpoc/src/domain"
)

func (s *Server) SaveState(w http.ResponseWriter, r *http.Request) {
	var request SaveStateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, "Missing userId")
		return
	}

	err := s.stateService.SaveState(r.Context(), MapRequestToDomain(request))
	if err != nil {
		if errors.Is(err, domain.ErrMissingUserID) {
			writeError(w, http.StatusBadRequest, "Missing userId")
			return
		}

		log.Printf("ERROR: Failed to save state: %v", err)
		writeError(w, http.StatusInternalServerError, "Save failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
