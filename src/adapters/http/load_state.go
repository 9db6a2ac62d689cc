package http

import (
	"log"
	"net/http"
	"strconv"
)

func (s *Server) LoadState(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.PathValue("userId")
	if userIDStr == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid User ID format")
		return
	}

	document, err := s.stateService.LoadState(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to load state for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Load failed")
		return
	}

	writeJSON(w, http.StatusOK, document)
}
