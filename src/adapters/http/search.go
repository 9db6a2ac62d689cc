package http

import (
	"log"
	"net/http"
)

// SearchUsers responde a projeção da conta ou o literal null quando não há
// match, o contrato que o caller usa para decidir se o peer é linkável.
func (s *Server) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	match, err := s.stateService.FindByUsername(r.Context(), query)
	if err != nil {
		log.Printf("ERROR: Failed to search for %q: %v", query, err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	if match == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, match)
}
