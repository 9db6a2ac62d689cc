package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/services/accounts"
)

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(credentials); err != nil {
		writeError(w, http.StatusBadRequest, accounts.ErrMissingCredentials.Error())
		return
	}

	_, err := s.accountService.Register(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrMissingCredentials), errors.Is(err, accounts.ErrUsernameNotAllowed):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR: Failed to register %q: %v", credentials.Username, err)
			writeError(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
