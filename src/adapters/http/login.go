package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"skillgraphpoc/src/domain"
)

type LoginResponseDTO struct {
	Success  bool   `json:"success"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	account, err := s.accountService.Authenticate(r.Context(), credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		log.Printf("ERROR: Failed to authenticate %q: %v", credentials.Username, err)
		writeError(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
		return
	}

	writeJSON(w, http.StatusOK, LoginResponseDTO{
		Success:  true,
		UserID:   account.ID,
		Username: account.Username,
	})
}
