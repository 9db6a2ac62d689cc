package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"skillgraphpoc/src/services/accounts"
	"skillgraphpoc/src/services/state"

	"github.com/go-playground/validator/v10"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	mux            *http.ServeMux
	port           int
	validate       *validator.Validate
	stateService   *state.StateService
	accountService *accounts.AccountService
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	stateService *state.StateService,
	accountService *accounts.AccountService,
) *Server {
	server := &Server{
		mux:            http.NewServeMux(),
		port:           port,
		logger:         logger,
		validate:       validator.New(),
		stateService:   stateService,
		accountService: accountService,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.mux.HandleFunc("GET /api/state/{userId}", server.LoadState)
	server.mux.HandleFunc("GET /api/users/search", server.SearchUsers)

	// Rotas de Escrita
	server.mux.HandleFunc("POST /api/state/save", server.SaveState)
	server.mux.HandleFunc("POST /api/register", server.Register)
	server.mux.HandleFunc("POST /api/login", server.Login)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
