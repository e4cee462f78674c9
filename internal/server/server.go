package server

import (
	"log/slog"
	"net/http"

	"passphrasex/internal/authtoken"
	"passphrasex/internal/domain"
)

// Server serves the remote credential store API.
type Server struct {
	cfg      Config
	store    domain.RemoteStore
	verifier authtoken.Verifier
	limiter  *multiLimiter
	log      *slog.Logger
	mux      *http.ServeMux
}

// New builds a Server over store.
func New(store domain.RemoteStore, cfg Config) *Server {
	cfg.setDefaults()
	s := &Server{
		cfg:      cfg,
		store:    store,
		verifier: authtoken.Verifier{Tolerance: cfg.Tolerance, Now: cfg.Now},
		limiter:  newMultiLimiter(cfg.Rate, cfg.Burst, cfg.LimiterTTL, cfg.Now),
		log:      cfg.Logger,
		mux:      http.NewServeMux(),
	}

	// Public
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /users", s.handleCreateUser)

	// Token-guarded, scoped to {id}
	s.mux.Handle("POST /users/{id}/credentials", s.authed(s.handleCreateCredential))
	s.mux.Handle("GET /users/{id}/credentials", s.authed(s.handleListCredentials))
	s.mux.Handle("PUT /users/{id}/credentials/{cid}", s.authed(s.handleUpdateCredential))
	s.mux.Handle("DELETE /users/{id}/credentials/{cid}", s.authed(s.handleDeleteCredential))

	return s
}

// Handler returns the routed API wrapped in request-id, access-log and
// rate-limit middleware.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.accessLog(s.rateLimit(s.mux)))
}
