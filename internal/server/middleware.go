package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"passphrasex/internal/authtoken"
	"passphrasex/internal/domain"
)

type ctxKey int

const requestIDKey ctxKey = 1

const requestIDHeader = "X-Request-ID"

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID propagates an incoming X-Request-ID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusRecorder captures the status and size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info("request",
			"id", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote", clientIP(r, s.cfg.TrustedProxies),
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start),
		)
	})
}

// rateLimit rejects clients that exceed their token bucket.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientIP(r, s.cfg.TrustedProxies)) {
			tooMany(w, 1)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authed verifies the bearer token against the {id} path value. The client
// only ever learns "invalid credentials".
func (s *Server) authed(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := domain.Identity(r.PathValue("id"))
		err := s.authenticate(id, r.Header.Get("Authorization"))
		if err != nil {
			s.log.Debug("auth rejected", "id", RequestID(r.Context()), "error", err)
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		next(w, r)
	})
}

func (s *Server) authenticate(id domain.Identity, header string) error {
	if id == "" {
		return domain.ErrInvalidToken
	}
	token, err := authtoken.FromHeader(header)
	if err != nil {
		return err
	}
	return s.verifier.Verify(id, token)
}
