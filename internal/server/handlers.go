package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"passphrasex/internal/crypto"
	"passphrasex/internal/domain"
)

type createUserRequest struct {
	ID domain.Identity `json:"id"`
}

type updateRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := crypto.ParseVerifyingKey(req.ID); err != nil {
		writeError(w, http.StatusBadRequest, "id is not a verifying key")
		return
	}
	if err := s.store.CreateUser(r.Context(), req.ID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleCreateCredential(w http.ResponseWriter, r *http.Request) {
	owner := domain.Identity(r.PathValue("id"))
	var c domain.Credential
	if !s.decode(w, r, &c) {
		return
	}
	if c.OwnerID != "" && c.OwnerID != owner {
		writeError(w, http.StatusBadRequest, "user_id does not match path")
		return
	}
	if c.ID == "" || c.Site == "" {
		writeError(w, http.StatusBadRequest, "_id and site are required")
		return
	}
	c.OwnerID = owner
	if err := s.store.CreateCredential(r.Context(), c); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := s.store.ListCredentials(r.Context(), domain.Identity(r.PathValue("id")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if creds == nil {
		creds = []domain.Credential{}
	}
	writeJSON(w, creds)
}

func (s *Server) handleUpdateCredential(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.store.UpdateCredential(
		r.Context(),
		domain.Identity(r.PathValue("id")),
		domain.CredentialID(r.PathValue("cid")),
		req.Password,
	)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteCredential(
		r.Context(),
		domain.Identity(r.PathValue("id")),
		domain.CredentialID(r.PathValue("cid")),
	)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, answering 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("bad request body: %v", err))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("storage failure", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	writeError(w, code, msg)
}
