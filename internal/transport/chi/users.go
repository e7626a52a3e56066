package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	domuser "github.com/ripple-forum/ripple/internal/domain/user"
)

type registerUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterUser handles POST /users: create or refresh an account.
func (s *Server) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	u, created, err := s.users.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, u)
}

// GetUser handles GET /users/{email} (guarded).
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Find(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /users (guarded).
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole handles PATCH /users/{email}/role (guarded).
func (s *Server) ChangeRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	if err := s.users.Promote(r.Context(), email, domuser.Role(req.Role)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": email, "role": req.Role})
}
