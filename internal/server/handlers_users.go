package server

import (
	"net/http"

	"github.com/jonathan/internship-board/internal/types"
)

// ---------------------------------------------------------------------
// User Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	user, err := s.userService.Register(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if user == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "user", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}
