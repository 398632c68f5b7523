package server

import (
	"net/http"

	"github.com/jonathan/internship-board/internal/types"
)

// ---------------------------------------------------------------------
// Resume Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	resume, err := s.store.CreateResume(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if resume == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "resume", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResumeAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var update types.ResumeAnalysisUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := update.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	resume, err := s.store.UpdateResumeAnalysis(r.Context(), id, &update)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if resume == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "resume", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleListUserResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.ListResumesByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resumes)
}
