package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/internship-board/internal/storage"
)

// ---------------------------------------------------------------------
// Internship Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListInternships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.SearchFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Location: strings.TrimSpace(q.Get("location")),
		Industry: strings.TrimSpace(q.Get("industry")),
	}

	internships, err := s.store.SearchInternships(r.Context(), filter)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, internships)
}

func (s *Server) handleGetInternship(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	internship, err := s.store.GetInternship(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if internship == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "internship", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, internship)
}

// handleResumeMatches ranks every active internship against the resume. An unknown resume yields an empty list.
func (s *Server) handleResumeMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.ranker.RankForResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, matches)
}
