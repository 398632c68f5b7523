package server

import (
	"net/http"

	"github.com/jonathan/internship-board/internal/ranking"
	"github.com/jonathan/internship-board/internal/types"
)

// ---------------------------------------------------------------------
// Resume Analysis Handlers
// ---------------------------------------------------------------------

// handleCreateResumeAnalysis stores an analysis. When it targets an internship and carries no
// missing keywords, they are filled in from the resume's skills.
func (s *Server) handleCreateResumeAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResumeAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	if req.InternshipID != nil {
		internship, resume, err := s.lookupPair(r.Context(), *req.InternshipID, req.ResumeID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if req.MissingKeywords == nil {
			req.MissingKeywords = ranking.MissingKeywords(resume.Skills, internship.Skills)
		}
	} else {
		resume, err := s.store.GetResume(r.Context(), req.ResumeID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if resume == nil {
			s.handleError(w, r, &ErrNotFound{Resource: "resume", ID: req.ResumeID})
			return
		}
	}

	analysis, err := s.store.CreateResumeAnalysis(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, analysis)
}

func (s *Server) handleGetResumeAnalysis(w http.ResponseWriter, r *http.Request) {
	resumeID := r.PathValue("id")

	analysis, err := s.store.GetResumeAnalysis(r.Context(), resumeID, r.URL.Query().Get("internship_id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if analysis == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "resume analysis", ID: resumeID})
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}
