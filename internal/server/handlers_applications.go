package server

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/internship-board/internal/ranking"
	"github.com/jonathan/internship-board/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req types.CreateApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	internship, resume, err := s.lookupPair(r.Context(), req.InternshipID, req.ResumeID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if req.MatchScore == nil {
		score := ranking.Score(resume.Skills, internship.Skills)
		req.MatchScore = &score
	}

	application, err := s.store.CreateApplication(r.Context(), &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, application)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	application, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if application == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "application", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, application)
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req types.UpdateApplicationStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	application, err := s.store.UpdateApplicationStatus(r.Context(), id, req.Status)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if application == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "application", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, application)
}

func (s *Server) handleListUserApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.store.ListApplicationsByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, applications)
}

// lookupPair fetches an internship and a resume concurrently. Either one missing is an ErrNotFound.
func (s *Server) lookupPair(ctx context.Context, internshipID, resumeID string) (*types.Internship, *types.Resume, error) {
	var (
		internship *types.Internship
		resume     *types.Resume
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		internship, err = s.store.GetInternship(gCtx, internshipID)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = s.store.GetResume(gCtx, resumeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if internship == nil {
		return nil, nil, &ErrNotFound{Resource: "internship", ID: internshipID}
	}
	if resume == nil {
		return nil, nil, &ErrNotFound{Resource: "resume", ID: resumeID}
	}
	return internship, resume, nil
}
