package ranking

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/internship-board/internal/types"
)

// ResumeRepository looks up resumes. GetResume returns (nil, nil) when the resume does not exist.
type ResumeRepository interface {
	GetResume(ctx context.Context, id string) (*types.Resume, error)
}

// InternshipRepository lists the internships open for matching, in a stable order.
type InternshipRepository interface {
	ListActiveInternships(ctx context.Context) ([]types.Internship, error)
}

// Outcome classifies a RankForResume call.
type Outcome string

const (
	OutcomeRanked        Outcome = "ranked"
	OutcomeUnknownResume Outcome = "unknown_resume"
	OutcomeError         Outcome = "error"
)

// Observer is told the outcome of every RankForResume call and how many internships were scored.
type Observer func(outcome Outcome, candidates int)

// Option configures a Ranker.
type Option func(*Ranker)

// WithObserver registers an observer for ranking outcomes.
func WithObserver(o Observer) Option {
	return func(r *Ranker) {
		r.observe = o
	}
}

// Ranker ranks active internships for a resume.
type Ranker struct {
	resumes     ResumeRepository
	internships InternshipRepository
	observe     Observer
}

// NewRanker creates a Ranker reading from the given repositories.
func NewRanker(resumes ResumeRepository, internships InternshipRepository, opts ...Option) *Ranker {
	r := &Ranker{
		resumes:     resumes,
		internships: internships,
		observe:     func(Outcome, int) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RankForResume scores every active internship against the resume's skills and returns them
// best match first. An unknown resume yields an empty result, not an error.
// Repository errors are returned as-is.
func (r *Ranker) RankForResume(ctx context.Context, resumeID string) ([]types.InternshipMatch, error) {
	var (
		resume      *types.Resume
		internships []types.Internship
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resume, err = r.resumes.GetResume(gCtx, resumeID)
		return err
	})
	g.Go(func() error {
		var err error
		internships, err = r.internships.ListActiveInternships(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		r.observe(OutcomeError, 0)
		return nil, err
	}

	if resume == nil {
		r.observe(OutcomeUnknownResume, 0)
		return []types.InternshipMatch{}, nil
	}

	r.observe(OutcomeRanked, len(internships))
	return RankInternships(resume.Skills, internships), nil
}

// RankInternships annotates each internship with its match against skills and sorts the
// result by score, highest first. Equal scores keep their input order.
func RankInternships(skills []string, internships []types.Internship) []types.InternshipMatch {
	ranked := make([]types.InternshipMatch, 0, len(internships))
	for _, internship := range internships {
		m := Evaluate(skills, internship.Skills)
		ranked = append(ranked, types.InternshipMatch{
			Internship:      internship,
			MatchScore:      m.Score,
			MissingKeywords: m.Missing,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	return ranked
}
