package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/internship-board/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResumes struct {
	resumes map[string]*types.Resume
	err     error
}

func (f *fakeResumes) GetResume(_ context.Context, id string) (*types.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resumes[id], nil
}

type fakeInternships struct {
	internships []types.Internship
	err         error
}

func (f *fakeInternships) ListActiveInternships(_ context.Context) ([]types.Internship, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.internships, nil
}

func fixtureInternships() []types.Internship {
	return []types.Internship{
		{ID: "1", Title: "Software Engineering Intern", Skills: []string{"React", "Node.js", "Azure", "TypeScript", "JavaScript", "Git"}, IsActive: true},
		{ID: "2", Title: "Data Science Intern", Skills: []string{"Python", "SQL", "TensorFlow", "Machine Learning", "Data Analysis", "Statistics"}, IsActive: true},
		{ID: "3", Title: "UX Design Intern", Skills: []string{"Figma", "Sketch", "Prototyping"}, IsActive: true},
		{ID: "4", Title: "Frontend Developer Intern", Skills: []string{"React", "JavaScript", "TypeScript", "CSS", "HTML", "Git", "Figma"}, IsActive: true},
		{ID: "5", Title: "Unlisted Skills Intern", Skills: nil, IsActive: true},
	}
}

func newFixtureRanker(skills []string) *Ranker {
	resumes := &fakeResumes{resumes: map[string]*types.Resume{
		"resume-1": {ID: "resume-1", Skills: skills},
	}}
	return NewRanker(resumes, &fakeInternships{internships: fixtureInternships()})
}

func TestRankForResume_SortedByScoreDescending(t *testing.T) {
	r := newFixtureRanker([]string{"JavaScript", "Python", "React", "Node.js", "Machine Learning", "Git"})

	ranked, err := r.RankForResume(context.Background(), "resume-1")
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	for i := 0; i+1 < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i].MatchScore, ranked[i+1].MatchScore)
	}

	// 4 of 6 covered (React, Node.js, JavaScript, Git)
	assert.Equal(t, "1", ranked[0].ID)
	assert.Equal(t, 67, ranked[0].MatchScore)
	assert.Equal(t, []string{"Azure", "TypeScript"}, ranked[0].MissingKeywords)
}

func TestRankForResume_AnnotatesEveryInternship(t *testing.T) {
	r := newFixtureRanker([]string{"Figma"})

	ranked, err := r.RankForResume(context.Background(), "resume-1")
	require.NoError(t, err)
	require.Len(t, ranked, len(fixtureInternships()))

	byID := make(map[string]types.InternshipMatch)
	for _, m := range ranked {
		byID[m.ID] = m
	}

	assert.Equal(t, 33, byID["3"].MatchScore)
	assert.Equal(t, []string{"Sketch", "Prototyping"}, byID["3"].MissingKeywords)

	// Internship without skills scores zero with nothing missing
	assert.Equal(t, 0, byID["5"].MatchScore)
	require.NotNil(t, byID["5"].MissingKeywords)
	assert.Empty(t, byID["5"].MissingKeywords)

	for _, m := range ranked {
		for _, missing := range m.MissingKeywords {
			assert.Contains(t, m.Skills, missing)
		}
	}
}

func TestRankForResume_TiesKeepRepositoryOrder(t *testing.T) {
	// Nothing matches, so every score is 0 and the original order must survive
	r := newFixtureRanker([]string{"Cobol"})

	ranked, err := r.RankForResume(context.Background(), "resume-1")
	require.NoError(t, err)

	ids := make([]string, len(ranked))
	for i, m := range ranked {
		ids[i] = m.ID
		assert.Equal(t, 0, m.MatchScore)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
}

func TestRankForResume_ResumeWithoutSkills(t *testing.T) {
	r := newFixtureRanker(nil)

	ranked, err := r.RankForResume(context.Background(), "resume-1")
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	for _, m := range ranked {
		assert.Equal(t, 0, m.MatchScore)
		if m.Skills == nil {
			assert.Empty(t, m.MissingKeywords)
		} else {
			assert.Equal(t, m.Skills, m.MissingKeywords)
		}
	}
}

func TestRankForResume_UnknownResume(t *testing.T) {
	r := newFixtureRanker([]string{"React"})

	ranked, err := r.RankForResume(context.Background(), "does-not-exist")
	require.NoError(t, err)
	require.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankForResume_NoInternships(t *testing.T) {
	resumes := &fakeResumes{resumes: map[string]*types.Resume{"r": {ID: "r", Skills: []string{"Go"}}}}
	r := NewRanker(resumes, &fakeInternships{})

	ranked, err := r.RankForResume(context.Background(), "r")
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankForResume_PropagatesRepositoryErrors(t *testing.T) {
	resumeErr := errors.New("resume store unavailable")
	internshipErr := errors.New("internship store unavailable")

	t.Run("resume lookup fails", func(t *testing.T) {
		r := NewRanker(&fakeResumes{err: resumeErr}, &fakeInternships{internships: fixtureInternships()})
		ranked, err := r.RankForResume(context.Background(), "resume-1")
		assert.Nil(t, ranked)
		assert.Same(t, resumeErr, err)
	})

	t.Run("internship listing fails", func(t *testing.T) {
		resumes := &fakeResumes{resumes: map[string]*types.Resume{"resume-1": {ID: "resume-1"}}}
		r := NewRanker(resumes, &fakeInternships{err: internshipErr})
		ranked, err := r.RankForResume(context.Background(), "resume-1")
		assert.Nil(t, ranked)
		assert.Same(t, internshipErr, err)
	})
}

func TestRankInternships_DoesNotMutateInput(t *testing.T) {
	internships := fixtureInternships()
	ranked := RankInternships([]string{"Python", "SQL"}, internships)

	require.Len(t, ranked, len(internships))
	assert.Equal(t, "2", ranked[0].ID)
	assert.Equal(t, "1", internships[0].ID)
}

func TestRankForResume_ReportsOutcome(t *testing.T) {
	type observation struct {
		outcome    Outcome
		candidates int
	}

	var seen []observation
	observer := WithObserver(func(outcome Outcome, candidates int) {
		seen = append(seen, observation{outcome, candidates})
	})

	resumes := &fakeResumes{resumes: map[string]*types.Resume{"resume-1": {ID: "resume-1", Skills: []string{"Go"}}}}
	r := NewRanker(resumes, &fakeInternships{internships: fixtureInternships()}, observer)

	_, err := r.RankForResume(context.Background(), "resume-1")
	require.NoError(t, err)
	_, err = r.RankForResume(context.Background(), "missing")
	require.NoError(t, err)

	failing := NewRanker(&fakeResumes{err: errors.New("down")}, &fakeInternships{}, observer)
	_, err = failing.RankForResume(context.Background(), "resume-1")
	require.Error(t, err)

	assert.Equal(t, []observation{
		{OutcomeRanked, 5},
		{OutcomeUnknownResume, 0},
		{OutcomeError, 0},
	}, seen)
}
