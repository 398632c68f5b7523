package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/internship-board/internal/types"
)

// MemStore is a Store kept entirely in memory. Records are returned as copies,
// and list operations return records in insertion order unless stated otherwise.
type MemStore struct {
	mu  sync.RWMutex
	now func() time.Time

	users        map[string]*types.User
	resumes      map[string]*types.Resume
	internships  map[string]*types.Internship
	applications map[string]*types.Application
	analyses     map[string]*types.ResumeAnalysis

	resumeOrder      []string
	internshipOrder  []string
	applicationOrder []string
	analysisOrder    []string
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		now:          time.Now,
		users:        make(map[string]*types.User),
		resumes:      make(map[string]*types.Resume),
		internships:  make(map[string]*types.Internship),
		applications: make(map[string]*types.Application),
		analyses:     make(map[string]*types.ResumeAnalysis),
	}
}

// NewSeededMemStore creates an in-memory store holding the sample internships.
func NewSeededMemStore() (*MemStore, error) {
	s := NewMemStore()
	internships, err := SampleInternships(s.now())
	if err != nil {
		return nil, err
	}
	for i := range internships {
		if err := s.UpsertInternship(context.Background(), &internships[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Ping always succeeds.
func (s *MemStore) Ping(_ context.Context) error {
	return nil
}

// --- users ---

// CreateUser stores a user, assigning its ID and creation time.
func (s *MemStore) CreateUser(_ context.Context, user *types.User) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, ErrEmailExists
		}
	}
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, ErrUsernameExists
		}
	}

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = s.now()
	s.users[created.ID] = &created

	out := created
	return &out, nil
}

// GetUser returns the user with the given ID.
func (s *MemStore) GetUser(_ context.Context, id string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// GetUserByUsername returns the user with the given username.
func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*types.User, error) {
	return s.findUser(func(u *types.User) bool { return u.Username == username }), nil
}

// GetUserByEmail returns the user with the given email, ignoring case.
func (s *MemStore) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	return s.findUser(func(u *types.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (s *MemStore) findUser(match func(*types.User) bool) *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			out := *u
			return &out
		}
	}
	return nil
}

// --- resumes ---

// CreateResume stores a resume, assigning its ID and upload time.
func (s *MemStore) CreateResume(_ context.Context, req *types.CreateResumeRequest) (*types.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &types.Resume{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		FileName:      req.FileName,
		FilePath:      req.FilePath,
		Content:       req.Content,
		Skills:        cloneStrings(req.Skills),
		Experience:    req.Experience,
		Education:     req.Education,
		AnalysisScore: req.AnalysisScore,
		Keywords:      cloneStrings(req.Keywords),
		UploadedAt:    s.now(),
	}
	s.resumes[r.ID] = r
	s.resumeOrder = append(s.resumeOrder, r.ID)

	return cloneResume(r), nil
}

// GetResume returns the resume with the given ID.
func (s *MemStore) GetResume(_ context.Context, id string) (*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	return cloneResume(r), nil
}

// ListResumesByUser returns the user's resumes in upload order.
func (s *MemStore) ListResumesByUser(_ context.Context, userID string) ([]types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Resume, 0)
	for _, id := range s.resumeOrder {
		if r := s.resumes[id]; r.UserID == userID {
			out = append(out, *cloneResume(r))
		}
	}
	return out, nil
}

// UpdateResumeAnalysis merges update into the stored resume.
func (s *MemStore) UpdateResumeAnalysis(_ context.Context, id string, update *types.ResumeAnalysisUpdate) (*types.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	update.Apply(r)
	return cloneResume(r), nil
}

// --- internships ---

// ListActiveInternships returns active internships in insertion order.
func (s *MemStore) ListActiveInternships(_ context.Context) ([]types.Internship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Internship, 0, len(s.internshipOrder))
	for _, id := range s.internshipOrder {
		if i := s.internships[id]; i.IsActive {
			out = append(out, *cloneInternship(i))
		}
	}
	return out, nil
}

// GetInternship returns the internship with the given ID, active or not.
func (s *MemStore) GetInternship(_ context.Context, id string) (*types.Internship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.internships[id]
	if !ok {
		return nil, nil
	}
	return cloneInternship(i), nil
}

// SearchInternships returns the active internships matching filter.
func (s *MemStore) SearchInternships(ctx context.Context, filter SearchFilter) ([]types.Internship, error) {
	active, err := s.ListActiveInternships(ctx)
	if err != nil {
		return nil, err
	}
	return FilterInternships(active, filter), nil
}

// UpsertInternship inserts or replaces an internship by ID. A replaced internship keeps its position.
// An empty ID is assigned a new one.
func (s *MemStore) UpsertInternship(_ context.Context, internship *types.Internship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if internship.ID == "" {
		internship.ID = uuid.NewString()
	}
	if internship.PostedAt.IsZero() {
		internship.PostedAt = s.now()
	}
	if _, exists := s.internships[internship.ID]; !exists {
		s.internshipOrder = append(s.internshipOrder, internship.ID)
	}
	s.internships[internship.ID] = cloneInternship(internship)
	return nil
}

// --- applications ---

// CreateApplication stores an application. Status defaults to pending.
func (s *MemStore) CreateApplication(_ context.Context, req *types.CreateApplicationRequest) (*types.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := req.Status
	if status == "" {
		status = types.ApplicationStatusPending
	}
	now := s.now()
	a := &types.Application{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		InternshipID: req.InternshipID,
		ResumeID:     req.ResumeID,
		Status:       status,
		MatchScore:   req.MatchScore,
		CoverLetter:  req.CoverLetter,
		AppliedAt:    now,
		UpdatedAt:    now,
	}
	s.applications[a.ID] = a
	s.applicationOrder = append(s.applicationOrder, a.ID)

	out := *a
	return &out, nil
}

// GetApplication returns the application joined with its internship and resume.
// It returns nil when either of those no longer exists.
func (s *MemStore) GetApplication(_ context.Context, id string) (*types.ApplicationWithDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	details, ok := s.withDetails(a)
	if !ok {
		return nil, nil
	}
	return &details, nil
}

// ListApplicationsByUser returns the user's applications newest first,
// skipping any whose internship or resume is gone.
func (s *MemStore) ListApplicationsByUser(_ context.Context, userID string) ([]types.ApplicationWithDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ApplicationWithDetails, 0)
	for _, id := range s.applicationOrder {
		a := s.applications[id]
		if a.UserID != userID {
			continue
		}
		if details, ok := s.withDetails(a); ok {
			out = append(out, details)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out, nil
}

// UpdateApplicationStatus sets the status and bumps the update time.
func (s *MemStore) UpdateApplicationStatus(_ context.Context, id, status string) (*types.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	a.UpdatedAt = s.now()

	out := *a
	return &out, nil
}

// caller holds s.mu
func (s *MemStore) withDetails(a *types.Application) (types.ApplicationWithDetails, bool) {
	internship, ok := s.internships[a.InternshipID]
	if !ok {
		return types.ApplicationWithDetails{}, false
	}
	resume, ok := s.resumes[a.ResumeID]
	if !ok {
		return types.ApplicationWithDetails{}, false
	}
	return types.ApplicationWithDetails{
		Application: *a,
		Internship:  *cloneInternship(internship),
		Resume:      *cloneResume(resume),
	}, true
}

// --- resume analyses ---

// CreateResumeAnalysis stores an analysis, assigning its ID and creation time.
func (s *MemStore) CreateResumeAnalysis(_ context.Context, req *types.CreateResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &types.ResumeAnalysis{
		ID:                   uuid.NewString(),
		ResumeID:             req.ResumeID,
		InternshipID:         req.InternshipID,
		MissingKeywords:      cloneStrings(req.MissingKeywords),
		Suggestions:          cloneStrings(req.Suggestions),
		TechnicalSkillsScore: req.TechnicalSkillsScore,
		ExperienceScore:      req.ExperienceScore,
		AchievementsScore:    req.AchievementsScore,
		OverallScore:         req.OverallScore,
		CreatedAt:            s.now(),
	}
	s.analyses[a.ID] = a
	s.analysisOrder = append(s.analysisOrder, a.ID)

	return cloneAnalysis(a), nil
}

// GetResumeAnalysis returns the first analysis stored for the resume.
// A non-empty internshipID restricts the lookup to analyses against that internship.
func (s *MemStore) GetResumeAnalysis(_ context.Context, resumeID, internshipID string) (*types.ResumeAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.analysisOrder {
		a := s.analyses[id]
		if a.ResumeID != resumeID {
			continue
		}
		if internshipID != "" && (a.InternshipID == nil || *a.InternshipID != internshipID) {
			continue
		}
		return cloneAnalysis(a), nil
	}
	return nil, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneResume(r *types.Resume) *types.Resume {
	out := *r
	out.Skills = cloneStrings(r.Skills)
	out.Keywords = cloneStrings(r.Keywords)
	return &out
}

func cloneInternship(i *types.Internship) *types.Internship {
	out := *i
	out.Requirements = cloneStrings(i.Requirements)
	out.Skills = cloneStrings(i.Skills)
	return &out
}

func cloneAnalysis(a *types.ResumeAnalysis) *types.ResumeAnalysis {
	out := *a
	out.MissingKeywords = cloneStrings(a.MissingKeywords)
	out.Suggestions = cloneStrings(a.Suggestions)
	return &out
}
