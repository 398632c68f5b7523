//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/internship-board/internal/ranking"
	"github.com/jonathan/internship-board/internal/storage"
	"github.com/jonathan/internship-board/internal/types"
)

// getTestDB connects to TEST_DATABASE_URL, applies the schema and empties every table.
func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	_, err = db.pool.Exec(ctx, "TRUNCATE users, resumes, internships, applications, resume_analyses RESTART IDENTITY")
	require.NoError(t, err)

	return db
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	require.NoError(t, db.Migrate(context.Background()))
	require.NoError(t, db.Ping(context.Background()))
}

func TestIntegration_Users(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	created, err := db.CreateUser(ctx, &types.User{Username: "grace", Email: "Grace@Example.com", PasswordHash: "hash", FirstName: strPtr("Grace")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "hash", created.PasswordHash)

	byEmail, err := db.GetUserByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = db.CreateUser(ctx, &types.User{Username: "other", Email: "GRACE@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, storage.ErrEmailExists)

	_, err = db.CreateUser(ctx, &types.User{Username: "grace", Email: "new@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, storage.ErrUsernameExists)

	missing, err := db.GetUser(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_ResumesAndRanking(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	internships, err := storage.SampleInternships(time.Now())
	require.NoError(t, err)
	for i := range internships {
		require.NoError(t, db.UpsertInternship(ctx, &internships[i]))
	}

	active, err := db.ListActiveInternships(ctx)
	require.NoError(t, err)
	require.Len(t, active, 20)
	assert.Equal(t, "1", active[0].ID)
	assert.Equal(t, "20", active[19].ID)

	resume, err := db.CreateResume(ctx, &types.CreateResumeRequest{
		UserID:   "u1",
		FileName: "resume.pdf",
		FilePath: "/uploads/resume.pdf",
		Skills:   []string{"React", "Node.js", "Git"},
	})
	require.NoError(t, err)

	ranked, err := ranking.NewRanker(db, db).RankForResume(ctx, resume.ID)
	require.NoError(t, err)
	require.Len(t, ranked, 20)
	for i := 0; i+1 < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i].MatchScore, ranked[i+1].MatchScore)
	}

	updated, err := db.UpdateResumeAnalysis(ctx, resume.ID, &types.ResumeAnalysisUpdate{AnalysisScore: intPtr(75)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 75, *updated.AnalysisScore)
	assert.Equal(t, []string{"React", "Node.js", "Git"}, updated.Skills)

	list, err := db.ListResumesByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIntegration_UpsertKeepsPosition(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.UpsertInternship(ctx, &types.Internship{ID: "a", Title: "A", Company: "X", IsActive: true}))
	require.NoError(t, db.UpsertInternship(ctx, &types.Internship{ID: "b", Title: "B", Company: "X", IsActive: true}))
	require.NoError(t, db.UpsertInternship(ctx, &types.Internship{ID: "a", Title: "A2", Company: "X", IsActive: true}))

	active, err := db.ListActiveInternships(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "A2", active[0].Title)

	found, err := db.SearchInternships(ctx, storage.SearchFilter{Query: "a2"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestIntegration_ApplicationsAndAnalyses(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.UpsertInternship(ctx, &types.Internship{ID: "i1", Title: "One", Company: "X", IsActive: true}))
	resume, err := db.CreateResume(ctx, &types.CreateResumeRequest{UserID: "u1", FileName: "f", FilePath: "p"})
	require.NoError(t, err)

	app, err := db.CreateApplication(ctx, &types.CreateApplicationRequest{UserID: "u1", InternshipID: "i1", ResumeID: resume.ID})
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusPending, app.Status)

	orphan, err := db.CreateApplication(ctx, &types.CreateApplicationRequest{UserID: "u1", InternshipID: "gone", ResumeID: resume.ID})
	require.NoError(t, err)

	got, err := db.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "One", got.Internship.Title)

	missing, err := db.GetApplication(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := db.ListApplicationsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := db.UpdateApplicationStatus(ctx, app.ID, "accepted")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "accepted", updated.Status)
	assert.False(t, updated.UpdatedAt.Before(updated.AppliedAt))

	_, err = db.CreateResumeAnalysis(ctx, &types.CreateResumeAnalysisRequest{ResumeID: resume.ID, OverallScore: intPtr(60)})
	require.NoError(t, err)
	targeted, err := db.CreateResumeAnalysis(ctx, &types.CreateResumeAnalysisRequest{ResumeID: resume.ID, InternshipID: strPtr("i1"), MissingKeywords: []string{"Go"}})
	require.NoError(t, err)

	first, err := db.GetResumeAnalysis(ctx, resume.ID, "")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 60, *first.OverallScore)

	forInternship, err := db.GetResumeAnalysis(ctx, resume.ID, "i1")
	require.NoError(t, err)
	require.NotNil(t, forInternship)
	assert.Equal(t, targeted.ID, forInternship.ID)
}
