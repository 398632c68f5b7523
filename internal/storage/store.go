// Package storage defines the record store behind the internship board and its in-memory implementation.
package storage

import (
	"context"
	"errors"

	"github.com/jonathan/internship-board/internal/types"
)

var (
	// ErrEmailExists is returned when creating a user whose email is already registered.
	ErrEmailExists = errors.New("email already registered")
	// ErrUsernameExists is returned when creating a user whose username is already taken.
	ErrUsernameExists = errors.New("username already taken")
)

// Store holds every record the board serves.
// Lookups by ID return (nil, nil) when the record does not exist.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)

	CreateResume(ctx context.Context, req *types.CreateResumeRequest) (*types.Resume, error)
	GetResume(ctx context.Context, id string) (*types.Resume, error)
	ListResumesByUser(ctx context.Context, userID string) ([]types.Resume, error)
	UpdateResumeAnalysis(ctx context.Context, id string, update *types.ResumeAnalysisUpdate) (*types.Resume, error)

	ListActiveInternships(ctx context.Context) ([]types.Internship, error)
	GetInternship(ctx context.Context, id string) (*types.Internship, error)
	SearchInternships(ctx context.Context, filter SearchFilter) ([]types.Internship, error)
	UpsertInternship(ctx context.Context, internship *types.Internship) error

	CreateApplication(ctx context.Context, req *types.CreateApplicationRequest) (*types.Application, error)
	GetApplication(ctx context.Context, id string) (*types.ApplicationWithDetails, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]types.ApplicationWithDetails, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) (*types.Application, error)

	CreateResumeAnalysis(ctx context.Context, req *types.CreateResumeAnalysisRequest) (*types.ResumeAnalysis, error)
	GetResumeAnalysis(ctx context.Context, resumeID, internshipID string) (*types.ResumeAnalysis, error)
}
