package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/internship-board/internal/types"
)

const applicationColumns = `id, user_id, internship_id, resume_id, status, match_score, cover_letter, applied_at, updated_at`

// detailsQuery joins an application with its internship and resume.
// Inner joins drop applications whose internship or resume is gone.
const detailsQuery = `SELECT
	a.id, a.user_id, a.internship_id, a.resume_id, a.status, a.match_score, a.cover_letter, a.applied_at, a.updated_at,
	i.id, i.title, i.company, i.description, i.location, i.duration, i.salary, i.requirements, i.skills,
	i.industry, i.is_remote, i.company_logo, i.posted_at, i.is_active,
	r.id, r.user_id, r.file_name, r.file_path, r.content, r.skills, r.experience, r.education,
	r.analysis_score, r.keywords, r.uploaded_at
	FROM applications a
	JOIN internships i ON i.id = a.internship_id
	JOIN resumes r ON r.id = a.resume_id`

func scanApplication(row rowScanner) (*types.Application, error) {
	var a types.Application
	err := row.Scan(&a.ID, &a.UserID, &a.InternshipID, &a.ResumeID, &a.Status, &a.MatchScore,
		&a.CoverLetter, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanApplicationDetails(row rowScanner) (*types.ApplicationWithDetails, error) {
	var d types.ApplicationWithDetails
	a, i, r := &d.Application, &d.Internship, &d.Resume
	err := row.Scan(
		&a.ID, &a.UserID, &a.InternshipID, &a.ResumeID, &a.Status, &a.MatchScore, &a.CoverLetter, &a.AppliedAt, &a.UpdatedAt,
		&i.ID, &i.Title, &i.Company, &i.Description, &i.Location, &i.Duration, &i.Salary, &i.Requirements, &i.Skills,
		&i.Industry, &i.IsRemote, &i.CompanyLogo, &i.PostedAt, &i.IsActive,
		&r.ID, &r.UserID, &r.FileName, &r.FilePath, &r.Content, &r.Skills, &r.Experience, &r.Education,
		&r.AnalysisScore, &r.Keywords, &r.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateApplication inserts an application. Status defaults to pending.
func (db *DB) CreateApplication(ctx context.Context, req *types.CreateApplicationRequest) (*types.Application, error) {
	status := req.Status
	if status == "" {
		status = types.ApplicationStatusPending
	}

	a, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, internship_id, resume_id, status, match_score, cover_letter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+applicationColumns,
		uuid.NewString(), req.UserID, req.InternshipID, req.ResumeID, status, req.MatchScore, req.CoverLetter,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application with its internship and resume
func (db *DB) GetApplication(ctx context.Context, id string) (*types.ApplicationWithDetails, error) {
	d, err := scanApplicationDetails(db.pool.QueryRow(ctx, detailsQuery+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return d, nil
}

// ListApplicationsByUser lists a user's applications newest first
func (db *DB) ListApplicationsByUser(ctx context.Context, userID string) ([]types.ApplicationWithDetails, error) {
	rows, err := db.pool.Query(ctx, detailsQuery+` WHERE a.user_id = $1 ORDER BY a.applied_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	applications := make([]types.ApplicationWithDetails, 0)
	for rows.Next() {
		d, err := scanApplicationDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// UpdateApplicationStatus sets the status and bumps updated_at
func (db *DB) UpdateApplicationStatus(ctx context.Context, id, status string) (*types.Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING `+applicationColumns,
		id, status,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return a, nil
}
