package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/internship-board/internal/types"
)

const resumeColumns = `id, user_id, file_name, file_path, content, skills, experience, education, analysis_score, keywords, uploaded_at`

func scanResume(row rowScanner) (*types.Resume, error) {
	var r types.Resume
	err := row.Scan(&r.ID, &r.UserID, &r.FileName, &r.FilePath, &r.Content, &r.Skills,
		&r.Experience, &r.Education, &r.AnalysisScore, &r.Keywords, &r.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResume inserts a resume, assigning its ID and upload time.
func (db *DB) CreateResume(ctx context.Context, req *types.CreateResumeRequest) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, file_name, file_path, content, skills, experience, education, analysis_score, keywords)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+resumeColumns,
		uuid.NewString(), req.UserID, req.FileName, req.FilePath, req.Content, req.Skills,
		req.Experience, req.Education, req.AnalysisScore, req.Keywords,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumesByUser lists a user's resumes in upload order
func (db *DB) ListResumesByUser(ctx context.Context, userID string) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]types.Resume, 0)
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResumeAnalysis merges the non-nil fields of update into the stored resume.
func (db *DB) UpdateResumeAnalysis(ctx context.Context, id string, update *types.ResumeAnalysisUpdate) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET
		   content        = COALESCE($2, content),
		   skills         = COALESCE($3, skills),
		   experience     = COALESCE($4, experience),
		   education      = COALESCE($5, education),
		   analysis_score = COALESCE($6, analysis_score),
		   keywords       = COALESCE($7, keywords)
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, update.Content, update.Skills, update.Experience, update.Education, update.AnalysisScore, update.Keywords,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume analysis: %w", err)
	}
	return r, nil
}
