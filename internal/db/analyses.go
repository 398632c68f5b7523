package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/internship-board/internal/types"
)

const analysisColumns = `id, resume_id, internship_id, missing_keywords, suggestions, technical_skills_score,
	experience_score, achievements_score, overall_score, created_at`

func scanAnalysis(row rowScanner) (*types.ResumeAnalysis, error) {
	var a types.ResumeAnalysis
	err := row.Scan(&a.ID, &a.ResumeID, &a.InternshipID, &a.MissingKeywords, &a.Suggestions,
		&a.TechnicalSkillsScore, &a.ExperienceScore, &a.AchievementsScore, &a.OverallScore, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateResumeAnalysis inserts an analysis, assigning its ID and creation time.
func (db *DB) CreateResumeAnalysis(ctx context.Context, req *types.CreateResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	a, err := scanAnalysis(db.pool.QueryRow(ctx,
		`INSERT INTO resume_analyses (id, resume_id, internship_id, missing_keywords, suggestions,
		   technical_skills_score, experience_score, achievements_score, overall_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+analysisColumns,
		uuid.NewString(), req.ResumeID, req.InternshipID, req.MissingKeywords, req.Suggestions,
		req.TechnicalSkillsScore, req.ExperienceScore, req.AchievementsScore, req.OverallScore,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume analysis: %w", err)
	}
	return a, nil
}

// GetResumeAnalysis retrieves the first analysis stored for a resume,
// restricted to one internship when internshipID is non-empty.
func (db *DB) GetResumeAnalysis(ctx context.Context, resumeID, internshipID string) (*types.ResumeAnalysis, error) {
	a, err := scanAnalysis(db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM resume_analyses
		 WHERE resume_id = $1 AND ($2 = '' OR internship_id = $2)
		 ORDER BY seq LIMIT 1`,
		resumeID, internshipID,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume analysis: %w", err)
	}
	return a, nil
}
