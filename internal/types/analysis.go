package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ResumeAnalysis is a stored review of a resume, optionally against one internship.
type ResumeAnalysis struct {
	ID                   string    `json:"id"`
	ResumeID             string    `json:"resume_id"`
	InternshipID         *string   `json:"internship_id,omitempty"`
	MissingKeywords      []string  `json:"missing_keywords"`
	Suggestions          []string  `json:"suggestions"`
	TechnicalSkillsScore *int      `json:"technical_skills_score,omitempty"`
	ExperienceScore      *int      `json:"experience_score,omitempty"`
	AchievementsScore    *int      `json:"achievements_score,omitempty"`
	OverallScore         *int      `json:"overall_score,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// CreateResumeAnalysisRequest represents the request to store a resume analysis.
type CreateResumeAnalysisRequest struct {
	ResumeID             string   `json:"resume_id" validate:"required"`
	InternshipID         *string  `json:"internship_id,omitempty"`
	MissingKeywords      []string `json:"missing_keywords,omitempty"`
	Suggestions          []string `json:"suggestions,omitempty"`
	TechnicalSkillsScore *int     `json:"technical_skills_score,omitempty" validate:"omitempty,min=0,max=100"`
	ExperienceScore      *int     `json:"experience_score,omitempty" validate:"omitempty,min=0,max=100"`
	AchievementsScore    *int     `json:"achievements_score,omitempty" validate:"omitempty,min=0,max=100"`
	OverallScore         *int     `json:"overall_score,omitempty" validate:"omitempty,min=0,max=100"`
}

// Validate validates the CreateResumeAnalysisRequest using the validator.
func (r *CreateResumeAnalysisRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
