package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Resume is an uploaded resume together with the fields extracted from it.
// Skills is nil when nothing has been extracted yet.
type Resume struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FileName      string    `json:"file_name"`
	FilePath      string    `json:"file_path"`
	Content       *string   `json:"content,omitempty"`
	Skills        []string  `json:"skills"`
	Experience    *string   `json:"experience,omitempty"`
	Education     *string   `json:"education,omitempty"`
	AnalysisScore *int      `json:"analysis_score,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// CreateResumeRequest represents the request to register an uploaded resume.
type CreateResumeRequest struct {
	UserID        string   `json:"user_id" validate:"required"`
	FileName      string   `json:"file_name" validate:"required,max=255"`
	FilePath      string   `json:"file_path" validate:"required"`
	Content       *string  `json:"content,omitempty"`
	Skills        []string `json:"skills,omitempty" validate:"omitempty,dive,max=100"`
	Experience    *string  `json:"experience,omitempty"`
	Education     *string  `json:"education,omitempty"`
	AnalysisScore *int     `json:"analysis_score,omitempty" validate:"omitempty,min=0,max=100"`
	Keywords      []string `json:"keywords,omitempty"`
}

// ResumeAnalysisUpdate carries the extracted fields to merge into a resume.
// Nil fields leave the stored value untouched.
type ResumeAnalysisUpdate struct {
	Content       *string  `json:"content,omitempty"`
	Skills        []string `json:"skills,omitempty" validate:"omitempty,dive,max=100"`
	Experience    *string  `json:"experience,omitempty"`
	Education     *string  `json:"education,omitempty"`
	AnalysisScore *int     `json:"analysis_score,omitempty" validate:"omitempty,min=0,max=100"`
	Keywords      []string `json:"keywords,omitempty"`
}

// Validate validates the CreateResumeRequest using the validator.
func (r *CreateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ResumeAnalysisUpdate using the validator.
func (u *ResumeAnalysisUpdate) Validate() error {
	validate := validator.New()
	return validate.Struct(u)
}

// Apply merges the non-nil fields of u into r.
func (u *ResumeAnalysisUpdate) Apply(r *Resume) {
	if u.Content != nil {
		r.Content = u.Content
	}
	if u.Skills != nil {
		r.Skills = append([]string(nil), u.Skills...)
	}
	if u.Experience != nil {
		r.Experience = u.Experience
	}
	if u.Education != nil {
		r.Education = u.Education
	}
	if u.AnalysisScore != nil {
		r.AnalysisScore = u.AnalysisScore
	}
	if u.Keywords != nil {
		r.Keywords = append([]string(nil), u.Keywords...)
	}
}
