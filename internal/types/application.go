package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ApplicationStatusPending is the status given to new applications.
const ApplicationStatusPending = "pending"

// Application tracks a user's application to an internship with one of their resumes.
type Application struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	InternshipID string    `json:"internship_id"`
	ResumeID     string    `json:"resume_id"`
	Status       string    `json:"status"`
	MatchScore   *int      `json:"match_score,omitempty"`
	CoverLetter  *string   `json:"cover_letter,omitempty"`
	AppliedAt    time.Time `json:"applied_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApplicationWithDetails is an application joined with its internship and resume.
type ApplicationWithDetails struct {
	Application
	Internship Internship `json:"internship"`
	Resume     Resume     `json:"resume"`
}

// CreateApplicationRequest represents the request to apply to an internship.
type CreateApplicationRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	InternshipID string  `json:"internship_id" validate:"required"`
	ResumeID     string  `json:"resume_id" validate:"required"`
	Status       string  `json:"status,omitempty" validate:"omitempty,max=32"`
	MatchScore   *int    `json:"match_score,omitempty" validate:"omitempty,min=0,max=100"`
	CoverLetter  *string `json:"cover_letter,omitempty"`
}

// UpdateApplicationStatusRequest represents a status change for an application.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
