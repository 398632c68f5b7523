// Package types provides type definitions for the records served by the internship board.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Internship is a posted internship listing.
type Internship struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Duration     string    `json:"duration"`
	Salary       string    `json:"salary,omitempty"`
	Requirements []string  `json:"requirements,omitempty"`
	Skills       []string  `json:"skills"`
	Industry     string    `json:"industry,omitempty"`
	IsRemote     bool      `json:"is_remote"`
	CompanyLogo  string    `json:"company_logo,omitempty"`
	PostedAt     time.Time `json:"posted_at"`
	IsActive     bool      `json:"is_active"`
}

// InternshipMatch is an internship annotated with how well a resume covers its skills.
// It is computed per request and never stored.
type InternshipMatch struct {
	Internship
	MatchScore      int      `json:"match_score"`
	MissingKeywords []string `json:"missing_keywords"`
}
