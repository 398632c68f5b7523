package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/internship-board/internal/schemas"
	"github.com/jonathan/internship-board/internal/types"
)

//go:embed sample_internships.json
var sampleInternships []byte

// seedInternship is the on-disk shape of an internship in a seed file.
// Posting dates are relative so sample data never goes stale.
type seedInternship struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Duration      string   `json:"duration"`
	Salary        string   `json:"salary"`
	Requirements  []string `json:"requirements"`
	Skills        []string `json:"skills"`
	Industry      string   `json:"industry"`
	IsRemote      bool     `json:"is_remote"`
	CompanyLogo   string   `json:"company_logo"`
	PostedDaysAgo int      `json:"posted_days_ago"`
	IsActive      *bool    `json:"is_active"`
}

// SampleInternships returns the built-in sample internships, dated relative to now.
func SampleInternships(now time.Time) ([]types.Internship, error) {
	return ParseInternships(sampleInternships, now)
}

// ParseInternships validates a seed document against the internships schema and decodes it.
// Entries without is_active are treated as active.
func ParseInternships(doc []byte, now time.Time) ([]types.Internship, error) {
	if err := schemas.ValidateInternships(doc); err != nil {
		return nil, err
	}

	var raw []seedInternship
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode internships: %w", err)
	}

	internships := make([]types.Internship, 0, len(raw))
	for _, s := range raw {
		active := true
		if s.IsActive != nil {
			active = *s.IsActive
		}
		internships = append(internships, types.Internship{
			ID:           s.ID,
			Title:        s.Title,
			Company:      s.Company,
			Description:  s.Description,
			Location:     s.Location,
			Duration:     s.Duration,
			Salary:       s.Salary,
			Requirements: s.Requirements,
			Skills:       s.Skills,
			Industry:     s.Industry,
			IsRemote:     s.IsRemote,
			CompanyLogo:  s.CompanyLogo,
			PostedAt:     now.Add(-time.Duration(s.PostedDaysAgo) * 24 * time.Hour),
			IsActive:     active,
		})
	}
	return internships, nil
}
