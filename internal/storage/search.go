package storage

import (
	"strings"

	"github.com/jonathan/internship-board/internal/types"
)

// Filter values that select every internship.
const (
	AllLocations  = "All Locations"
	AllIndustries = "All Industries"
)

// RemoteLocation also matches internships flagged as remote, whatever their location text.
const RemoteLocation = "Remote"

// SearchFilter narrows the active internship list. Empty fields match everything.
type SearchFilter struct {
	Query    string // title, company, description or any skill
	Location string
	Industry string
}

// Matches reports whether the internship passes every part of the filter.
// All comparisons are case-insensitive substring matches.
func (f SearchFilter) Matches(internship *types.Internship) bool {
	return f.matchesQuery(internship) && f.matchesLocation(internship) && f.matchesIndustry(internship)
}

func (f SearchFilter) matchesQuery(internship *types.Internship) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	if containsFold(internship.Title, q) || containsFold(internship.Company, q) || containsFold(internship.Description, q) {
		return true
	}
	for _, skill := range internship.Skills {
		if containsFold(skill, q) {
			return true
		}
	}
	return false
}

func (f SearchFilter) matchesLocation(internship *types.Internship) bool {
	if f.Location == "" || f.Location == AllLocations {
		return true
	}
	if containsFold(internship.Location, strings.ToLower(f.Location)) {
		return true
	}
	return strings.EqualFold(f.Location, RemoteLocation) && internship.IsRemote
}

func (f SearchFilter) matchesIndustry(internship *types.Internship) bool {
	if f.Industry == "" || f.Industry == AllIndustries {
		return true
	}
	return internship.Industry != "" && containsFold(internship.Industry, strings.ToLower(f.Industry))
}

// FilterInternships returns the internships matching f, keeping their order.
func FilterInternships(internships []types.Internship, f SearchFilter) []types.Internship {
	out := make([]types.Internship, 0, len(internships))
	for i := range internships {
		if f.Matches(&internships[i]) {
			out = append(out, internships[i])
		}
	}
	return out
}

// containsFold expects needle already lowercased.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
