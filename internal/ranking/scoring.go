// Package ranking scores resumes against internship postings and ranks postings by fit.
package ranking

import "strings"

// Match is the outcome of comparing a candidate's skills with a posting's required skills.
type Match struct {
	Score   int      // 0-100, share of required skills covered
	Matched []string // required skills covered by at least one candidate skill
	Missing []string // required skills not covered, in posting order
}

// SkillsMatch reports whether a candidate skill covers a required skill.
// Either string containing the other counts, ignoring case, so "React" covers "React.js"
// and "Python, Pandas" covers "Python". Short labels over-match ("R" covers "React").
func SkillsMatch(candidate, required string) bool {
	c := strings.ToLower(candidate)
	r := strings.ToLower(required)
	return strings.Contains(c, r) || strings.Contains(r, c)
}

// Evaluate compares candidate against required in a single pass.
// Score is 0 when either set is empty.
func Evaluate(candidate, required []string) Match {
	m := Match{
		Matched: make([]string, 0, len(required)),
		Missing: make([]string, 0, len(required)),
	}

	lowered := make([]string, len(candidate))
	for i, skill := range candidate {
		lowered[i] = strings.ToLower(skill)
	}

	for _, req := range required {
		if covered(lowered, strings.ToLower(req)) {
			m.Matched = append(m.Matched, req)
		} else {
			m.Missing = append(m.Missing, req)
		}
	}

	if len(candidate) == 0 || len(required) == 0 {
		return m
	}

	m.Score = percentRounded(len(m.Matched), len(required))
	return m
}

// Score returns the 0-100 compatibility of candidate skills with required skills.
func Score(candidate, required []string) int {
	return Evaluate(candidate, required).Score
}

// MissingKeywords returns the required skills no candidate skill covers, in their original order.
func MissingKeywords(candidate, required []string) []string {
	return Evaluate(candidate, required).Missing
}

// covered expects both sides already lowercased.
func covered(candidates []string, required string) bool {
	for _, c := range candidates {
		if strings.Contains(c, required) || strings.Contains(required, c) {
			return true
		}
	}
	return false
}

// percentRounded is round(part/total*100) with halves rounded up, in integer arithmetic.
func percentRounded(part, total int) int {
	return (200*part + total) / (2 * total)
}
