package award

import (
	"errors"
	"sort"
	"strings"
)

// StudentProfile is the student side of an evaluation. Built per request,
// immutable while the evaluation runs, never persisted.
type StudentProfile struct {
	Institution       string  `json:"institution,omitempty"`
	Campus            string  `json:"campus"`
	Year              int     `json:"year"`
	Faculty           string  `json:"faculty"`
	Program           string  `json:"program,omitempty"`
	GPA               float64 `json:"gpa"`
	CitizenshipStatus string  `json:"citizenshipStatus"`
	IndigenousStatus  bool    `json:"indigenousStatus"`
	IndigenousGroup   string  `json:"indigenousGroup,omitempty"`
	HasDisability     bool    `json:"hasDisability"`
	Gender            string  `json:"gender,omitempty"`
	HasFinancialNeed  bool    `json:"hasFinancialNeed"`
	HasStudentLoan    bool    `json:"hasStudentLoan"`
	FamilyIncome      float64 `json:"familyIncome,omitempty"`
	PartTimeStudent   bool    `json:"partTimeStudent,omitempty"`
	FormerYouthInCare bool    `json:"formerYouthInCare,omitempty"`
	HomeRegion        string  `json:"homeRegion,omitempty"`
	SchoolDistrict    string  `json:"schoolDistrict,omitempty"`

	// Affiliations maps an affiliation key to a membership flag. A missing
	// key is the same as false.
	Affiliations map[string]bool `json:"affiliations,omitempty"`
}

// Validate rejects profiles missing the fields the evaluator depends on.
func (p *StudentProfile) Validate() error {
	if p == nil {
		return errors.New("student profile is required")
	}
	if strings.TrimSpace(p.Campus) == "" {
		return errors.New("campus is required")
	}
	if strings.TrimSpace(p.CitizenshipStatus) == "" {
		return errors.New("citizenshipStatus is required")
	}
	if p.Year <= 0 {
		return errors.New("year must be a positive integer")
	}
	if strings.TrimSpace(p.Faculty) == "" {
		return errors.New("faculty is required")
	}
	return nil
}

// HasAffiliation reports whether the student holds the given affiliation.
func (p *StudentProfile) HasAffiliation(key string) bool {
	if p == nil || p.Affiliations == nil {
		return false
	}
	return p.Affiliations[key]
}

// ActiveAffiliations lists the affiliation keys set to true, for display and
// prompt rendering.
func (p *StudentProfile) ActiveAffiliations() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.Affiliations))
	for key, member := range p.Affiliations {
		if member {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
