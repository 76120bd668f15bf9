package chance

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

// maxKeyFactors caps the factor list carried in an assessment.
const maxKeyFactors = 3

const (
	adviceStrong = "You appear to be a strong candidate for this award. Make sure to prepare " +
		"all required documentation and submit a compelling application highlighting your achievements."
	advicePartial = "You may be eligible for this award but may not meet all criteria perfectly. " +
		"Review the requirements carefully and consider applying if you can address any gaps."
	advicePoorFit = "Based on the eligibility criteria, this award may not be the best fit for " +
		"your profile. Consider focusing on awards that better match your qualifications."
)

// Heuristic is the deterministic local chance scorer. It makes no external
// calls and produces identical output for identical input, so it doubles as
// the correctness safety net when the reasoning provider misbehaves.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Assess(_ context.Context, p *award.StudentProfile, a *award.Award) (*Assessment, error) {
	c := a.Eligibility
	score := 100
	factors := []string{}

	if len(c.CitizenshipRequired) > 0 {
		if containsString(c.CitizenshipRequired, p.CitizenshipStatus) {
			factors = append(factors, "✓ Meets citizenship requirement")
		} else {
			score -= 100
			factors = append(factors, "✗ Does not meet citizenship requirement")
		}
	}

	if c.MinGPA > 0 {
		if p.GPA >= c.MinGPA {
			factors = append(factors, fmt.Sprintf("✓ GPA (%v) meets minimum (%v)", p.GPA, c.MinGPA))
		} else {
			score -= 30
			factors = append(factors, fmt.Sprintf("✗ GPA (%v) below minimum (%v)", p.GPA, c.MinGPA))
		}
	}

	if len(c.RequiredYear) > 0 && !containsInt(c.RequiredYear, p.Year) {
		score -= 40
		factors = append(factors, fmt.Sprintf("✗ Not in required year (%s)", joinYears(c.RequiredYear)))
	}

	if len(c.RequiredFaculty) > 0 {
		if containsFold(c.RequiredFaculty, p.Faculty) {
			factors = append(factors, "✓ In required faculty")
		} else {
			score -= 30
			factors = append(factors, "✗ Not in required faculty")
		}
	}

	if c.FinancialNeed && !p.HasFinancialNeed {
		score -= 25
		factors = append(factors, "✗ Financial need not demonstrated")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := LevelLow
	advice := advicePoorFit
	switch {
	case score >= 80:
		level = LevelHigh
		advice = adviceStrong
	case score >= 50:
		level = LevelMedium
		advice = advicePartial
	}

	basis := "general criteria"
	if len(factors) > 0 {
		basis = "eligibility analysis"
	}

	if len(factors) > maxKeyFactors {
		factors = factors[:maxKeyFactors]
	}

	return &Assessment{
		Success:          true,
		ChanceLevel:      level,
		ChancePercentage: score,
		KeyFactors:       factors,
		Advice:           advice,
		Summary:          fmt.Sprintf("%s chance based on %s.", level, basis),
		Source:           "heuristic",
	}, nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func containsInt(list []int, value int) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func joinYears(years []int) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d", y))
	}
	return strings.Join(parts, "/")
}
