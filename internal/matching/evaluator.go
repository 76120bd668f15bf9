// Package matching implements the deterministic eligibility engine: a pure
// evaluator scoring one (student, award) pair and a ranker applying it across
// the whole catalog.
package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

// Outcome is the result of evaluating a single award for a student. Produced
// fresh per evaluation.
type Outcome struct {
	Award               *award.Award `json:"award"`
	MatchScore          int          `json:"matchScore"`
	MatchReasons        []string     `json:"matchReasons"`
	MissingRequirements []string     `json:"missingRequirements"`
}

const startScore = 100

// criticalFilter is a hard eligibility gate. Failing one makes the award
// wholly inapplicable: the evaluator short-circuits to score 0.
type criticalFilter struct {
	name string
	// check reports whether the criterion is declared on the award, whether
	// the student passes it, and a reason string emitted on pass.
	check func(p *award.StudentProfile, a *award.Award) (declared, passed bool, reason string)
}

// gradedCriterion reduces the score by a fixed penalty on failure instead of
// eliminating the award.
type gradedCriterion struct {
	name    string
	penalty int
	check   func(p *award.StudentProfile, c *award.EligibilityCriteria) (declared, passed bool, reason, missing string)
}

// Critical filters in evaluation order. The pass/fail modelling is
// deliberate: these are legal or administrative gates where a partial match
// has no meaning.
var criticalFilters = []criticalFilter{
	{
		name: "institution",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			if a.University == "" || p.Institution == "" {
				return false, false, ""
			}
			return true, a.University == p.Institution, "Offered by your institution"
		},
	},
	{
		name: "affiliation",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			key := a.Eligibility.Affiliation
			if key == "" {
				return false, false, ""
			}
			return true, p.HasAffiliation(key), "Matches affiliation requirement"
		},
	},
	{
		name: "indigenous_only",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			if !a.Eligibility.IndigenousOnly {
				return false, false, ""
			}
			return true, p.IndigenousStatus, "Meets Indigenous student requirement"
		},
	},
	{
		name: "disability",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			required := a.Eligibility.HasDisability
			if required == nil {
				return false, false, ""
			}
			return true, p.HasDisability == *required, "Meets disability requirement"
		},
	},
	{
		name: "former_youth_in_care",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			if !a.Eligibility.FormerYouthInCare {
				return false, false, ""
			}
			return true, p.FormerYouthInCare, "Meets former youth in care requirement"
		},
	},
	{
		name: "school_district",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			district := a.Eligibility.SchoolDistrict
			if district == "" {
				return false, false, ""
			}
			return true, p.SchoolDistrict == district,
				fmt.Sprintf("From required school district (#%s)", district)
		},
	},
	{
		name: "citizenship",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			allowed := a.Eligibility.CitizenshipRequired
			if len(allowed) == 0 {
				return false, false, ""
			}
			return true, contains(allowed, p.CitizenshipStatus), "Meets citizenship requirement"
		},
	},
	{
		name: "campus",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			allowed := a.Eligibility.Campus
			if len(allowed) == 0 {
				return false, false, ""
			}
			return true, contains(allowed, p.Campus),
				fmt.Sprintf("Available for %s campus", p.Campus)
		},
	},
	{
		name: "student_loan",
		check: func(p *award.StudentProfile, a *award.Award) (bool, bool, string) {
			if !a.Eligibility.StudentLoanRequired {
				return false, false, ""
			}
			return true, p.HasStudentLoan, "Has required student loan"
		},
	},
}

// Graduated criteria in evaluation order with their fixed penalties.
var gradedCriteria = []gradedCriterion{
	{
		name:    "required_year",
		penalty: 50,
		check: func(p *award.StudentProfile, c *award.EligibilityCriteria) (bool, bool, string, string) {
			if len(c.RequiredYear) == 0 {
				return false, false, "", ""
			}
			for _, year := range c.RequiredYear {
				if year == p.Year {
					return true, true, fmt.Sprintf("Open to year %d students", p.Year), ""
				}
			}
			return true, false, "", "Requires year: " + joinInts(c.RequiredYear)
		},
	},
	{
		name:    "required_faculty",
		penalty: 40,
		check: func(p *award.StudentProfile, c *award.EligibilityCriteria) (bool, bool, string, string) {
			// An empty list and an absent field are the same thing:
			// open to all faculties.
			if len(c.RequiredFaculty) == 0 {
				return true, true, "Open to all faculties", ""
			}
			for _, faculty := range c.RequiredFaculty {
				if strings.EqualFold(faculty, p.Faculty) {
					return true, true, fmt.Sprintf("Matches your faculty (%s)", p.Faculty), ""
				}
			}
			return true, false, "", "Requires faculty: " + strings.Join(c.RequiredFaculty, " or ")
		},
	},
	{
		name:    "min_gpa",
		penalty: 30,
		check: func(p *award.StudentProfile, c *award.EligibilityCriteria) (bool, bool, string, string) {
			if c.MinGPA <= 0 {
				return false, false, "", ""
			}
			if p.GPA >= c.MinGPA {
				return true, true, fmt.Sprintf("Meets minimum GPA requirement (%v)", c.MinGPA), ""
			}
			return true, false, "", fmt.Sprintf("Requires minimum GPA of %v", c.MinGPA)
		},
	},
	{
		name:    "gender",
		penalty: 25,
		check: func(p *award.StudentProfile, c *award.EligibilityCriteria) (bool, bool, string, string) {
			if len(c.Gender) == 0 {
				return false, false, "", ""
			}
			// A student with no gender value is penalized, not skipped.
			if p.Gender != "" && contains(c.Gender, p.Gender) {
				return true, true, "Matches gender requirement", ""
			}
			return true, false, "", "Requires gender: " + strings.Join(c.Gender, " or ")
		},
	},
	{
		name:    "financial_need",
		penalty: 30,
		check: func(p *award.StudentProfile, c *award.EligibilityCriteria) (bool, bool, string, string) {
			if !c.FinancialNeed {
				return false, false, "", ""
			}
			if p.HasFinancialNeed {
				return true, true, "Matches financial need requirement", ""
			}
			return true, false, "", "Requires demonstrated financial need"
		},
	},
	{
		name:    "part_time",
		penalty: 40,
		check: func(p *award.StudentProfile, c *award.EligibilityCriteria) (bool, bool, string, string) {
			// Only consulted for part-time students; true or absent means
			// no penalty.
			if c.PartTimeEligible == nil || !p.PartTimeStudent {
				return false, false, "", ""
			}
			if *c.PartTimeEligible {
				return true, true, "Eligible as part-time student", ""
			}
			return true, false, "", "Requires full-time enrollment"
		},
	},
}

// Evaluate scores one award for one student. It is total and side-effect
// free: any well-typed input produces an outcome. A score of 0 means the
// award is not applicable at all.
func Evaluate(p *award.StudentProfile, a *award.Award) *Outcome {
	reasons := []string{}

	for _, filter := range criticalFilters {
		declared, passed, reason := filter.check(p, a)
		if !declared {
			continue
		}
		if !passed {
			return &Outcome{
				Award:               a,
				MatchScore:          0,
				MatchReasons:        []string{},
				MissingRequirements: []string{},
			}
		}
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	score := startScore
	missing := []string{}

	for _, criterion := range gradedCriteria {
		declared, passed, reason, miss := criterion.check(p, &a.Eligibility)
		if !declared {
			continue
		}
		if passed {
			if reason != "" {
				reasons = append(reasons, reason)
			}
			continue
		}
		missing = append(missing, miss)
		score -= criterion.penalty
	}

	if score < 0 {
		score = 0
	}

	return &Outcome{
		Award:               a,
		MatchScore:          score,
		MatchReasons:        reasons,
		MissingRequirements: missing,
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, " or ")
}
