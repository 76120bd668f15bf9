package matching

import (
	"testing"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

func boolPtr(v bool) *bool { return &v }

func sampleProfile() *award.StudentProfile {
	return &award.StudentProfile{
		Campus:            "Vancouver",
		Year:              1,
		Faculty:           "Science",
		GPA:               4.0,
		CitizenshipStatus: "Canadian Citizen",
		HasFinancialNeed:  true,
		HasStudentLoan:    true,
		Gender:            "Female",
	}
}

func TestEvaluateFullMatch(t *testing.T) {
	a := &award.Award{
		ID:   "a1",
		Name: "Entrance Scholarship",
		Eligibility: award.EligibilityCriteria{
			Campus:              []string{"Vancouver"},
			CitizenshipRequired: []string{"Canadian Citizen"},
			MinGPA:              3.5,
		},
	}

	outcome := Evaluate(sampleProfile(), a)

	if outcome.MatchScore != 100 {
		t.Fatalf("expected score 100, got %d", outcome.MatchScore)
	}
	if len(outcome.MissingRequirements) != 0 {
		t.Fatalf("expected no missing requirements, got %v", outcome.MissingRequirements)
	}
	if len(outcome.MatchReasons) == 0 {
		t.Fatalf("expected reasons to be populated")
	}
}

func TestEvaluateCriticalFilterShortCircuits(t *testing.T) {
	cases := []struct {
		name     string
		criteria award.EligibilityCriteria
		modify   func(p *award.StudentProfile)
	}{
		{
			name:     "affiliation missing",
			criteria: award.EligibilityCriteria{Affiliation: "ilwu"},
		},
		{
			name:     "indigenous only",
			criteria: award.EligibilityCriteria{IndigenousOnly: true},
		},
		{
			name:     "disability tri-state mismatch",
			criteria: award.EligibilityCriteria{HasDisability: boolPtr(true)},
		},
		{
			name:     "former youth in care",
			criteria: award.EligibilityCriteria{FormerYouthInCare: true},
		},
		{
			name:     "school district mismatch",
			criteria: award.EligibilityCriteria{SchoolDistrict: "39"},
			modify:   func(p *award.StudentProfile) { p.SchoolDistrict = "44" },
		},
		{
			name:     "citizenship mismatch",
			criteria: award.EligibilityCriteria{CitizenshipRequired: []string{"International Student"}},
		},
		{
			name:     "campus mismatch",
			criteria: award.EligibilityCriteria{Campus: []string{"Okanagan"}},
		},
		{
			name:     "student loan required",
			criteria: award.EligibilityCriteria{StudentLoanRequired: true},
			modify:   func(p *award.StudentProfile) { p.HasStudentLoan = false },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampleProfile()
			if tc.modify != nil {
				tc.modify(p)
			}

			outcome := Evaluate(p, &award.Award{ID: "a1", Eligibility: tc.criteria})

			if outcome.MatchScore != 0 {
				t.Fatalf("expected score 0, got %d", outcome.MatchScore)
			}
			if len(outcome.MatchReasons) != 0 || len(outcome.MissingRequirements) != 0 {
				t.Fatalf("expected empty reason/missing lists, got %v / %v",
					outcome.MatchReasons, outcome.MissingRequirements)
			}
		})
	}
}

func TestEvaluateCriticalFailureIgnoresPerfectGraduatedScore(t *testing.T) {
	// Every graduated criterion would pass; the affiliation gate must still
	// force the award out.
	a := &award.Award{
		ID: "a1",
		Eligibility: award.EligibilityCriteria{
			Affiliation:     "royalCanadianLegion",
			RequiredYear:    []int{1},
			RequiredFaculty: []string{"Science"},
			MinGPA:          2.0,
		},
	}

	outcome := Evaluate(sampleProfile(), a)

	if outcome.MatchScore != 0 {
		t.Fatalf("expected score 0, got %d", outcome.MatchScore)
	}
	if len(outcome.MatchReasons) != 0 || len(outcome.MissingRequirements) != 0 {
		t.Fatalf("expected empty lists on critical failure")
	}
}

func TestEvaluateInstitutionGate(t *testing.T) {
	p := sampleProfile()
	p.Institution = "UBC"

	a := &award.Award{ID: "a1", University: "SFU"}
	if outcome := Evaluate(p, a); outcome.MatchScore != 0 {
		t.Fatalf("expected score 0 for foreign institution, got %d", outcome.MatchScore)
	}

	// The gate only applies when both sides declare an institution.
	p.Institution = ""
	if outcome := Evaluate(p, a); outcome.MatchScore != 100 {
		t.Fatalf("expected score 100 when student declares no institution, got %d", outcome.MatchScore)
	}
}

func TestEvaluateFacultyPenalty(t *testing.T) {
	p := sampleProfile()
	p.Faculty = "Forestry"

	a := &award.Award{
		ID: "a1",
		Eligibility: award.EligibilityCriteria{
			RequiredFaculty: []string{"Engineering"},
		},
	}

	outcome := Evaluate(p, a)

	if outcome.MatchScore != 60 {
		t.Fatalf("expected score 60, got %d", outcome.MatchScore)
	}
	if len(outcome.MissingRequirements) != 1 {
		t.Fatalf("expected one missing requirement, got %v", outcome.MissingRequirements)
	}
}

func TestEvaluateFacultyMatchIsCaseInsensitive(t *testing.T) {
	p := sampleProfile()
	p.Faculty = "engineering"

	a := &award.Award{
		ID: "a1",
		Eligibility: award.EligibilityCriteria{
			RequiredFaculty: []string{"Engineering"},
		},
	}

	outcome := Evaluate(p, a)

	if outcome.MatchScore != 100 {
		t.Fatalf("expected case-insensitive faculty match, got score %d", outcome.MatchScore)
	}
}

func TestEvaluateEmptyFacultyListMeansOpenToAll(t *testing.T) {
	for _, faculty := range []string{"Forestry", ""} {
		for name, criteria := range map[string]award.EligibilityCriteria{
			"absent": {},
			"empty":  {RequiredFaculty: []string{}},
		} {
			p := sampleProfile()
			p.Faculty = faculty

			outcome := Evaluate(p, &award.Award{ID: "a1", Eligibility: criteria})

			if outcome.MatchScore != 100 {
				t.Fatalf("%s list, faculty %q: expected score 100, got %d", name, faculty, outcome.MatchScore)
			}
			if len(outcome.MissingRequirements) != 0 {
				t.Fatalf("%s list, faculty %q: expected no missing requirements", name, faculty)
			}
		}
	}
}

func TestEvaluateGraduatedPenalties(t *testing.T) {
	cases := []struct {
		name     string
		criteria award.EligibilityCriteria
		modify   func(p *award.StudentProfile)
		expected int
	}{
		{
			name:     "year mismatch",
			criteria: award.EligibilityCriteria{RequiredYear: []int{3, 4}},
			expected: 50,
		},
		{
			name:     "gpa below minimum",
			criteria: award.EligibilityCriteria{MinGPA: 3.5},
			modify:   func(p *award.StudentProfile) { p.GPA = 3.0 },
			expected: 70,
		},
		{
			name:     "gender mismatch",
			criteria: award.EligibilityCriteria{Gender: []string{"Male"}},
			expected: 75,
		},
		{
			name:     "gender unset is penalized",
			criteria: award.EligibilityCriteria{Gender: []string{"Female"}},
			modify:   func(p *award.StudentProfile) { p.Gender = "" },
			expected: 75,
		},
		{
			name:     "financial need missing",
			criteria: award.EligibilityCriteria{FinancialNeed: true},
			modify:   func(p *award.StudentProfile) { p.HasFinancialNeed = false },
			expected: 70,
		},
		{
			name:     "part-time student against full-time award",
			criteria: award.EligibilityCriteria{PartTimeEligible: boolPtr(false)},
			modify:   func(p *award.StudentProfile) { p.PartTimeStudent = true },
			expected: 60,
		},
		{
			name:     "part-time flag ignored for full-time student",
			criteria: award.EligibilityCriteria{PartTimeEligible: boolPtr(false)},
			expected: 100,
		},
		{
			name:     "part-time eligible",
			criteria: award.EligibilityCriteria{PartTimeEligible: boolPtr(true)},
			modify:   func(p *award.StudentProfile) { p.PartTimeStudent = true },
			expected: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampleProfile()
			if tc.modify != nil {
				tc.modify(p)
			}

			outcome := Evaluate(p, &award.Award{ID: "a1", Eligibility: tc.criteria})

			if outcome.MatchScore != tc.expected {
				t.Fatalf("expected score %d, got %d", tc.expected, outcome.MatchScore)
			}
		})
	}
}

func TestEvaluateScoreFloorsAtZero(t *testing.T) {
	p := sampleProfile()
	p.Year = 5
	p.Faculty = "Arts"
	p.GPA = 1.0
	p.Gender = ""
	p.HasFinancialNeed = false
	p.PartTimeStudent = true

	a := &award.Award{
		ID: "a1",
		Eligibility: award.EligibilityCriteria{
			RequiredYear:     []int{1},
			RequiredFaculty:  []string{"Engineering"},
			MinGPA:           4.0,
			Gender:           []string{"Female"},
			FinancialNeed:    true,
			PartTimeEligible: boolPtr(false),
		},
	}

	outcome := Evaluate(p, a)

	if outcome.MatchScore != 0 {
		t.Fatalf("expected floored score 0, got %d", outcome.MatchScore)
	}
	if len(outcome.MissingRequirements) != 6 {
		t.Fatalf("expected 6 missing requirements, got %d", len(outcome.MissingRequirements))
	}
}

func TestEvaluateScoreStaysInRange(t *testing.T) {
	// All criteria declared and satisfied must not push the score past 100.
	p := sampleProfile()
	p.IndigenousStatus = true
	p.HasDisability = true
	p.FormerYouthInCare = true
	p.SchoolDistrict = "39"
	p.PartTimeStudent = true
	p.Affiliations = map[string]bool{"ilwu": true}

	a := &award.Award{
		ID: "a1",
		Eligibility: award.EligibilityCriteria{
			Campus:              []string{"Vancouver"},
			RequiredYear:        []int{1},
			RequiredFaculty:     []string{"Science"},
			MinGPA:              3.0,
			CitizenshipRequired: []string{"Canadian Citizen"},
			IndigenousOnly:      true,
			HasDisability:       boolPtr(true),
			Gender:              []string{"Female"},
			FinancialNeed:       true,
			StudentLoanRequired: true,
			Affiliation:         "ilwu",
			SchoolDistrict:      "39",
			PartTimeEligible:    boolPtr(true),
			FormerYouthInCare:   true,
		},
	}

	outcome := Evaluate(p, a)

	if outcome.MatchScore != 100 {
		t.Fatalf("expected score capped at 100, got %d", outcome.MatchScore)
	}
	if len(outcome.MissingRequirements) != 0 {
		t.Fatalf("expected no missing requirements, got %v", outcome.MissingRequirements)
	}
}
