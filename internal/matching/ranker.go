package matching

import (
	"sort"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

// Categories partitions ranked outcomes into the three user-facing tiers.
// An outcome with score >= 90 but outstanding missing requirements lands in
// none of them; the explicit check stays even though the current penalty
// schedule cannot produce that combination.
type Categories struct {
	Perfect []*Outcome `json:"perfect"`
	Good    []*Outcome `json:"good"`
	Partial []*Outcome `json:"partial"`
}

// Result is the boundary shape returned to callers of the ranking operation.
type Result struct {
	TotalMatches int        `json:"totalMatches"`
	Matches      []*Outcome `json:"matches"`
	Categorized  Categories `json:"categorized"`
}

// Rank evaluates every award for the student, drops inapplicable ones and
// sorts by descending score. Ties keep the original catalog order.
func Rank(p *award.StudentProfile, awards *award.Awards) []*Outcome {
	matches := make([]*Outcome, 0, awards.Len())
	for _, a := range awards.Items {
		outcome := Evaluate(p, a)
		if outcome.MatchScore > 0 {
			matches = append(matches, outcome)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	return matches
}

// Categorize splits ranked matches into tiers. The tiers are mutually
// exclusive: perfect is score >= 90 with nothing missing, good is [60,90),
// partial is (0,60).
func Categorize(matches []*Outcome) Categories {
	categories := Categories{
		Perfect: []*Outcome{},
		Good:    []*Outcome{},
		Partial: []*Outcome{},
	}

	for _, m := range matches {
		switch {
		case m.MatchScore >= 90 && len(m.MissingRequirements) == 0:
			categories.Perfect = append(categories.Perfect, m)
		case m.MatchScore >= 60 && m.MatchScore < 90:
			categories.Good = append(categories.Good, m)
		case m.MatchScore > 0 && m.MatchScore < 60:
			categories.Partial = append(categories.Partial, m)
		}
	}

	return categories
}

// RankAndCategorize runs the full ranking operation and packages it for the
// request-handling boundary.
func RankAndCategorize(p *award.StudentProfile, awards *award.Awards) *Result {
	matches := Rank(p, awards)
	return &Result{
		TotalMatches: len(matches),
		Matches:      matches,
		Categorized:  Categorize(matches),
	}
}
