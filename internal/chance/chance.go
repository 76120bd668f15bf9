// Package chance estimates a student's likelihood of receiving an award. The
// estimate normally comes from a generative reasoning provider; a local
// deterministic heuristic stands in whenever the provider is unavailable or
// returns unusable output.
package chance

import (
	"context"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

// Level is the coarse qualitative bucket of an assessment.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Valid reports whether the level is one of the three known buckets.
func (l Level) Valid() bool {
	return l == LevelHigh || l == LevelMedium || l == LevelLow
}

// Assessment is the chance estimate for one (student, award) pair.
type Assessment struct {
	AwardID          string   `json:"awardId,omitempty"`
	AwardName        string   `json:"awardName,omitempty"`
	Success          bool     `json:"success"`
	ChanceLevel      Level    `json:"chanceLevel"`
	ChancePercentage int      `json:"chancePercentage"`
	KeyFactors       []string `json:"keyFactors"`
	Advice           string   `json:"advice"`
	Summary          string   `json:"summary"`
	Source           string   `json:"source,omitempty"`
}

// Provider produces a chance assessment for a single award.
type Provider interface {
	Assess(ctx context.Context, p *award.StudentProfile, a *award.Award) (*Assessment, error)
}
