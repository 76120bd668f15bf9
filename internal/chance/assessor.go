package chance

import (
	"context"

	"go.uber.org/zap"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

// DefaultBatchLimit bounds a batch assessment when the caller does not give
// an explicit limit.
const DefaultBatchLimit = 5

// Assessor wraps a chance provider with the local heuristic so that an
// assessment always comes back, whatever the provider does. Provider
// failures are logged, never surfaced.
type Assessor struct {
	primary  Provider
	fallback *Heuristic
	logger   *zap.Logger
}

// NewAssessor builds the resilient assessor. primary may be nil (no
// credentials configured); every assessment then uses the heuristic.
func NewAssessor(primary Provider, logger *zap.Logger) *Assessor {
	return &Assessor{
		primary:  primary,
		fallback: NewHeuristic(),
		logger:   logger,
	}
}

// Assess produces a chance assessment for one award, tagged with the award's
// identity. It never fails.
func (s *Assessor) Assess(ctx context.Context, p *award.StudentProfile, a *award.Award) *Assessment {
	if s.primary != nil {
		assessment, err := s.primary.Assess(ctx, p, a)
		if err == nil {
			s.logger.Debug("chance assessed by provider",
				zap.String("award_id", a.ID),
				zap.String("chance_level", string(assessment.ChanceLevel)),
				zap.Int("chance_percentage", assessment.ChancePercentage),
			)
			return tag(assessment, a)
		}

		s.logger.Warn("chance provider failed, falling back to local heuristic",
			zap.String("award_id", a.ID),
			zap.Error(err),
		)
	}

	assessment, _ := s.fallback.Assess(ctx, p, a)
	s.logger.Debug("chance assessed by heuristic",
		zap.String("award_id", a.ID),
		zap.String("chance_level", string(assessment.ChanceLevel)),
		zap.Int("chance_percentage", assessment.ChancePercentage),
	)
	return tag(assessment, a)
}

// AssessMany assesses up to limit awards sequentially, preserving input
// order. A failing provider call degrades that single entry to the
// heuristic; the batch itself cannot fail.
func (s *Assessor) AssessMany(ctx context.Context, p *award.StudentProfile, awards []*award.Award, limit int) []*Assessment {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	if len(awards) > limit {
		awards = awards[:limit]
	}

	assessments := make([]*Assessment, 0, len(awards))
	for _, a := range awards {
		assessments = append(assessments, s.Assess(ctx, p, a))
	}
	return assessments
}

func tag(assessment *Assessment, a *award.Award) *Assessment {
	assessment.AwardID = a.ID
	assessment.AwardName = a.Name
	return assessment
}
