package trend

import (
	"sort"
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

const (
	// MinDataPoints is the floor below which a goal is skipped entirely.
	// Too little data is a valid outcome, not an error.
	MinDataPoints = 5

	// MinPublishConfidence filters weak fits out of published result sets.
	MinPublishConfidence = 0.7

	projectionDays     = 30
	stableSlopeEpsilon = 0.01
	targetProgress     = 100.0

	// volatileResidualVariance flags series whose points scatter far off
	// the fitted line: typical deviation past ~17 progress points.
	volatileResidualVariance = 300.0
)

// AnalyzeTrend fits a trend line over one goal's progress history. Returns
// nil when the history carries fewer than MinDataPoints entries. The
// projection anchors at the last observation, so identical input always
// yields an identical analysis.
func AnalyzeTrend(goalID string, entries []domain.ProgressEntry, now time.Time) *domain.TrendAnalysis {
	if len(entries) < MinDataPoints {
		return nil
	}

	ordered := append([]domain.ProgressEntry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	first := ordered[0].Timestamp
	points := make([]point, len(ordered))
	for i, e := range ordered {
		points[i] = point{
			x: e.Timestamp.Sub(first).Hours() / 24,
			y: e.Progress,
		}
	}

	fit := fitLine(points)
	lastX := points[len(points)-1].x

	analysis := &domain.TrendAnalysis{
		GoalID:           goalID,
		Trend:            classifyTrend(fit),
		Slope:            fit.Slope,
		Correlation:      fit.Correlation,
		Confidence:       abs(fit.Correlation),
		ProjectedOutcome: clampProgress(fit.at(lastX + projectionDays)),
		TimeToTargetDays: timeToTarget(fit, lastX),
		DataPoints:       fit.N,
		GeneratedAt:      now,
	}
	return analysis
}

// Published reports whether an analysis clears the confidence bar for
// inclusion in result sets handed to consumers.
func Published(a *domain.TrendAnalysis) bool {
	return a != nil && a.Confidence >= MinPublishConfidence
}

func classifyTrend(fit lineFit) domain.TrendType {
	switch {
	case fit.ResidualVariance > volatileResidualVariance:
		return domain.TrendVolatile
	case abs(fit.Slope) < stableSlopeEpsilon:
		return domain.TrendStable
	case fit.Slope > 0:
		return domain.TrendImproving
	default:
		return domain.TrendDeclining
	}
}

// timeToTarget solves the fitted line for full progress, relative to the
// last observation. A non-positive slope never reaches the target.
func timeToTarget(fit lineFit, lastX float64) *float64 {
	if fit.Slope <= 0 {
		return nil
	}
	days := (targetProgress-fit.Intercept)/fit.Slope - lastX
	if days < 0 {
		days = 0
	}
	return &days
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
