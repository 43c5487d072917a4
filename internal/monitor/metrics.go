package monitor

import "github.com/lucbaten/attune/internal/domain"

// stabilityVarianceScale maps valence variance onto [0,1] stability: zero
// variance is full stability, variance at or beyond the scale reads as zero.
const stabilityVarianceScale = 0.5

// ComputeMetrics summarizes a session. Empty history returns the neutral
// uninformed prior rather than an error.
func ComputeMetrics(session *domain.MonitoringSession) *domain.MonitoringMetrics {
	states := session.EmotionalStates
	if len(states) == 0 {
		return domain.NeutralMetrics(session.ID)
	}

	var riskSum float64
	for _, a := range session.RiskAssessments {
		riskSum += a.Score
	}
	avgRisk := riskSum / float64(len(session.RiskAssessments))

	stability := clamp01(1 - valenceVariance(states)/stabilityVarianceScale)

	// Confidence grows with expressed indicators, which tracks how much the
	// user is actually putting into words.
	engagement := clamp01(meanOf(states, func(s domain.EmotionalState) float64 { return s.Confidence }))

	progress := clamp01(0.5 + 0.5*halfMeanDelta(states, valenceOf))

	effectiveness := interventionEffectiveness(session.Interventions)

	quality := clamp01(0.25*stability + 0.25*engagement + 0.25*progress + 0.25*(1-avgRisk))

	return &domain.MonitoringMetrics{
		SessionID:                 session.ID,
		AverageRiskScore:          avgRisk,
		EmotionalStability:        stability,
		EngagementLevel:           engagement,
		TherapeuticProgress:       progress,
		InterventionEffectiveness: effectiveness,
		SessionQuality:            quality,
		AnalyzedInputs:            len(states),
	}
}

func valenceVariance(states []domain.EmotionalState) float64 {
	mean := meanOf(states, valenceOf)
	var sum float64
	for _, s := range states {
		d := s.Valence - mean
		sum += d * d
	}
	return sum / float64(len(states))
}

// halfMeanDelta compares the newer and older halves of the recent window on
// one dimension, mirroring StateTrend but keeping the magnitude.
func halfMeanDelta(states []domain.EmotionalState, value func(domain.EmotionalState) float64) float64 {
	n := len(states)
	if n < 2 {
		return 0
	}
	if n > trendWindow {
		states = states[n-trendWindow:]
		n = trendWindow
	}
	mid := n / 2
	return meanOf(states[mid:], value) - meanOf(states[:mid], value)
}

// interventionEffectiveness averages resolved intervention outcomes:
// successful 1.0, partial 0.5, unsuccessful 0. Pending records are excluded;
// with nothing resolved yet the neutral prior applies.
func interventionEffectiveness(records []domain.InterventionRecord) float64 {
	var sum float64
	resolved := 0
	for _, r := range records {
		switch r.Outcome {
		case domain.OutcomeSuccessful:
			sum += 1
		case domain.OutcomePartial:
			sum += 0.5
		case domain.OutcomeUnsuccessful:
			// counts as resolved with zero credit
		default:
			continue
		}
		resolved++
	}
	if resolved == 0 {
		return 0.5
	}
	return sum / float64(resolved)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
