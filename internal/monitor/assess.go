package monitor

import (
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/signal"
)

// Additive risk weights. Contributions accumulate, the protective discount
// subtracts, and the final score is clamped to [0,1] before bucketing.
const (
	valenceRiskThreshold = -0.4
	valenceRiskBase      = 0.2
	valenceRiskSpan      = 0.2

	panicArousalThreshold = 0.7
	panicWeight           = 0.35

	dominanceRiskThreshold = 0.3
	dominanceWeight        = 0.25

	crisisWeight     = 0.6
	crisisScoreFloor = 0.95

	protectivePerFactor = 0.1
	protectiveCap       = 0.3
)

// AssessInput carries one extraction plus the session's state history.
// History must already include the extracted state as its final element so
// duration and trend scans see the current turn.
type AssessInput struct {
	Extraction signal.Extraction
	History    []domain.EmotionalState
}

type riskContribution func(AssessInput) (float64, *domain.RiskFactor)

// AssessRisk turns one extraction into a risk assessment. Contributions are
// additive and independent; explicit crisis language overrides the bucketing
// as a terminal step, forcing critical with a floored score.
func AssessRisk(input AssessInput) domain.RiskAssessment {
	var score float64
	var factors []domain.RiskFactor

	contributions := []riskContribution{
		negativeValenceRisk,
		acuteDistressRisk,
		lowDominanceRisk,
		crisisLanguageRisk,
	}
	for _, contribute := range contributions {
		delta, factor := contribute(input)
		score += delta
		if factor != nil {
			factors = append(factors, *factor)
		}
	}

	discount := protectivePerFactor * float64(len(input.Extraction.Protective))
	if discount > protectiveCap {
		discount = protectiveCap
	}
	score -= discount

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	level := domain.RiskLevelForScore(score)
	if len(input.Extraction.CrisisSignals) > 0 {
		level = domain.RiskCritical
		if score < crisisScoreFloor {
			score = crisisScoreFloor
		}
	}

	state := input.Extraction.State
	return domain.RiskAssessment{
		Level:             level,
		Score:             score,
		Factors:           factors,
		ProtectiveFactors: input.Extraction.Protective,
		Recommendations:   RecommendInterventions(level, score, factors),
		Confidence:        state.Confidence,
		Timestamp:         state.Timestamp,
	}
}

func negativeValenceRisk(input AssessInput) (float64, *domain.RiskFactor) {
	state := input.Extraction.State
	if state.Valence >= valenceRiskThreshold {
		return 0, nil
	}
	// Scale linearly from 0.2 at the threshold to 0.4 at valence -1.
	depth := (valenceRiskThreshold - state.Valence) / (1 + valenceRiskThreshold)
	delta := valenceRiskBase + valenceRiskSpan*depth

	severity := domain.RiskModerate
	if state.Valence < -0.7 {
		severity = domain.RiskHigh
	}
	return delta, &domain.RiskFactor{
		Type:        domain.FactorEmotional,
		Severity:    severity,
		Indicators:  input.Extraction.NegativeHits,
		DurationMin: StateDuration(input.History, domain.EmotionalState.Negative),
		Trend:       StateTrend(input.History, valenceOf),
	}
}

func acuteDistressRisk(input AssessInput) (float64, *domain.RiskFactor) {
	state := input.Extraction.State
	if state.Arousal <= panicArousalThreshold || state.Valence >= 0 {
		return 0, nil
	}
	return panicWeight, &domain.RiskFactor{
		Type:        domain.FactorEmotional,
		Severity:    domain.RiskHigh,
		Indicators:  input.Extraction.ArousalHits,
		DurationMin: StateDuration(input.History, domain.EmotionalState.Agitated),
		Trend:       StateTrend(input.History, arousalBalance),
	}
}

func lowDominanceRisk(input AssessInput) (float64, *domain.RiskFactor) {
	state := input.Extraction.State
	if state.Dominance >= dominanceRiskThreshold {
		return 0, nil
	}
	return dominanceWeight, &domain.RiskFactor{
		Type:        domain.FactorCognitive,
		Severity:    domain.RiskModerate,
		Indicators:  input.Extraction.DominanceHits,
		DurationMin: StateDuration(input.History, domain.EmotionalState.Withdrawn),
		Trend:       StateTrend(input.History, dominanceOf),
	}
}

func crisisLanguageRisk(input AssessInput) (float64, *domain.RiskFactor) {
	signals := input.Extraction.CrisisSignals
	if len(signals) == 0 {
		return 0, nil
	}
	return crisisWeight, &domain.RiskFactor{
		Type:        domain.FactorBehavioral,
		Severity:    domain.RiskCritical,
		Indicators:  signals,
		DurationMin: TurnMinutes,
		Trend:       domain.FactorWorsening,
	}
}
