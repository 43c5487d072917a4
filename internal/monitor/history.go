package monitor

import "github.com/lucbaten/attune/internal/domain"

// TurnMinutes is the assumed conversational cadence used to convert
// consecutive matching states into a duration.
const TurnMinutes = 2

// trendEpsilon is the half-mean difference below which a dimension reads as
// stable.
const trendEpsilon = 0.05

// trendWindow caps how many recent states feed a trend comparison.
const trendWindow = 5

// StateDuration scans the history backward from the most recent state and
// counts consecutive states matching the predicate, stopping at the first
// miss. The count is scaled by the assumed minutes-per-turn cadence.
func StateDuration(states []domain.EmotionalState, match func(domain.EmotionalState) bool) int {
	runs := 0
	for i := len(states) - 1; i >= 0; i-- {
		if !match(states[i]) {
			break
		}
		runs++
	}
	return runs * TurnMinutes
}

// StateTrend compares the older and newer halves of the last five states on
// one dimension. The value function must be oriented so that higher means
// healthier; use arousalBalance for arousal, where proximity to moderate
// activation is what matters.
func StateTrend(states []domain.EmotionalState, value func(domain.EmotionalState) float64) domain.FactorTrend {
	n := len(states)
	if n < 2 {
		return domain.FactorStable
	}
	if n > trendWindow {
		states = states[n-trendWindow:]
		n = trendWindow
	}
	mid := n / 2
	diff := meanOf(states[mid:], value) - meanOf(states[:mid], value)
	switch {
	case diff > trendEpsilon:
		return domain.FactorImproving
	case diff < -trendEpsilon:
		return domain.FactorWorsening
	default:
		return domain.FactorStable
	}
}

func meanOf(states []domain.EmotionalState, value func(domain.EmotionalState) float64) float64 {
	if len(states) == 0 {
		return 0
	}
	var sum float64
	for _, s := range states {
		sum += value(s)
	}
	return sum / float64(len(states))
}

func valenceOf(s domain.EmotionalState) float64   { return s.Valence }
func dominanceOf(s domain.EmotionalState) float64 { return s.Dominance }

// arousalBalance scores arousal by closeness to moderate activation: both
// numbness and panic read as unhealthy.
func arousalBalance(s domain.EmotionalState) float64 {
	d := s.Arousal - 0.5
	if d < 0 {
		d = -d
	}
	return 0.5 - d
}
