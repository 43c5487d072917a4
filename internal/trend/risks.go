package trend

import (
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// recentWindow bounds how many trailing states/assessments feed the risk
// evaluators.
const recentWindow = 5

// RiskInput is the full signal snapshot the risk evaluators read. All
// sequences are ordered oldest first.
type RiskInput struct {
	Progress    []*domain.GoalProgress
	States      []domain.EmotionalState
	Assessments []domain.RiskAssessment
	Now         time.Time
}

type riskEvaluator func(RiskInput) *domain.RiskPrediction

// PredictRisks runs every systemic-risk evaluator over the snapshot. Each
// evaluator accumulates weighted indicators independently and reports only
// when its probability clears the type-specific inclusion threshold, so the
// result carries zero to five predictions.
func PredictRisks(input RiskInput) []domain.RiskPrediction {
	evaluators := []riskEvaluator{
		evaluateDropout,
		evaluatePlateau,
		evaluateRegression,
		evaluateCrisis,
		evaluateBurnout,
	}

	var predictions []domain.RiskPrediction
	for _, evaluate := range evaluators {
		if p := evaluate(input); p != nil {
			predictions = append(predictions, *p)
		}
	}
	return predictions
}

func evaluateDropout(input RiskInput) *domain.RiskPrediction {
	var probability float64
	var indicators []string

	stale := maxDaysSinceUpdate(input.Progress, input.Now)
	if stale >= 7 {
		probability += 0.3
		indicators = append(indicators, "no progress updates for over a week")
	}
	if stale >= 14 {
		probability += 0.2
		indicators = append(indicators, "no progress updates for over two weeks")
	}
	if len(input.States) >= 2 && recentMean(input.States, valence) < -0.2 {
		probability += 0.2
		indicators = append(indicators, "negative emotional tone in recent sessions")
	}
	if len(input.States) >= 3 && recentMean(input.States, confidence) < 0.6 {
		probability += 0.15
		indicators = append(indicators, "sparse emotional expression in sessions")
	}

	if probability <= 0.3 {
		return nil
	}
	return newPrediction(domain.PredictDropout, probability, 14, indicators, []string{
		"Reach out with a low-effort check-in",
		"Reduce the active goal load",
		"Revisit goal relevance together",
	}, input.Now)
}

func evaluatePlateau(input RiskInput) *domain.RiskPrediction {
	var probability float64
	var indicators []string

	stalled := stalledGoals(input.Progress)
	tracked := len(input.Progress)
	if stalled > 0 {
		probability += 0.35
		indicators = append(indicators, "progress flat on a mid-journey goal")
	}
	if tracked > 0 && float64(stalled)/float64(tracked) > 0.5 {
		probability += 0.25
		indicators = append(indicators, "most tracked goals are stalled")
	}
	if len(input.States) >= 3 && recentMean(input.States, arousal) < 0.3 {
		probability += 0.15
		indicators = append(indicators, "low activation across recent sessions")
	}

	if probability <= 0.25 {
		return nil
	}
	return newPrediction(domain.PredictPlateau, probability, 21, indicators, []string{
		"Introduce a novel strategy or format",
		"Split the current goal into smaller milestones",
		"Review accumulated progress to rebuild momentum",
	}, input.Now)
}

func evaluateRegression(input RiskInput) *domain.RiskPrediction {
	var probability float64
	var indicators []string

	for _, goal := range input.Progress {
		if lastDelta(goal) < -5 {
			probability += 0.4
			indicators = append(indicators, "recent progress loss on "+goal.GoalID)
			break
		}
	}
	if len(input.States) >= 4 && recentHalfDelta(input.States, valence) < -0.1 {
		probability += 0.3
		indicators = append(indicators, "mood deteriorating across sessions")
	}
	if risingRisk(input.Assessments) {
		probability += 0.15
		indicators = append(indicators, "risk scores trending upward")
	}

	if probability <= 0.3 {
		return nil
	}
	return newPrediction(domain.PredictRegression, probability, 7, indicators, []string{
		"Review recent setbacks without judgment",
		"Reinstate previously successful routines",
		"Increase session frequency temporarily",
	}, input.Now)
}

func evaluateCrisis(input RiskInput) *domain.RiskPrediction {
	var probability float64
	var indicators []string

	for _, a := range lastAssessments(input.Assessments, recentWindow) {
		if a.Level == domain.RiskCritical {
			probability += 0.5
			indicators = append(indicators, "critical risk assessment in recent history")
			break
		}
	}
	if len(input.Assessments) > 0 && recentRiskMean(input.Assessments) > 0.5 {
		probability += 0.3
		indicators = append(indicators, "sustained elevated risk scores")
	}
	if len(input.States) >= 2 && recentMean(input.States, valence) < -0.5 {
		probability += 0.2
		indicators = append(indicators, "severe negative affect")
	}

	if probability <= 0.4 {
		return nil
	}
	return newPrediction(domain.PredictCrisis, probability, 3, indicators, []string{
		"Activate the crisis response plan",
		"Schedule an immediate clinical review",
		"Surface crisis hotline resources in the client",
	}, input.Now)
}

func evaluateBurnout(input RiskInput) *domain.RiskPrediction {
	var probability float64
	var indicators []string

	highArousal := len(input.States) >= 3 && recentMean(input.States, arousal) > 0.7
	if highArousal {
		probability += 0.3
		indicators = append(indicators, "sustained high activation")
	}
	if activeGoals(input.Progress) > 3 {
		probability += 0.25
		indicators = append(indicators, "more than three goals in flight")
	}
	if weeklyPace(input.Progress, input.Now) > 20 {
		probability += 0.2
		indicators = append(indicators, "progress pace above a sustainable band")
	}
	if highArousal && recentMean(input.States, valence) < 0 {
		probability += 0.15
		indicators = append(indicators, "agitation paired with negative affect")
	}

	if probability <= 0.35 {
		return nil
	}
	return newPrediction(domain.PredictBurnout, probability, 14, indicators, []string{
		"Pause lower-priority goals",
		"Schedule deliberate recovery time",
		"Lower weekly targets to a sustainable pace",
	}, input.Now)
}

func newPrediction(kind domain.PredictionType, probability float64, timeframeDays int, indicators, mitigations []string, now time.Time) *domain.RiskPrediction {
	if probability > 1 {
		probability = 1
	}
	return &domain.RiskPrediction{
		Type:                 kind,
		Probability:          probability,
		Severity:             domain.RiskLevelForScore(probability),
		TimeframeDays:        timeframeDays,
		Indicators:           indicators,
		MitigationStrategies: mitigations,
		GeneratedAt:          now,
	}
}

func valence(s domain.EmotionalState) float64    { return s.Valence }
func arousal(s domain.EmotionalState) float64    { return s.Arousal }
func confidence(s domain.EmotionalState) float64 { return s.Confidence }

func recentMean(states []domain.EmotionalState, value func(domain.EmotionalState) float64) float64 {
	if len(states) > recentWindow {
		states = states[len(states)-recentWindow:]
	}
	if len(states) == 0 {
		return 0
	}
	var sum float64
	for _, s := range states {
		sum += value(s)
	}
	return sum / float64(len(states))
}

// recentHalfDelta compares the newer and older halves of the recent window.
func recentHalfDelta(states []domain.EmotionalState, value func(domain.EmotionalState) float64) float64 {
	if len(states) > recentWindow {
		states = states[len(states)-recentWindow:]
	}
	n := len(states)
	if n < 2 {
		return 0
	}
	mid := n / 2
	var older, newer float64
	for _, s := range states[:mid] {
		older += value(s)
	}
	for _, s := range states[mid:] {
		newer += value(s)
	}
	return newer/float64(n-mid) - older/float64(mid)
}

func lastAssessments(assessments []domain.RiskAssessment, k int) []domain.RiskAssessment {
	if len(assessments) > k {
		return assessments[len(assessments)-k:]
	}
	return assessments
}

func recentRiskMean(assessments []domain.RiskAssessment) float64 {
	recent := lastAssessments(assessments, recentWindow)
	if len(recent) == 0 {
		return 0
	}
	var sum float64
	for _, a := range recent {
		sum += a.Score
	}
	return sum / float64(len(recent))
}

func risingRisk(assessments []domain.RiskAssessment) bool {
	recent := lastAssessments(assessments, recentWindow)
	if len(recent) < 2 {
		return false
	}
	return recent[len(recent)-1].Score > recent[0].Score+0.1
}

func maxDaysSinceUpdate(progress []*domain.GoalProgress, now time.Time) int {
	most := 0
	for _, goal := range progress {
		if goal.Status == domain.GoalCompleted || goal.Status == domain.GoalArchived {
			continue
		}
		if days := goal.DaysSinceUpdate(now); days > most {
			most = days
		}
	}
	return most
}

// stalledGoals counts in-progress goals whose recent entries stopped moving
// while the goal sits mid-journey.
func stalledGoals(progress []*domain.GoalProgress) int {
	count := 0
	for _, goal := range progress {
		if goal.Status != domain.GoalInProgress {
			continue
		}
		if goal.Progress < 20 || goal.Progress > 80 {
			continue
		}
		h := goal.History
		if len(h) < 3 {
			continue
		}
		last3 := h[len(h)-3:]
		if abs(last3[2].Progress-last3[0].Progress) < 1 {
			count++
		}
	}
	return count
}

func lastDelta(goal *domain.GoalProgress) float64 {
	h := goal.History
	if len(h) < 2 {
		return 0
	}
	return h[len(h)-1].Progress - h[len(h)-2].Progress
}

func activeGoals(progress []*domain.GoalProgress) int {
	count := 0
	for _, goal := range progress {
		if goal.Status == domain.GoalInProgress {
			count++
		}
	}
	return count
}

// weeklyPace averages each goal's progress gain over the trailing seven
// days across goals that moved in that window.
func weeklyPace(progress []*domain.GoalProgress, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -7)
	var total float64
	counted := 0
	for _, goal := range progress {
		var first, last *domain.ProgressEntry
		for i := range goal.History {
			e := &goal.History[i]
			if e.Timestamp.Before(cutoff) {
				continue
			}
			if first == nil {
				first = e
			}
			last = e
		}
		if first == nil || last == first {
			continue
		}
		total += last.Progress - first.Progress
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}
