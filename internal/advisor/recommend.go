package advisor

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/domain"
)

const (
	// DefaultMaxRecommendations caps the set when the caller passes no limit.
	DefaultMaxRecommendations = 5

	highEngagement = 0.7
	lowEngagement  = 0.3

	// Review cadence by urgency of what the set contains.
	urgentReviewDays  = 3
	engagedReviewDays = 7
	defaultReviewDays = 14
	lowReviewDays     = 21

	staleDays     = 7
	veryStaleDays = 14

	// dropoutActionThreshold gates the portfolio-shrink recommendation on
	// predicted dropout or plateau probability.
	dropoutActionThreshold = 0.5

	// integrationGoalLoad is the active-goal count past which engaged users
	// get nudged to protect recovery time.
	integrationGoalLoad = 4
)

// loadCategories are the goal categories that draw on emotional reserves;
// stabilizerCategories are the ones that replenish them. The goal-gap
// generator fires when a selection carries load without a stabilizer.
var (
	loadCategories       = map[string]bool{"emotional-regulation": true, "mood": true, "cognitive-patterns": true}
	stabilizerCategories = map[string]bool{"self-relation": true, "behavioral-health": true}
)

// GenerateRecommendations runs the four generators over a user context,
// merges their candidates, sorts by (priority, confidence, relevance) and
// truncates to max. An empty context yields an empty set, never an error.
func GenerateRecommendations(cat *catalog.Catalog, uc domain.UserContext, max int) domain.RecommendationSet {
	if cat == nil {
		cat = catalog.Default()
	}
	if max <= 0 {
		max = DefaultMaxRecommendations
	}

	var recs []domain.Recommendation
	recs = append(recs, goalGapRecommendations(cat, uc)...)
	recs = append(recs, approachRecommendations(cat, uc)...)
	recs = append(recs, progressRecommendations(cat, uc)...)
	recs = append(recs, integrationRecommendations(uc)...)

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.Rank() != recs[j].Priority.Rank() {
			return recs[i].Priority.Rank() > recs[j].Priority.Rank()
		}
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
	if len(recs) > max {
		recs = recs[:max]
	}

	return domain.RecommendationSet{
		Recommendations:      recs,
		PersonalizationScore: personalizationScore(recs),
		NextReviewDate:       nextReviewDate(uc, recs),
		GeneratedAt:          uc.Now,
	}
}

// goalGapRecommendations spots missing counterweights in the selection:
// emotionally demanding goals without a stabilizing practice, and elevated
// live risk without any interpersonal-support goal.
func goalGapRecommendations(cat *catalog.Catalog, uc domain.UserContext) []domain.Recommendation {
	if len(uc.SelectedGoals) == 0 {
		return nil
	}

	categories := make(map[string]bool)
	for _, id := range uc.SelectedGoals {
		if g, ok := cat.Lookup(id); ok {
			categories[g.Category] = true
		}
	}

	var recs []domain.Recommendation
	if hasAny(categories, loadCategories) && !hasAny(categories, stabilizerCategories) {
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "goal_gap",
			Priority:    domain.PriorityMedium,
			Title:       "Add a stabilizing practice",
			Description: "Your current goals all draw on emotional reserves without anything that rebuilds them.",
			Actions: []string{
				"Browse the self-relation and behavioral-health goals",
				"Pick one low-effort practice such as mindfulness or a sleep routine",
			},
			Confidence:     0.75,
			RelevanceScore: 0.7,
			Factors: []domain.PersonalizationFactor{
				{Name: "goal_selection", Weight: 0.8},
				{Name: "catalog_coverage", Weight: 0.6},
			},
			GeneratedAt: uc.Now,
		})
	}
	if uc.CurrentRisk != nil && uc.CurrentRisk.Level.Rank() >= domain.RiskHigh.Rank() && !categories["interpersonal"] {
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "goal_gap",
			Priority:    domain.PriorityHigh,
			Title:       "Add a connection goal",
			Description: "Recent sessions show elevated risk and none of your goals build outside support.",
			Actions: []string{
				"Consider a relationship-skills or social-confidence goal",
				"Identify one person to check in with this week",
			},
			Confidence:     0.7,
			RelevanceScore: 0.75,
			Factors: []domain.PersonalizationFactor{
				{Name: "current_risk", Weight: 0.9},
				{Name: "goal_selection", Weight: 0.6},
			},
			GeneratedAt: uc.Now,
		})
	}
	return recs
}

// approachRecommendations reads the published trends: declining goals need a
// reworked approach, volatile ones a steadier routine.
func approachRecommendations(cat *catalog.Catalog, uc domain.UserContext) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, id := range orderedGoalIDs(uc.SelectedGoals, trendKeys(uc.Trends)) {
		trend, ok := uc.Trends[id]
		if !ok || trend == nil {
			continue
		}
		title := goalTitle(cat, id)
		switch trend.Trend {
		case domain.TrendDeclining:
			recs = append(recs, domain.Recommendation{
				ID:          uuid.New().String(),
				Category:    "approach",
				Priority:    domain.PriorityHigh,
				Title:       fmt.Sprintf("Rework the approach to %s", title),
				Description: fmt.Sprintf("Progress on %s has been declining; the current approach is not holding.", title),
				Actions: []string{
					"Review what changed when progress turned down",
					"Cut the step size in half and rebuild momentum",
				},
				Confidence:     trend.Confidence,
				RelevanceScore: 0.8,
				Factors: []domain.PersonalizationFactor{
					{Name: "trend_declining", Weight: 0.85},
					{Name: "progress_history", Weight: 0.6},
				},
				GeneratedAt: uc.Now,
			})
		case domain.TrendVolatile:
			recs = append(recs, domain.Recommendation{
				ID:          uuid.New().String(),
				Category:    "approach",
				Priority:    domain.PriorityMedium,
				Title:       fmt.Sprintf("Steady the routine around %s", title),
				Description: fmt.Sprintf("Progress on %s swings widely between checks; consistency matters more than pace here.", title),
				Actions: []string{
					"Fix a regular time and a minimum daily version of the practice",
					"Log progress at the same cadence every time",
				},
				Confidence:     trend.Confidence,
				RelevanceScore: 0.7,
				Factors: []domain.PersonalizationFactor{
					{Name: "trend_volatile", Weight: 0.7},
					{Name: "progress_history", Weight: 0.6},
				},
				GeneratedAt: uc.Now,
			})
		}
	}
	return recs
}

// progressRecommendations flags goals gone quiet and, when the predictor
// sees dropout or plateau risk, a portfolio-level restart.
func progressRecommendations(cat *catalog.Catalog, uc domain.UserContext) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, id := range orderedGoalIDs(uc.SelectedGoals, progressKeys(uc.Progress)) {
		gp, ok := uc.Progress[id]
		if !ok || gp == nil || gp.Status != domain.GoalInProgress {
			continue
		}
		days := gp.DaysSinceUpdate(uc.Now)
		if days < staleDays {
			continue
		}
		priority := domain.PriorityMedium
		if days >= veryStaleDays {
			priority = domain.PriorityHigh
		}
		title := goalTitle(cat, id)
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "progress",
			Priority:    priority,
			Title:       fmt.Sprintf("Restart %s with a smaller step", title),
			Description: fmt.Sprintf("No progress has been logged on %s for %d days.", title, days),
			Actions: []string{
				"Pick the smallest version of the next step",
				"Schedule it for a specific day this week",
			},
			Confidence:     0.8,
			RelevanceScore: 0.75,
			Factors: []domain.PersonalizationFactor{
				{Name: "days_inactive", Weight: 0.8},
				{Name: "goal_status", Weight: 0.5},
			},
			GeneratedAt: uc.Now,
		})
	}

	for _, p := range uc.RiskPredictions {
		if p.Type != domain.PredictDropout && p.Type != domain.PredictPlateau {
			continue
		}
		if p.Probability <= dropoutActionThreshold {
			continue
		}
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "progress",
			Priority:    domain.PriorityHigh,
			Title:       "Shrink the active goal set",
			Description: "The overall pattern points toward stalling out; fewer concurrent goals recover momentum faster than pushing all of them.",
			Actions: []string{
				"Pause every goal except the one that matters most right now",
				"Set a two-week check-in to reassess",
			},
			Confidence:     p.Probability,
			RelevanceScore: 0.8,
			Factors: []domain.PersonalizationFactor{
				{Name: "risk_prediction", Weight: 0.9},
				{Name: "engagement", Weight: 0.4},
			},
			GeneratedAt: uc.Now,
		})
		break
	}
	return recs
}

// integrationRecommendations covers the self-care side: stop-and-stabilize
// under critical risk, deliberate recovery under burnout risk, and a
// protected rest day for heavily loaded but engaged users.
func integrationRecommendations(uc domain.UserContext) []domain.Recommendation {
	var recs []domain.Recommendation
	if uc.CurrentRisk != nil && uc.CurrentRisk.Level == domain.RiskCritical {
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "integration",
			Priority:    domain.PriorityUrgent,
			Title:       "Pause goal work and stabilize first",
			Description: "Current risk is critical. Goal progress can wait; safety and support cannot.",
			Actions: []string{
				"Follow the crisis guidance from your latest session",
				"Put all goals on hold until risk comes down",
			},
			Confidence:     0.9,
			RelevanceScore: 0.9,
			Factors: []domain.PersonalizationFactor{
				{Name: "current_risk", Weight: 1.0},
			},
			GeneratedAt: uc.Now,
		})
	}
	for _, p := range uc.RiskPredictions {
		if p.Type != domain.PredictBurnout {
			continue
		}
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "integration",
			Priority:    domain.PriorityHigh,
			Title:       "Schedule deliberate recovery",
			Description: "The recent pace and arousal pattern points toward burnout; recovery needs to be planned, not left to chance.",
			Actions: []string{
				"Block out one evening this week with no goal work",
				"Drop the weekly pace target until energy returns",
			},
			Confidence:     p.Probability,
			RelevanceScore: 0.7,
			Factors: []domain.PersonalizationFactor{
				{Name: "burnout_risk", Weight: 0.8},
				{Name: "pace", Weight: 0.6},
			},
			GeneratedAt: uc.Now,
		})
		break
	}
	if effectiveEngagement(uc) >= highEngagement && len(uc.SelectedGoals) >= integrationGoalLoad {
		recs = append(recs, domain.Recommendation{
			ID:          uuid.New().String(),
			Category:    "integration",
			Priority:    domain.PriorityLow,
			Title:       "Protect an integration day",
			Description: "You are working a full goal load at high engagement; one protected day a week keeps that sustainable.",
			Actions: []string{
				"Choose a fixed weekly day with no goal work",
				"Use it to review what the week's work actually changed",
			},
			Confidence:     0.6,
			RelevanceScore: 0.6,
			Factors: []domain.PersonalizationFactor{
				{Name: "engagement", Weight: 0.7},
				{Name: "goal_load", Weight: 0.5},
			},
			GeneratedAt: uc.Now,
		})
	}
	return recs
}

// personalizationScore is the mean weight over every factor the included
// recommendations declare, zero when nothing declared any.
func personalizationScore(recs []domain.Recommendation) float64 {
	var sum float64
	var n int
	for _, r := range recs {
		for _, f := range r.Factors {
			sum += f.Weight
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func nextReviewDate(uc domain.UserContext, recs []domain.Recommendation) time.Time {
	days := defaultReviewDays
	switch {
	case anyUrgent(recs) || (uc.CurrentRisk != nil && uc.CurrentRisk.Level == domain.RiskCritical):
		days = urgentReviewDays
	case effectiveEngagement(uc) >= highEngagement:
		days = engagedReviewDays
	case effectiveEngagement(uc) < lowEngagement:
		days = lowReviewDays
	}
	return uc.Now.AddDate(0, 0, days)
}

func anyUrgent(recs []domain.Recommendation) bool {
	for _, r := range recs {
		if r.Priority == domain.PriorityUrgent {
			return true
		}
	}
	return false
}

// effectiveEngagement treats a zero value as the unknown default 0.5.
func effectiveEngagement(uc domain.UserContext) float64 {
	if uc.EngagementLevel <= 0 {
		return 0.5
	}
	return uc.EngagementLevel
}

func goalTitle(cat *catalog.Catalog, id string) string {
	if g, ok := cat.Lookup(id); ok {
		return g.Title
	}
	return id
}

func hasAny(have, want map[string]bool) bool {
	for k := range want {
		if have[k] {
			return true
		}
	}
	return false
}

// orderedGoalIDs walks the selection first, then any extra map keys in
// sorted order, so generator output is deterministic for a given context.
func orderedGoalIDs(selected []string, extra []string) []string {
	seen := make(map[string]bool, len(selected)+len(extra))
	ids := make([]string, 0, len(selected)+len(extra))
	for _, id := range selected {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func trendKeys(m map[string]*domain.TrendAnalysis) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func progressKeys(m map[string]*domain.GoalProgress) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
