// Package advisor turns goal selections and accumulated signals into
// conflict reports and prioritized recommendations. Detection and generation
// are pure passes over their inputs; only the generated ids are fresh per
// call.
package advisor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucbaten/attune/internal/catalog"
	"github.com/lucbaten/attune/internal/domain"
)

const (
	// extraMemberSeverityStep raises severity for each matched member past
	// the pattern's trigger count.
	extraMemberSeverityStep = 0.1

	// activeProgressBoost raises severity when conflicting goals are past
	// half progress: abandoning or reshuffling live work costs more.
	activeProgressBoost  = 0.2
	activeProgressCutoff = 50.0
)

// ConflictInput is one detection pass's input. Progress is optional; without
// it severity skips the active-progress boost.
type ConflictInput struct {
	SelectedGoals []string
	Progress      map[string]*domain.GoalProgress
	Now           time.Time
}

// DetectConflicts runs the catalog's conflict patterns over a goal selection
// in their defined order. Empty or unknown selections produce an empty
// report, never an error.
func DetectConflicts(cat *catalog.Catalog, input ConflictInput) domain.ConflictReport {
	if cat == nil {
		cat = catalog.Default()
	}

	report := domain.ConflictReport{
		SafeToProceed: true,
		WarningLevel:  domain.RiskLow,
		CheckedGoals:  append([]string(nil), input.SelectedGoals...),
		GeneratedAt:   input.Now,
	}

	selected := make(map[string]bool, len(input.SelectedGoals))
	for _, id := range input.SelectedGoals {
		selected[id] = true
	}

	var severitySum float64
	for _, pattern := range cat.Patterns {
		matched := matchedMembers(pattern, selected)
		if len(matched) < pattern.MinSelected {
			continue
		}

		score := pattern.BaseSeverity
		score += extraMemberSeverityStep * float64(len(matched)-pattern.MinSelected)
		explanation := pattern.Description
		if boosted(matched, input.Progress) {
			score += activeProgressBoost
			explanation = fmt.Sprintf("%s; parts of this combination are past half progress", explanation)
		}
		if score > 1 {
			score = 1
		}

		conflict := domain.GoalConflict{
			ID:             uuid.New().String(),
			Pattern:        pattern.Name,
			Goals:          matched,
			Severity:       domain.RiskLevelForScore(score),
			SeverityScore:  score,
			Explanation:    explanation,
			AutoResolvable: pattern.AutoResolvable,
			Strategies:     append([]domain.ResolutionStrategy(nil), pattern.Strategies...),
			DetectedAt:     input.Now,
		}
		report.Conflicts = append(report.Conflicts, conflict)
		severitySum += score
		if conflict.Severity == domain.RiskCritical {
			report.SafeToProceed = false
		}
	}

	if len(report.Conflicts) > 0 {
		report.WarningLevel = domain.RiskLevelForScore(severitySum / float64(len(report.Conflicts)))
	}
	return report
}

// matchedMembers returns the pattern members present in the selection, in
// pattern order so reports stay stable across passes.
func matchedMembers(pattern catalog.Pattern, selected map[string]bool) []string {
	var matched []string
	for _, id := range pattern.Goals {
		if selected[id] {
			matched = append(matched, id)
		}
	}
	return matched
}

func boosted(goalIDs []string, progress map[string]*domain.GoalProgress) bool {
	for _, id := range goalIDs {
		if gp, ok := progress[id]; ok && gp != nil && gp.Progress > activeProgressCutoff {
			return true
		}
	}
	return false
}
