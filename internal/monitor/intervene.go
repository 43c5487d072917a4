package monitor

import (
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

const maxRecommendations = 3

var crisisResources = []string{
	"988 Suicide & Crisis Lifeline (call or text 988)",
	"Crisis Text Line (text HOME to 741741)",
	"Local emergency services (911)",
}

// RecommendInterventions maps a risk level and the present factor types to a
// fixed set of recommendations. Critical always leads with the urgent crisis
// protocol; lower levels add factor-specific guidance. At most three
// recommendations are returned.
func RecommendInterventions(level domain.RiskLevel, score float64, factors []domain.RiskFactor) []domain.InterventionRecommendation {
	var recs []domain.InterventionRecommendation

	present := map[domain.FactorType]bool{}
	for _, f := range factors {
		present[f.Type] = true
	}

	switch level {
	case domain.RiskCritical:
		rationale := "Risk score in the critical band"
		if score >= domain.ImminentThreshold {
			rationale = "Immediate safety concern detected"
		}
		recs = append(recs, domain.InterventionRecommendation{
			Type:      domain.InterventionImmediate,
			Priority:  domain.PriorityUrgent,
			Action:    "Initiate crisis intervention protocol",
			Rationale: rationale,
			Timeframe: "immediately",
			Resources: crisisResources,
		})
		if present[domain.FactorEmotional] {
			recs = append(recs, domain.InterventionRecommendation{
				Type:      domain.InterventionImmediate,
				Priority:  domain.PriorityHigh,
				Action:    "Guide a grounding exercise before continuing",
				Rationale: "Acute emotional distress alongside critical risk",
				Timeframe: "now",
				Resources: []string{"5-4-3-2-1 sensory grounding", "paced breathing"},
			})
		}
	case domain.RiskHigh:
		recs = append(recs, domain.InterventionRecommendation{
			Type:      domain.InterventionShortTerm,
			Priority:  domain.PriorityHigh,
			Action:    "Schedule a check-in with the care provider this week",
			Rationale: "Sustained elevated risk signals",
			Timeframe: "within 7 days",
			Resources: []string{"provider scheduling", "safety plan review"},
		})
		if present[domain.FactorEmotional] {
			recs = append(recs, domain.InterventionRecommendation{
				Type:      domain.InterventionImmediate,
				Priority:  domain.PriorityHigh,
				Action:    "Guide a grounding exercise",
				Rationale: "Acute emotional distress detected",
				Timeframe: "now",
				Resources: []string{"paced breathing", "progressive muscle relaxation"},
			})
		}
		if present[domain.FactorCognitive] {
			recs = append(recs, domain.InterventionRecommendation{
				Type:      domain.InterventionShortTerm,
				Priority:  domain.PriorityMedium,
				Action:    "Revisit the coping plan and one small controllable step",
				Rationale: "Language suggests low perceived control",
				Timeframe: "within 48 hours",
				Resources: []string{"coping plan worksheet"},
			})
		}
	case domain.RiskModerate:
		recs = append(recs, domain.InterventionRecommendation{
			Type:      domain.InterventionShortTerm,
			Priority:  domain.PriorityMedium,
			Action:    "Practice one coping strategy from the personal plan",
			Rationale: "Moderate risk signals in recent input",
			Timeframe: "within 24 hours",
			Resources: []string{"coping strategy list"},
		})
		if present[domain.FactorSocial] {
			recs = append(recs, domain.InterventionRecommendation{
				Type:      domain.InterventionShortTerm,
				Priority:  domain.PriorityMedium,
				Action:    "Reach out to one supportive contact",
				Rationale: "Social strain indicators present",
				Timeframe: "within 48 hours",
				Resources: []string{"support contact list"},
			})
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// BuildInterventionRecords creates pending records for every recommendation
// of high or urgent priority. Outcome tracking belongs to the clinical-review
// collaborator; records start pending.
func BuildInterventionRecords(sessionID string, recs []domain.InterventionRecommendation, now time.Time, newID func() string) []domain.InterventionRecord {
	var records []domain.InterventionRecord
	for _, rec := range recs {
		if rec.Priority != domain.PriorityHigh && rec.Priority != domain.PriorityUrgent {
			continue
		}
		records = append(records, domain.InterventionRecord{
			ID:               newID(),
			SessionID:        sessionID,
			Type:             rec.Type,
			Action:           rec.Action,
			Timestamp:        now,
			Outcome:          domain.OutcomePending,
			FollowUpRequired: rec.Priority == domain.PriorityUrgent,
		})
	}
	return records
}
