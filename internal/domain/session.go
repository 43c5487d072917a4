package domain

import "time"

// MonitoringSession is the aggregate root for one live monitoring run.
// Histories are append-only and always grow in lockstep: one EmotionalState
// and one RiskAssessment per analyzed input.
//
// Sessions are owned by the monitor arena; callers only ever see snapshots.
type MonitoringSession struct {
	ID              string
	UserID          string
	StartTime       time.Time
	EndTime         *time.Time
	EmotionalStates []EmotionalState
	RiskAssessments []RiskAssessment
	Interventions   []InterventionRecord
	Goals           []string
}

// Active reports whether the session has not been stopped yet.
func (s *MonitoringSession) Active() bool {
	return s.EndTime == nil
}

// LatestState returns the most recent emotional state, or nil when the
// session has no analyzed inputs yet.
func (s *MonitoringSession) LatestState() *EmotionalState {
	if len(s.EmotionalStates) == 0 {
		return nil
	}
	return &s.EmotionalStates[len(s.EmotionalStates)-1]
}

// LatestAssessment returns the most recent risk assessment, or nil when the
// session has no analyzed inputs yet.
func (s *MonitoringSession) LatestAssessment() *RiskAssessment {
	if len(s.RiskAssessments) == 0 {
		return nil
	}
	return &s.RiskAssessments[len(s.RiskAssessments)-1]
}

// MonitoringMetrics summarizes a session for reporting consumers. A session
// with no analyzed inputs reports the uninformed prior: zero risk and 0.5 on
// every quality axis.
type MonitoringMetrics struct {
	SessionID                 string
	AverageRiskScore          float64
	EmotionalStability        float64
	EngagementLevel           float64
	TherapeuticProgress       float64
	InterventionEffectiveness float64
	SessionQuality            float64
	AnalyzedInputs            int
}

// NeutralMetrics returns the defined uninformed prior for an empty session.
func NeutralMetrics(sessionID string) *MonitoringMetrics {
	return &MonitoringMetrics{
		SessionID:                 sessionID,
		AverageRiskScore:          0,
		EmotionalStability:        0.5,
		EngagementLevel:           0.5,
		TherapeuticProgress:       0.5,
		InterventionEffectiveness: 0.5,
		SessionQuality:            0.5,
	}
}
