package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// FormatSessionList renders the live session table inside a bordered box.
func FormatSessionList(sessions []*domain.MonitoringSession, now time.Time) string {
	headers := []string{"ID", "USER", "STARTED", "INPUTS", "RISK"}
	rows := make([][]string, 0, len(sessions))

	for _, s := range sessions {
		risk := Dim("--")
		if a := s.LatestAssessment(); a != nil {
			risk = RiskIndicator(a.Level)
		}
		rows = append(rows, []string{
			Bold(s.ID),
			StyleFg.Render(s.UserID),
			HumanTimestampFrom(s.StartTime, now),
			fmt.Sprintf("%d", len(s.EmotionalStates)),
			risk,
		})
	}

	return RenderBox("Live sessions", RenderTable(headers, rows))
}

// FormatReading renders one analyzed utterance: the emotional reading and
// the risk verdict it produced.
func FormatReading(state domain.EmotionalState, assessment domain.RiskAssessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VALENCE   "), RenderBipolar(state.Valence, 10)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("AROUSAL   "), RenderGauge(state.Arousal, 10, StyleBlue)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DOMINANCE "), RenderGauge(state.Dominance, 10, StyleBlue)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CONFIDENCE"), RenderGauge(state.Confidence, 10, StylePurple)))
	if len(state.Indicators) > 0 {
		b.WriteString(Dim("signals: "+strings.Join(state.Indicators, ", ")) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		StyleDim.Render("RISK      "),
		RiskIndicator(assessment.Level),
		Dim(fmt.Sprintf("(score %.2f, confidence %.2f)", assessment.Score, assessment.Confidence)),
	))
	if len(assessment.ProtectiveFactors) > 0 {
		b.WriteString(Dim("protective: "+strings.Join(assessment.ProtectiveFactors, ", ")) + "\n")
	}

	for _, rec := range assessment.Recommendations {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			PriorityBadge(rec.Priority),
			StyleFg.Render(rec.Action),
			Dim("("+rec.Timeframe+")"),
		))
		if len(rec.Resources) > 0 {
			b.WriteString("    " + Dim(strings.Join(rec.Resources, " · ")) + "\n")
		}
	}

	return b.String()
}

// FormatMetrics renders the session metrics card.
func FormatMetrics(m *domain.MonitoringMetrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("AVG RISK   "), RenderGauge(m.AverageRiskScore, 10, RiskColor(domain.RiskLevelForScore(m.AverageRiskScore)))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STABILITY  "), RenderGauge(m.EmotionalStability, 10, StyleBlue)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ENGAGEMENT "), RenderGauge(m.EngagementLevel, 10, StyleBlue)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROGRESS   "), RenderGauge(m.TherapeuticProgress, 10, StyleGreen)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("QUALITY    "), RenderGauge(m.SessionQuality, 10, StylePurple)))
	b.WriteString(Dim(fmt.Sprintf("%d analyzed inputs", m.AnalyzedInputs)))

	return RenderBox(fmt.Sprintf("Session %s", m.SessionID), b.String())
}

// FormatSessionSummary renders the closing summary after a session stops.
func FormatSessionSummary(s *domain.MonitoringSession, m *domain.MonitoringMetrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", Bold(s.ID), Dim("("+s.UserID+")")))
	if s.EndTime != nil {
		dur := s.EndTime.Sub(s.StartTime).Round(time.Second)
		b.WriteString(Dim(fmt.Sprintf("ran %s, %d inputs analyzed", dur, m.AnalyzedInputs)) + "\n")
	}
	if len(s.Goals) > 0 {
		b.WriteString(Dim("goals: "+strings.Join(s.Goals, ", ")) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("AVG RISK   "), RenderGauge(m.AverageRiskScore, 10, RiskColor(domain.RiskLevelForScore(m.AverageRiskScore)))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STABILITY  "), RenderGauge(m.EmotionalStability, 10, StyleBlue)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ENGAGEMENT "), RenderGauge(m.EngagementLevel, 10, StyleBlue)))
	b.WriteString(fmt.Sprintf("%s  %s", StyleDim.Render("QUALITY    "), RenderGauge(m.SessionQuality, 10, StylePurple)))

	if n := len(s.Interventions); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d intervention(s) recorded", n)))
		b.WriteString(Dim(" · review with 'attune intervention list'"))
	}

	return RenderBox("Session stopped", b.String())
}

// FormatInterventionList renders intervention records as a table.
func FormatInterventionList(records []domain.InterventionRecord, now time.Time) string {
	headers := []string{"ID", "SESSION", "TYPE", "ACTION", "WHEN", "OUTCOME", "FOLLOW-UP"}
	rows := make([][]string, 0, len(records))

	for _, r := range records {
		action := r.Action
		if len(action) > 44 {
			action = action[:41] + "..."
		}
		followUp := Dim("--")
		if r.FollowUpRequired {
			followUp = StyleRed.Render("required")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			StyleFg.Render(r.SessionID),
			Dim(string(r.Type)),
			StyleFg.Render(action),
			HumanTimestampFrom(r.Timestamp, now),
			OutcomePill(r.Outcome),
			followUp,
		})
	}

	return RenderBox("Interventions", RenderTable(headers, rows))
}
