package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

// StatusData holds everything the status dashboard renders.
type StatusData struct {
	UserID  string
	Goals   []*domain.GoalProgress
	Live    []*domain.MonitoringSession
	Pending []domain.InterventionRecord
	Risks   []domain.RiskPrediction
	Now     time.Time
}

// FormatStatus renders the one-screen overview: goal portfolio, live
// sessions, unresolved interventions and the current risk outlook.
func FormatStatus(data StatusData) string {
	var b strings.Builder

	b.WriteString(Header("Status: "+data.UserID) + "\n\n")

	if len(data.Goals) == 0 {
		b.WriteString(Dim("No goals tracked yet. Start with 'attune goal log'.") + "\n")
	} else {
		headers := []string{"GOAL", "PROGRESS", "STATUS", "UPDATED"}
		rows := make([][]string, 0, len(data.Goals))
		active := 0
		for _, g := range data.Goals {
			if g.Status == domain.GoalInProgress || g.Status == domain.GoalNotStarted {
				active++
			}
			rows = append(rows, []string{
				Bold(GoalLabel(g.GoalID)),
				RenderProgress(g.Progress/100, 8),
				GoalStatusPill(g.Status),
				HumanTimestampFrom(g.UpdatedAt, data.Now),
			})
		}
		b.WriteString(RenderTable(headers, rows))
		b.WriteString(Dim(fmt.Sprintf("%d tracked, %d active", len(data.Goals), active)) + "\n")
	}

	if len(data.Live) > 0 {
		b.WriteString("\n" + Header("Live sessions") + "\n")
		for _, s := range data.Live {
			risk := Dim("no readings yet")
			if a := s.LatestAssessment(); a != nil {
				risk = RiskIndicator(a.Level)
			}
			b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
				Bold(s.ID),
				Dim("started "+strings.ToLower(HumanTimestampFrom(s.StartTime, data.Now))),
				Dim(fmt.Sprintf("%d inputs", len(s.EmotionalStates))),
				risk,
			))
		}
	}

	if len(data.Pending) > 0 {
		b.WriteString("\n" + Header("Unresolved interventions") + "\n")
		for _, r := range data.Pending {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				TruncID(r.ID),
				StyleFg.Render(r.Action),
				Dim(strings.ToLower(HumanTimestampFrom(r.Timestamp, data.Now))),
			))
		}
		b.WriteString(Dim("  resolve with 'attune intervention resolve <id> --outcome <result>'") + "\n")
	}

	b.WriteString("\n" + Header("Risk outlook") + "\n")
	if len(data.Risks) == 0 {
		b.WriteString(Dim("No elevated risks detected.") + "\n")
	} else {
		for _, r := range data.Risks {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				RiskIndicator(r.Severity),
				Bold(predictionLabel(r.Type)),
				Dim(fmt.Sprintf("(%.0f%% within %dd)", r.Probability*100, r.TimeframeDays)),
			))
		}
	}

	return b.String()
}
