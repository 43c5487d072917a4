package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
)

// FormatInsights renders the full analytics snapshot: published trends,
// systemic risk predictions and outcome projections.
func FormatInsights(resp *contract.InsightResponse, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Trends") + "\n")
	if len(resp.Trends) == 0 {
		b.WriteString(Dim("Not enough history for a confident trend yet.") + "\n")
	} else {
		headers := []string{"GOAL", "TREND", "SLOPE", "CONFIDENCE", "30D PROJECTION"}
		rows := make([][]string, 0, len(resp.Trends))
		for _, tr := range resp.Trends {
			rows = append(rows, []string{
				Bold(GoalLabel(tr.GoalID)),
				TrendBadge(tr.Trend),
				slopeLabel(tr.Slope),
				fmt.Sprintf("%.2f", tr.Confidence),
				RenderProgress(tr.ProjectedOutcome/100, 8),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n" + Header("Risk outlook") + "\n")
	if len(resp.Risks) == 0 {
		b.WriteString(Dim("No elevated risks detected.") + "\n")
	} else {
		for _, r := range resp.Risks {
			b.WriteString(formatRiskPrediction(r))
		}
	}

	b.WriteString("\n" + Header("Projected outcomes") + "\n")
	if len(resp.Outcomes) == 0 {
		b.WriteString(Dim("No goal has enough trend data to project.") + "\n")
	} else {
		for _, o := range resp.Outcomes {
			b.WriteString(formatOutcome(o))
		}
	}

	b.WriteString("\n")
	source := "computed " + strings.ToLower(HumanTimestampFrom(resp.GeneratedAt, now))
	if resp.FromCache {
		source += " (cached, use --refresh to recompute)"
	}
	b.WriteString(Dim(source) + "\n")

	return b.String()
}

// formatRiskPrediction renders one systemic risk block.
func formatRiskPrediction(r domain.RiskPrediction) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		RiskIndicator(r.Severity),
		Bold(predictionLabel(r.Type)),
		Dim(fmt.Sprintf("(%.0f%% within %dd)", r.Probability*100, r.TimeframeDays)),
	))
	for _, ind := range r.Indicators {
		b.WriteString("  " + Dim("· "+ind) + "\n")
	}
	for _, m := range r.MitigationStrategies {
		b.WriteString("  " + StyleBlue.Render("→ ") + StyleFg.Render(m) + "\n")
	}

	return b.String()
}

// formatOutcome renders one outcome projection with its scenario spread.
func formatOutcome(o domain.OutcomePrediction) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		Bold(GoalLabel(o.GoalID)),
		StyleFg.Render("expected "+FormatPct(o.ExpectedOutcome)),
		Dim(fmt.Sprintf("(range %s-%s, confidence %.2f)", FormatPct(o.ConfidenceLow), FormatPct(o.ConfidenceHigh), o.Confidence)),
	))
	for _, s := range o.Scenarios {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			Dim(fmt.Sprintf("%3.0f%%", s.Probability*100)),
			StyleFg.Render(s.Name),
			Dim("→ "+FormatPct(s.Outcome)),
		))
	}

	return b.String()
}

// slopeLabel renders a signed progress-per-day slope.
func slopeLabel(slope float64) string {
	label := fmt.Sprintf("%+.1f/d", slope)
	switch {
	case slope > 0.05:
		return StyleGreen.Render(label)
	case slope < -0.05:
		return StyleRed.Render(label)
	default:
		return Dim(label)
	}
}

// predictionLabel turns a prediction type into a display label.
func predictionLabel(t domain.PredictionType) string {
	switch t {
	case domain.PredictDropout:
		return "Dropout risk"
	case domain.PredictPlateau:
		return "Plateau risk"
	case domain.PredictRegression:
		return "Regression risk"
	case domain.PredictCrisis:
		return "Crisis risk"
	case domain.PredictBurnout:
		return "Burnout risk"
	default:
		return string(t)
	}
}
