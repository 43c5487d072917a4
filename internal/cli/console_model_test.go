package cli

import (
	"context"
	"testing"

	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/monitor"
	"github.com/lucbaten/attune/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// consoleDriver starts a live session and returns a teatest driver on its
// console model.
func consoleDriver(t *testing.T) (*App, *teatest.Driver) {
	t.Helper()
	app := testApp(t)

	_, err := app.Monitoring.Start(context.Background(), contract.StartSessionRequest{
		SessionID: "s1",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	events, err := app.Monitoring.Subscribe("s1")
	require.NoError(t, err)

	model := newConsoleModel(app, "s1", "user-1", events)
	d := teatest.New(t, model, teatest.WithSize(80, 24))
	d.DrainInit()
	return app, d
}

func TestConsoleModel_ShowsSessionHeader(t *testing.T) {
	_, d := consoleDriver(t)

	view := d.View()
	assert.Contains(t, view, "SESSION S1")
	assert.Contains(t, view, "user user-1")
}

func TestConsoleModel_AnalyzesTypedInput(t *testing.T) {
	app, d := consoleDriver(t)

	d.Type("I am feeling calm and hopeful today")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "❯ I am feeling calm and hopeful today")
	assert.Contains(t, view, "VALENCE")
	assert.Contains(t, view, "RISK")

	// The analysis landed on the live session, not just the screen.
	m, err := app.Monitoring.Metrics(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, m.AnalyzedInputs)
}

func TestConsoleModel_EmptyInputIgnored(t *testing.T) {
	_, d := consoleDriver(t)

	d.PressEnter()

	assert.NotContains(t, d.View(), "VALENCE")
}

func TestConsoleModel_EscQuits(t *testing.T) {
	_, d := consoleDriver(t)

	d.PressEsc()

	assert.True(t, d.Quitting)
}

func TestConsoleModel_SlashQuitQuits(t *testing.T) {
	_, d := consoleDriver(t)

	d.Type("/quit")
	d.PressEnter()

	assert.True(t, d.Quitting)
}

func TestConsoleModel_InterventionEventRendered(t *testing.T) {
	_, d := consoleDriver(t)

	d.Send(sessionEventMsg{event: monitor.Event{
		Type: monitor.EventIntervention,
		Record: &domain.InterventionRecord{
			ID:     "i1",
			Action: "Guide a grounding exercise",
		},
	}})

	view := d.View()
	assert.Contains(t, view, "intervention")
	assert.Contains(t, view, "Guide a grounding exercise")
}

func TestConsoleModel_MetricsEventRendered(t *testing.T) {
	_, d := consoleDriver(t)

	d.Send(sessionEventMsg{event: monitor.Event{
		Type: monitor.EventMetrics,
		Metrics: &domain.MonitoringMetrics{
			SessionID:          "s1",
			AverageRiskScore:   0.42,
			EmotionalStability: 0.61,
			AnalyzedInputs:     3,
		},
	}})

	view := d.View()
	assert.Contains(t, view, "risk 0.42")
	assert.Contains(t, view, "3 inputs")
}

func TestConsoleModel_ClosedChannelQuits(t *testing.T) {
	_, d := consoleDriver(t)

	d.Send(eventsClosedMsg{})

	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "session closed")
}

func TestConsoleModel_AnalyzeErrorShown(t *testing.T) {
	app := testApp(t)
	// No session started: every analyze fails.
	events := make(chan monitor.Event)
	model := newConsoleModel(app, "ghost", "user-1", events)
	d := teatest.New(t, model, teatest.WithSize(80, 24))
	d.DrainInit()

	d.Type("hello")
	d.PressEnter()

	assert.Contains(t, d.View(), "SESSION_NOT_FOUND")
}
