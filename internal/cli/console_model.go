package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucbaten/attune/internal/cli/formatter"
	"github.com/lucbaten/attune/internal/contract"
	"github.com/lucbaten/attune/internal/monitor"
)

// readingMsg carries the result of one analyze call back into the model.
type readingMsg struct {
	resp *contract.AnalyzeResponse
	err  error
}

// sessionEventMsg carries one push notification from the session's observer
// channel.
type sessionEventMsg struct {
	event monitor.Event
}

// eventsClosedMsg signals that the observer channel was closed, which
// happens when the session stops.
type eventsClosedMsg struct{}

// consoleModel is the bubbletea Model for the live monitoring console: type
// an utterance, see its reading, and get intervention alerts pushed in.
type consoleModel struct {
	app       *App
	sessionID string
	userID    string

	input  textinput.Model
	lines  []string
	events <-chan monitor.Event
	width  int

	busy     bool
	quitting bool
}

func newConsoleModel(app *App, sessionID, userID string, events <-chan monitor.Event) consoleModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = formatter.StyleHeader.Render("❯ ")
	ti.Placeholder = "how is it going?"
	ti.CharLimit = 500

	return consoleModel{
		app:       app,
		sessionID: sessionID,
		userID:    userID,
		input:     ti,
		events:    events,
	}
}

func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSessionEvent(m.events))
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 3
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "/quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.lines = append(m.lines, formatter.Bold("❯ ")+formatter.StyleFg.Render(text))
			m.input.Reset()
			m.busy = true
			return m, analyzeCmd(m.app, m.sessionID, text)
		}

	case readingMsg:
		m.busy = false
		if msg.err != nil {
			m.lines = append(m.lines, formatter.StyleRed.Render("error: "+msg.err.Error()))
			return m, nil
		}
		m.lines = append(m.lines, formatter.FormatReading(msg.resp.State, msg.resp.Assessment))
		return m, nil

	case sessionEventMsg:
		if line := eventLine(msg.event); line != "" {
			m.lines = append(m.lines, line)
		}
		return m, waitForSessionEvent(m.events)

	case eventsClosedMsg:
		m.lines = append(m.lines, formatter.Dim("session closed"))
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m consoleModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Session "+m.sessionID) + "\n")
	b.WriteString(formatter.Dim("user "+m.userID+" · Esc or /quit stops the session") + "\n\n")

	for _, line := range m.lines {
		b.WriteString(line + "\n")
	}

	if m.quitting {
		return b.String()
	}

	if m.busy {
		b.WriteString(formatter.Dim("analyzing...") + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n")

	return b.String()
}

// analyzeCmd runs one analysis against the live session.
func analyzeCmd(app *App, sessionID, text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := app.Monitoring.Analyze(context.Background(), contract.NewAnalyzeRequest(sessionID, text))
		return readingMsg{resp: resp, err: err}
	}
}

// waitForSessionEvent blocks on the observer channel and converts the next
// event into a message. Re-issued after every received event so exactly one
// waiter is outstanding.
func waitForSessionEvent(ch <-chan monitor.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return sessionEventMsg{event: ev}
	}
}

// eventLine renders one observer event as a transcript line.
func eventLine(ev monitor.Event) string {
	switch ev.Type {
	case monitor.EventIntervention:
		if ev.Record == nil {
			return ""
		}
		return formatter.StyleRed.Render("⚠ intervention: ") + formatter.StyleFg.Render(ev.Record.Action)
	case monitor.EventMetrics:
		if ev.Metrics == nil {
			return ""
		}
		return formatter.Dim(fmt.Sprintf("risk %.2f · stability %.2f · %d inputs",
			ev.Metrics.AverageRiskScore, ev.Metrics.EmotionalStability, ev.Metrics.AnalyzedInputs))
	default:
		return ""
	}
}
