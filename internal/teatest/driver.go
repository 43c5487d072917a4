// Package teatest drives a tea.Model synchronously in tests: Update is
// called directly and returned commands are executed inline, so no program
// goroutine runs and views can be asserted between keystrokes.
//
// Commands that block on a channel are skipped after a short timeout. That
// covers cursor blink timers and the console's session-event receive; tests
// deliver event messages themselves with Send.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrain caps the message-feedback loop so a model that keeps emitting
// commands fails the drain instead of hanging the test.
const maxDrain = 100

// cmdWait separates instant commands (message factories, service calls
// against in-memory stores) from blocking ones. Blink timers hold their
// channel for ~530ms and event receives hold it until a session produces
// something, so 10ms is a clean line.
const cmdWait = 10 * time.Millisecond

// Driver holds the model under test. Quitting flips when a drained command
// yields tea.QuitMsg; the real runtime swallows that message, so models
// rarely handle it and the driver records it instead.
type Driver struct {
	T        *testing.T
	Model    tea.Model
	Quitting bool
}

// Option adjusts the driver before the first message.
type Option func(*Driver)

// WithSize delivers an initial WindowSizeMsg, as the runtime would on start.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// New wraps model for synchronous driving. Follow with DrainInit to run the
// model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit executes Init and feeds everything it produces back through
// Update.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send routes one message through Update and drains the resulting commands.
// Messages after quit are dropped, matching the runtime.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Type delivers s one key event per rune.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// PressEnter sends the Enter key.
func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

// PressEsc sends the Escape key.
func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrain {
		d.T.Fatalf("command drain exceeded %d rounds", maxDrain)
	}

	msg := tryCmd(cmd)
	if msg == nil {
		return
	}
	if blinkMsg(msg) {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
		return
	}

	if _, quit := msg.(tea.QuitMsg); quit {
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// tryCmd runs cmd off the test goroutine and gives up after cmdWait,
// returning nil for commands that are still blocked.
func tryCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdWait):
		return nil
	}
}

// blinkMsg spots cursor blink messages by type name; the bubbles cursor
// types are unexported and chain into further blocking timer commands.
func blinkMsg(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
