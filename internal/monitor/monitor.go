// Package monitor owns the live monitoring-session arena. All session
// mutation funnels through one Monitor so the single-writer-per-session
// guarantee is enforced by ownership rather than caller discipline.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucbaten/attune/internal/domain"
	"github.com/lucbaten/attune/internal/signal"
)

var (
	// ErrSessionNotFound marks operations referencing an absent or stopped
	// session. Callers recover by starting a new session.
	ErrSessionNotFound = errors.New("monitoring session not found")

	// ErrDuplicateSession marks an attempt to start an id that is still
	// live. Callers recover by reusing the existing session.
	ErrDuplicateSession = errors.New("monitoring session already active")
)

// eventBuffer bounds the per-session notification queue. Delivery is
// best-effort: a full queue drops the new event rather than blocking
// analysis.
const eventBuffer = 16

type EventType string

const (
	EventIntervention EventType = "intervention"
	EventMetrics      EventType = "metrics"
)

// Event is one push notification on a session's observer channel.
type Event struct {
	Type      EventType
	SessionID string

	// Record and Assessment are set for intervention events.
	Record     *domain.InterventionRecord
	Assessment *domain.RiskAssessment

	// Metrics is set for metric-update events.
	Metrics *domain.MonitoringMetrics

	At time.Time
}

// Monitor is the session arena. The zero value is not usable; construct with
// New.
type Monitor struct {
	extractor *signal.Extractor
	logger    *slog.Logger
	clock     func() time.Time
	newID     func() string

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// liveSession pairs one session with its writer lock and observer channel.
// Lock ordering: Monitor.mu is never held while taking liveSession.mu.
type liveSession struct {
	mu      sync.Mutex
	stopped bool
	session domain.MonitoringSession
	events  chan Event
}

// Option adjusts Monitor construction, mainly for deterministic tests.
type Option func(*Monitor)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(m *Monitor) { m.clock = clock }
}

// WithIDSource overrides intervention-record id generation.
func WithIDSource(newID func() string) Option {
	return func(m *Monitor) { m.newID = newID }
}

// New builds a Monitor over the given extractor. A nil extractor gets the
// default lexicon; a nil logger discards.
func New(extractor *signal.Extractor, logger *slog.Logger, opts ...Option) *Monitor {
	if extractor == nil {
		extractor = signal.NewExtractor(nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Monitor{
		extractor: extractor,
		logger:    logger,
		clock:     time.Now,
		newID:     func() string { return uuid.New().String() },
		sessions:  make(map[string]*liveSession),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Extractor exposes the signal extractor so a lexicon watcher can swap
// revisions in.
func (m *Monitor) Extractor() *signal.Extractor {
	return m.extractor
}

// StartMonitoring creates a live session. An empty sessionID gets a
// generated one. Restarting a live id fails with ErrDuplicateSession.
func (m *Monitor) StartMonitoring(sessionID, userID string, goals []string) (*domain.MonitoringSession, error) {
	if sessionID == "" {
		sessionID = m.newID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; ok {
		return nil, fmt.Errorf("start %s: %w", sessionID, ErrDuplicateSession)
	}

	entry := &liveSession{
		session: domain.MonitoringSession{
			ID:        sessionID,
			UserID:    userID,
			StartTime: m.clock(),
			Goals:     append([]string(nil), goals...),
		},
		events: make(chan Event, eventBuffer),
	}
	m.sessions[sessionID] = entry

	m.logger.Info("monitoring started",
		"session_id", sessionID, "user_id", userID, "goals", len(goals))
	return entry.snapshotLocked(), nil
}

// StopMonitoring detaches the session from the live table, stamps its end
// time and closes its observer channel. The returned snapshot includes every
// state appended by analyses that were in flight when the stop began. A
// second stop on the same id reports ErrSessionNotFound.
func (m *Monitor) StopMonitoring(sessionID string) (*domain.MonitoringSession, error) {
	m.mu.Lock()
	entry, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("stop %s: %w", sessionID, ErrSessionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.stopped = true
	end := m.clock()
	entry.session.EndTime = &end
	close(entry.events)

	m.logger.Info("monitoring stopped",
		"session_id", sessionID, "analyzed_inputs", len(entry.session.EmotionalStates))
	return entry.snapshotLocked(), nil
}

// AnalyzeInput runs one utterance through extraction and risk assessment,
// appends the paired results to the session history and pushes best-effort
// notifications. Analyses racing a StopMonitoring either land in the final
// snapshot or fail with ErrSessionNotFound; histories never lose a write.
func (m *Monitor) AnalyzeInput(sessionID, text string, actx domain.AnalysisContext) (domain.EmotionalState, domain.RiskAssessment, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return domain.EmotionalState{}, domain.RiskAssessment{}, fmt.Errorf("analyze %s: %w", sessionID, ErrSessionNotFound)
	}

	now := m.clock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.stopped {
		return domain.EmotionalState{}, domain.RiskAssessment{}, fmt.Errorf("analyze %s: %w", sessionID, ErrSessionNotFound)
	}

	ex := m.extractor.Extract(text, actx, now)
	entry.session.EmotionalStates = append(entry.session.EmotionalStates, ex.State)

	assessment := AssessRisk(AssessInput{
		Extraction: ex,
		History:    entry.session.EmotionalStates,
	})
	entry.session.RiskAssessments = append(entry.session.RiskAssessments, assessment)

	records := BuildInterventionRecords(sessionID, assessment.Recommendations, now, m.newID)
	entry.session.Interventions = append(entry.session.Interventions, records...)

	for i := range records {
		m.notify(entry, Event{
			Type:       EventIntervention,
			SessionID:  sessionID,
			Record:     &records[i],
			Assessment: &assessment,
			At:         now,
		})
	}
	m.notify(entry, Event{
		Type:      EventMetrics,
		SessionID: sessionID,
		Metrics:   ComputeMetrics(&entry.session),
		At:        now,
	})

	if assessment.Level == domain.RiskCritical {
		m.logger.Warn("critical risk detected",
			"session_id", sessionID, "score", assessment.Score,
			"crisis_signals", len(ex.CrisisSignals))
	}
	return ex.State, assessment, nil
}

// notify delivers one event without ever blocking the analysis path. Callers
// hold the session lock, which also serializes sends against the close in
// StopMonitoring.
func (m *Monitor) notify(entry *liveSession, event Event) {
	select {
	case entry.events <- event:
	default:
		m.logger.Warn("observer queue full, dropping notification",
			"session_id", event.SessionID, "event_type", string(event.Type))
	}
}

// Subscribe returns the session's notification channel. The channel closes
// when the session stops. Each session supports a single consumer; a second
// Subscribe returns the same channel rather than fanning out.
func (m *Monitor) Subscribe(sessionID string) (<-chan Event, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("subscribe %s: %w", sessionID, ErrSessionNotFound)
	}
	return entry.events, nil
}

// GetMetrics summarizes a session, or nil when the id is unknown. A session
// with no analyzed inputs reports the neutral prior.
func (m *Monitor) GetMetrics(sessionID string) *domain.MonitoringMetrics {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return ComputeMetrics(&entry.session)
}

// Session returns a point-in-time snapshot of one live session.
func (m *Monitor) Session(sessionID string) (*domain.MonitoringSession, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.snapshotLocked(), nil
}

// Sessions returns snapshots of every live session, oldest start first.
func (m *Monitor) Sessions() []*domain.MonitoringSession {
	m.mu.RLock()
	entries := make([]*liveSession, 0, len(m.sessions))
	for _, entry := range m.sessions {
		entries = append(entries, entry)
	}
	m.mu.RUnlock()

	snaps := make([]*domain.MonitoringSession, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		snaps = append(snaps, entry.snapshotLocked())
		entry.mu.Unlock()
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].StartTime.Before(snaps[j].StartTime)
	})
	return snaps
}

// snapshotLocked clones the session so callers can never reach the arena's
// mutable histories. Caller holds the entry lock.
func (e *liveSession) snapshotLocked() *domain.MonitoringSession {
	snap := e.session
	snap.EmotionalStates = append([]domain.EmotionalState(nil), e.session.EmotionalStates...)
	snap.RiskAssessments = append([]domain.RiskAssessment(nil), e.session.RiskAssessments...)
	snap.Interventions = append([]domain.InterventionRecord(nil), e.session.Interventions...)
	snap.Goals = append([]string(nil), e.session.Goals...)
	return &snap
}
