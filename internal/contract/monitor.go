package contract

import (
	"github.com/lucbaten/attune/internal/domain"
)

type StartSessionRequest struct {
	SessionID string // optional; the engine generates one when empty
	UserID    string
	Goals     []string
}

type AnalyzeRequest struct {
	SessionID      string
	Text           string
	MessageLength  int
	ResponseTimeMs int
	GoalProgress   map[string]float64
	SocialSupport  bool
}

// NewAnalyzeRequest defaults the declared message length to the text length;
// transports that know the client-side length override it.
func NewAnalyzeRequest(sessionID, text string) AnalyzeRequest {
	return AnalyzeRequest{
		SessionID:     sessionID,
		Text:          text,
		MessageLength: len(text),
	}
}

type AnalyzeResponse struct {
	State      domain.EmotionalState
	Assessment domain.RiskAssessment
}

// StopSessionResponse carries the final session snapshot and its closing
// metrics summary.
type StopSessionResponse struct {
	Session *domain.MonitoringSession
	Metrics *domain.MonitoringMetrics
}

type MonitorErrorCode string

const (
	ErrSessionNotFound      MonitorErrorCode = "SESSION_NOT_FOUND"
	ErrDuplicateSession     MonitorErrorCode = "DUPLICATE_SESSION"
	ErrEmptyUser            MonitorErrorCode = "EMPTY_USER"
	ErrInterventionNotFound MonitorErrorCode = "INTERVENTION_NOT_FOUND"
	ErrInvalidOutcome       MonitorErrorCode = "INVALID_OUTCOME"
	ErrMonitorInternal      MonitorErrorCode = "INTERNAL_ERROR"
)

type MonitorError struct {
	Code    MonitorErrorCode
	Message string
}

func (e *MonitorError) Error() string {
	return string(e.Code) + ": " + e.Message
}
