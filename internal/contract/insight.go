package contract

import (
	"time"

	"github.com/lucbaten/attune/internal/domain"
)

type InsightRequest struct {
	UserID  string
	Refresh bool // bypass the cached snapshot and recompute
	Now     *time.Time
}

// InsightResponse is one user's derived analytics snapshot. Trends carries
// only the published (high-confidence) fits; goals with too little history
// are simply absent.
type InsightResponse struct {
	UserID      string
	Trends      []domain.TrendAnalysis
	Risks       []domain.RiskPrediction
	Outcomes    []domain.OutcomePrediction
	FromCache   bool
	GeneratedAt time.Time
}

type InsightErrorCode string

const (
	ErrInsightInvalidUser InsightErrorCode = "INVALID_USER"
	ErrInsightInternal    InsightErrorCode = "INTERNAL_ERROR"
)

type InsightError struct {
	Code    InsightErrorCode
	Message string
}

func (e *InsightError) Error() string {
	return string(e.Code) + ": " + e.Message
}
