package contract

import "time"

type LogProgressRequest struct {
	UserID   string
	GoalID   string
	Progress float64 // [0,100]
	Note     string
	Status   string // optional override: paused or archived
	Now      *time.Time
}

type ProgressErrorCode string

const (
	ErrProgressEmptyKey ProgressErrorCode = "EMPTY_KEY"
	ErrInvalidProgress  ProgressErrorCode = "INVALID_PROGRESS"
	ErrInvalidStatus    ProgressErrorCode = "INVALID_STATUS"
	ErrProgressNotFound ProgressErrorCode = "NOT_FOUND"
	ErrProgressInternal ProgressErrorCode = "INTERNAL_ERROR"
)

type ProgressError struct {
	Code    ProgressErrorCode
	Message string
}

func (e *ProgressError) Error() string {
	return string(e.Code) + ": " + e.Message
}
