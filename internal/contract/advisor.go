package contract

import "time"

type ConflictRequest struct {
	Goals  []string
	UserID string // optional; supplies stored progress for severity boosts
	Now    *time.Time
}

type RecommendRequest struct {
	UserID string
	Max    int
	Now    *time.Time
}

// NewRecommendRequest applies the default result cap.
func NewRecommendRequest(userID string) RecommendRequest {
	return RecommendRequest{
		UserID: userID,
		Max:    5,
	}
}

type AdvisorErrorCode string

const (
	ErrAdvisorInvalidUser AdvisorErrorCode = "INVALID_USER"
	ErrAdvisorInternal    AdvisorErrorCode = "INTERNAL_ERROR"
)

type AdvisorError struct {
	Code    AdvisorErrorCode
	Message string
}

func (e *AdvisorError) Error() string {
	return string(e.Code) + ": " + e.Message
}
