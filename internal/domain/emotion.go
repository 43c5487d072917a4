package domain

import "time"

// EmotionalState is a single valence/arousal/dominance reading extracted from
// one analyzed utterance. States are immutable once produced and live on the
// owning session's append-only history.
type EmotionalState struct {
	Valence    float64 // [-1,1], negative to positive affect
	Arousal    float64 // [0,1], activation level
	Dominance  float64 // [0,1], perceived control
	Confidence float64 // [0,1]
	Indicators []string
	Timestamp  time.Time
}

// Negative reports whether the state reads as meaningfully negative affect.
func (s EmotionalState) Negative() bool {
	return s.Valence < -0.3
}

// Agitated reports whether the state reads as high-arousal distress.
func (s EmotionalState) Agitated() bool {
	return s.Arousal > 0.7 && s.Valence < 0
}

// Withdrawn reports whether the state reads as low perceived control.
func (s EmotionalState) Withdrawn() bool {
	return s.Dominance < 0.3
}

// AnalysisContext carries per-utterance context supplied by the transport:
// message timing, declared goal progress, and social-support markers.
// All fields are optional; zero values mean "not provided".
type AnalysisContext struct {
	MessageLength  int
	ResponseTimeMs int
	GoalProgress   map[string]float64 // goal id -> progress pct as reported by the client
	SocialSupport  bool
}
