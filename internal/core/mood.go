package core

import "time"

// Mood is a discrete categorical emotion label.
//
// The set is open: classifiers may produce labels outside the constants
// below and they flow through the system unchanged. Absence of a detection
// is represented as "no sample", never as a label.
type Mood string

const (
	MoodNeutral   Mood = "neutral"
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodSurprised Mood = "surprised"
	MoodExcited   Mood = "excited"
	MoodCalm      Mood = "calm"
)

// IsNeutral returns true for the neutral baseline label.
func (m Mood) IsNeutral() bool {
	return m == MoodNeutral
}

// MoodSample is a single detection result. Immutable once created.
type MoodSample struct {
	Mood       Mood      `json:"mood"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}
