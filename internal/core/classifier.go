package core

import "context"

// Detection is the outcome of classifying a single frame.
// Detected=false means no usable result; Mood and Confidence are then unset.
type Detection struct {
	Detected   bool    `json:"detected"`
	Mood       Mood    `json:"mood,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Classifier turns a captured frame into a mood detection.
type Classifier interface {
	// Detect classifies a single encoded frame. A miss is reported as
	// Detected=false, not as an error; errors mean the classifier itself
	// failed.
	Detect(ctx context.Context, frame []byte) (Detection, error)

	// Reset clears any interior smoothing or history kept by the classifier.
	Reset(ctx context.Context) error
}
