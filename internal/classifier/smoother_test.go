package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/aurafm/aura/internal/core"
)

// scripted returns a fixed sequence of detections.
type scripted struct {
	results []core.Detection
	errs    []error
	calls   int
	resets  int
}

func (s *scripted) Detect(ctx context.Context, frame []byte) (core.Detection, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], err
	}
	return core.Detection{}, err
}

func (s *scripted) Reset(ctx context.Context) error {
	s.resets++
	return nil
}

func det(mood core.Mood, conf float64) core.Detection {
	return core.Detection{Detected: true, Mood: mood, Confidence: conf}
}

func TestSmootherMajority(t *testing.T) {
	inner := &scripted{results: []core.Detection{
		det(core.MoodHappy, 0.9),
		det(core.MoodAngry, 0.6),
		det(core.MoodHappy, 0.7),
	}}
	s := NewSmoother(inner, 3)
	ctx := context.Background()

	// Window not yet full: misses.
	for i := 0; i < 2; i++ {
		got, err := s.Detect(ctx, nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if got.Detected {
			t.Errorf("call %d: Detected = true before window filled", i+1)
		}
	}

	got, err := s.Detect(ctx, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !got.Detected {
		t.Fatal("Detected = false, want majority winner")
	}
	if got.Mood != core.MoodHappy {
		t.Errorf("Mood = %q, want %q", got.Mood, core.MoodHappy)
	}
	// Confidence is the mean of the winner's votes: (0.9+0.7)/2.
	if got.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", got.Confidence)
	}
}

func TestSmootherNoMajority(t *testing.T) {
	inner := &scripted{results: []core.Detection{
		det(core.MoodHappy, 0.9),
		det(core.MoodAngry, 0.6),
		det(core.MoodSad, 0.7),
	}}
	// Even window of 4 would allow ties; use 3 labels in a window of 3,
	// each appearing once.
	s := NewSmoother(inner, 3)
	ctx := context.Background()

	var last core.Detection
	for i := 0; i < 3; i++ {
		var err error
		last, err = s.Detect(ctx, nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
	}
	if last.Detected {
		t.Errorf("Detected = true with a 1-1-1 split, want miss")
	}
}

func TestSmootherMissesDoNotVote(t *testing.T) {
	inner := &scripted{results: []core.Detection{
		det(core.MoodHappy, 0.9),
		{}, // miss
		det(core.MoodHappy, 0.9),
		det(core.MoodHappy, 0.9),
	}}
	s := NewSmoother(inner, 3)
	ctx := context.Background()

	var detections int
	for i := 0; i < 4; i++ {
		got, err := s.Detect(ctx, nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if got.Detected {
			detections++
		}
	}
	// Only the 4th call fills the window with three happy votes.
	if detections != 1 {
		t.Errorf("detections = %d, want 1", detections)
	}
}

func TestSmootherError(t *testing.T) {
	inner := &scripted{
		results: []core.Detection{{}},
		errs:    []error{errors.New("classifier down")},
	}
	s := NewSmoother(inner, 3)

	if _, err := s.Detect(context.Background(), nil); err == nil {
		t.Error("Detect() error = nil, want propagated error")
	}
}

func TestSmootherReset(t *testing.T) {
	inner := &scripted{results: []core.Detection{
		det(core.MoodHappy, 0.9),
		det(core.MoodHappy, 0.9),
		det(core.MoodHappy, 0.9),
	}}
	s := NewSmoother(inner, 3)
	ctx := context.Background()

	_, _ = s.Detect(ctx, nil)
	_, _ = s.Detect(ctx, nil)

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if inner.resets != 1 {
		t.Errorf("inner resets = %d, want 1", inner.resets)
	}

	// Window restarts: the next detection alone is not enough.
	got, _ := s.Detect(ctx, nil)
	if got.Detected {
		t.Error("Detected = true right after reset, want empty window")
	}
}
