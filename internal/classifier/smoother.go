package classifier

import (
	"context"
	"sync"

	"github.com/aurafm/aura/internal/core"
)

// DefaultWindow is the number of detections collected for a vote.
const DefaultWindow = 3

// Smoother wraps a classifier with majority voting over a sliding window
// of recent detections. A label is emitted only once it wins the window,
// which suppresses single-frame flicker between moods.
type Smoother struct {
	inner  core.Classifier
	window int

	mu    sync.Mutex
	votes []core.Detection
}

// NewSmoother wraps inner with a voting window. A window below 2 falls
// back to DefaultWindow.
func NewSmoother(inner core.Classifier, window int) *Smoother {
	if window < 2 {
		window = DefaultWindow
	}
	return &Smoother{inner: inner, window: window}
}

// Detect passes the frame to the wrapped classifier and votes on the
// collected labels. Until the window is full, or when no label holds a
// majority, the result is a miss.
func (s *Smoother) Detect(ctx context.Context, frame []byte) (core.Detection, error) {
	det, err := s.inner.Detect(ctx, frame)
	if err != nil {
		return core.Detection{}, err
	}
	if !det.Detected {
		return core.Detection{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.votes = append(s.votes, det)
	if len(s.votes) > s.window {
		s.votes = s.votes[1:]
	}
	if len(s.votes) < s.window {
		return core.Detection{}, nil
	}

	winner, count := s.tally()
	if count*2 <= s.window {
		return core.Detection{}, nil // no majority
	}

	var sum float64
	for _, v := range s.votes {
		if v.Mood == winner {
			sum += v.Confidence
		}
	}

	return core.Detection{
		Detected:   true,
		Mood:       winner,
		Confidence: sum / float64(count),
	}, nil
}

// tally returns the most frequent label in the window and its count.
func (s *Smoother) tally() (core.Mood, int) {
	counts := make(map[core.Mood]int, len(s.votes))
	var winner core.Mood
	var best int
	for _, v := range s.votes {
		counts[v.Mood]++
		if counts[v.Mood] > best {
			best = counts[v.Mood]
			winner = v.Mood
		}
	}
	return winner, best
}

// Reset clears the voting window and forwards the reset.
func (s *Smoother) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.votes = nil
	s.mu.Unlock()
	return s.inner.Reset(ctx)
}
