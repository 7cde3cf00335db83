package tail

import (
	"context"
	"time"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/store"
)

// EventType represents the type of pipeline event.
type EventType int

const (
	EventMoodChange EventType = iota
	EventTrackChange
	EventPause
	EventResume
	EventDetectionOn
	EventDetectionOff
)

// Event represents an observed state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Mood      core.MoodSample
	Previous  core.PlaybackState
	Current   core.PlaybackState
}

// Watcher follows the store and emits events: mood changes arrive through
// the store's subscription, playback and detection changes by polling
// snapshots.
type Watcher struct {
	store    *store.Store
	interval time.Duration
	events   chan Event
	done     chan struct{}
}

// NewWatcher creates a new state watcher.
func NewWatcher(st *store.Store, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = time.Second
	}
	return &Watcher{
		store:    st,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of pipeline events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching for state changes.
func (w *Watcher) Start(ctx context.Context) error {
	moods := w.store.SubscribeMood(16)
	defer w.store.UnsubscribeMood(moods)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	prev := w.store.Playback()
	prevDetecting := w.store.Detecting()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case change := <-moods:
			w.emit(Event{
				Type:      EventMoodChange,
				Timestamp: change.Sample.Timestamp,
				Mood:      change.Sample,
			})
		case <-ticker.C:
			curr := w.store.Playback()
			for _, e := range diffStates(prev, curr) {
				w.emit(e)
			}
			prev = curr

			detecting := w.store.Detecting()
			if detecting != prevDetecting {
				eventType := EventDetectionOff
				if detecting {
					eventType = EventDetectionOn
				}
				w.emit(Event{Type: eventType, Timestamp: time.Now()})
				prevDetecting = detecting
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) emit(e Event) {
	select {
	case w.events <- e:
	default:
		// Drop event if channel is full
	}
}

// diffStates compares two playback snapshots and returns detected events.
func diffStates(prev, curr core.PlaybackState) []Event {
	now := time.Now()
	var events []Event

	if trackChanged(prev, curr) {
		events = append(events, Event{
			Type:      EventTrackChange,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	if prev.IsPlaying && !curr.IsPlaying {
		events = append(events, Event{
			Type:      EventPause,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	} else if !prev.IsPlaying && curr.IsPlaying {
		events = append(events, Event{
			Type:      EventResume,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	return events
}

// trackChanged returns true if the current track changed.
func trackChanged(prev, curr core.PlaybackState) bool {
	if prev.Track == nil && curr.Track == nil {
		return false
	}
	if prev.Track == nil || curr.Track == nil {
		return true
	}
	return prev.Track.ID != curr.Track.ID
}
