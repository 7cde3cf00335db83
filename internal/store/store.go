// Package store holds the shared mood and playback state.
//
// The store is the only shared mutable resource in the pipeline. A single
// mutex serializes writers; readers get copy-on-read snapshots. Mood fields
// are written only by the detector loop, track/playlist fields only by the
// playback and reaction controllers.
package store

import (
	"sync"
	"time"

	"github.com/aurafm/aura/internal/core"
)

// HistoryLimit caps the retained mood history, most recent first.
const HistoryLimit = 10

// MoodChange is delivered to mood subscribers on every recorded sample.
type MoodChange struct {
	Sample   core.MoodSample
	Previous core.Mood
}

// MoodSnapshot is an immutable view of the mood state.
type MoodSnapshot struct {
	Current    core.Mood
	Confidence float64
	History    []core.MoodSample
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source for recorded samples.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the process-wide mood/playback state container. Safe for
// concurrent use.
type Store struct {
	mu sync.Mutex

	mood       core.Mood
	confidence float64
	history    []core.MoodSample

	track    *core.Track
	playing  bool
	playlist []core.Track
	cursor   int

	detecting bool

	subs []chan MoodChange
	now  func() time.Time
}

// New creates a Store with default state: neutral mood, empty history,
// nothing playing.
func New(opts ...Option) *Store {
	s := &Store{
		mood: core.MoodNeutral,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordMood appends a new sample at the front of the history, evicting
// the tail beyond HistoryLimit, and updates the current mood. Confidence
// is stored as-is; range enforcement is the classifier's contract.
func (s *Store) RecordMood(mood core.Mood, confidence float64) {
	s.mu.Lock()

	sample := core.MoodSample{
		Mood:       mood,
		Confidence: confidence,
		Timestamp:  s.now(),
	}
	previous := s.mood

	s.history = append([]core.MoodSample{sample}, s.history...)
	if len(s.history) > HistoryLimit {
		s.history = s.history[:HistoryLimit]
	}
	s.mood = mood
	s.confidence = confidence

	subs := make([]chan MoodChange, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	change := MoodChange{Sample: sample, Previous: previous}
	for _, ch := range subs {
		select {
		case ch <- change:
		default:
			// Subscriber is behind; drop rather than block the writer.
		}
	}
}

// Mood returns a snapshot of the current mood state.
func (s *Store) Mood() MoodSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]core.MoodSample, len(s.history))
	copy(history, s.history)

	return MoodSnapshot{
		Current:    s.mood,
		Confidence: s.confidence,
		History:    history,
	}
}

// SubscribeMood registers a mood-change subscriber. Delivery is strictly
// ordered per subscriber; changes are dropped when the buffer is full.
func (s *Store) SubscribeMood(buffer int) <-chan MoodChange {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan MoodChange, buffer)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

// UnsubscribeMood removes a subscriber and closes its channel.
func (s *Store) UnsubscribeMood(ch <-chan MoodChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// SetTrack replaces the current track. Nil clears it.
func (s *Store) SetTrack(track *core.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if track == nil {
		s.track = nil
		return
	}
	t := *track
	s.track = &t
}

// SetPlaying replaces the playing flag.
func (s *Store) SetPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = playing
}

// SetPlaylist replaces the playlist. The cursor resets to 0 when it no
// longer addresses a valid position.
func (s *Store) SetPlaylist(tracks []core.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playlist = make([]core.Track, len(tracks))
	copy(s.playlist, tracks)
	if s.cursor >= len(s.playlist) {
		s.cursor = 0
	}
}

// SetCursor replaces the playlist cursor.
func (s *Store) SetCursor(cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

// Playback returns a snapshot of the current playback state.
func (s *Store) Playback() core.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := core.PlaybackState{
		IsPlaying: s.playing,
		Cursor:    s.cursor,
	}
	if s.track != nil {
		t := *s.track
		state.Track = &t
	}
	state.Playlist = make([]core.Track, len(s.playlist))
	copy(state.Playlist, s.playlist)

	return state
}

// SetDetecting replaces the detection-armed flag.
func (s *Store) SetDetecting(detecting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detecting = detecting
}

// Detecting reports whether the sampler loop is armed.
func (s *Store) Detecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detecting
}
