// Package session tracks per-session listening statistics.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable view of the session statistics.
type Snapshot struct {
	ID          string
	SongsPlayed int
	MoodChanges int
	Elapsed     time.Duration
}

// Stats accumulates counters for the current session. Safe for concurrent
// use.
type Stats struct {
	mu          sync.Mutex
	id          string
	songsPlayed int
	moodChanges int
	startedAt   time.Time
	now         func() time.Time
}

// New creates session stats starting now.
func New() *Stats {
	return &Stats{
		id:        uuid.NewString(),
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// ID returns the session identifier.
func (s *Stats) ID() string {
	return s.id
}

// SongPlayed increments the songs-played counter.
func (s *Stats) SongPlayed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.songsPlayed++
}

// MoodChanged increments the mood-change counter.
func (s *Stats) MoodChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moodChanges++
}

// Snapshot returns the current counters and elapsed session time.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.id,
		SongsPlayed: s.songsPlayed,
		MoodChanges: s.moodChanges,
		Elapsed:     s.now().Sub(s.startedAt),
	}
}
