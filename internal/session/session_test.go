package session

import (
	"testing"
	"time"
)

func TestCounters(t *testing.T) {
	s := New()

	s.SongPlayed()
	s.SongPlayed()
	s.MoodChanged()

	snap := s.Snapshot()
	if snap.SongsPlayed != 2 {
		t.Errorf("SongsPlayed = %d, want 2", snap.SongsPlayed)
	}
	if snap.MoodChanges != 1 {
		t.Errorf("MoodChanges = %d, want 1", snap.MoodChanges)
	}
	if snap.ID == "" {
		t.Error("ID is empty, want a session identifier")
	}
}

func TestElapsed(t *testing.T) {
	s := New()
	s.startedAt = time.Now().Add(-time.Minute)

	if got := s.Snapshot().Elapsed; got < time.Minute {
		t.Errorf("Elapsed = %v, want at least a minute", got)
	}
}
