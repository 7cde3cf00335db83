package reaction

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aurafm/aura/internal/core"
	aerrors "github.com/aurafm/aura/internal/errors"
	"github.com/aurafm/aura/internal/session"
	"github.com/aurafm/aura/internal/store"
)

// fakeRecommender returns a scripted batch per call, optionally blocking
// until released.
type fakeRecommender struct {
	mu      sync.Mutex
	batches [][]core.Track
	err     error
	block   chan struct{} // nil means respond immediately

	calls atomic.Int64
	moods []core.Mood
}

func (f *fakeRecommender) Recommend(ctx context.Context, mood core.Mood, limit int) ([]core.Track, error) {
	n := f.calls.Add(1)
	f.mu.Lock()
	f.moods = append(f.moods, mood)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		return nil, nil
	}
	idx := int(n) - 1
	if idx >= len(f.batches) {
		idx = len(f.batches) - 1
	}
	return f.batches[idx], nil
}

type fakePlayer struct {
	err    error
	calls  atomic.Int64
	mu     sync.Mutex
	played []core.Track
}

func (f *fakePlayer) Play(ctx context.Context, track core.Track) error {
	f.calls.Add(1)
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.played = append(f.played, track)
	f.mu.Unlock()
	return nil
}

func tracks(ids ...string) []core.Track {
	out := make([]core.Track, len(ids))
	for i, id := range ids {
		out[i] = core.Track{ID: id, Title: "Track " + id}
	}
	return out
}

func record(st *store.Store, mood core.Mood) {
	st.RecordMood(mood, 0.9)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func startController(t *testing.T, c *Controller) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func TestChangeToNonNeutralTriggersOnce(t *testing.T) {
	rec := &fakeRecommender{batches: [][]core.Track{tracks("a", "b", "c")}}
	pl := &fakePlayer{}
	st := store.New()
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodHappy)
	waitFor(t, func() bool { return pl.calls.Load() == 1 }, "first track not played")

	// Same label again: no new trigger.
	record(st, core.MoodHappy)
	record(st, core.MoodHappy)
	time.Sleep(50 * time.Millisecond)

	if got := rec.calls.Load(); got != 1 {
		t.Fatalf("recommend calls = %d, want 1", got)
	}
	pl.mu.Lock()
	played := pl.played[0].ID
	pl.mu.Unlock()
	if played != "a" {
		t.Fatalf("played %q, want first recommendation", played)
	}
	pb := st.Playback()
	if pb.PlaylistLen() != 3 || pb.Cursor != 0 {
		t.Fatalf("playlist len %d cursor %d, want 3 and 0", pb.PlaylistLen(), pb.Cursor)
	}
}

func TestRepeatedSameMoodNeverTriggers(t *testing.T) {
	rec := &fakeRecommender{batches: [][]core.Track{tracks("a")}}
	pl := &fakePlayer{}
	st := store.New()
	// Seed the current mood before the controller subscribes.
	record(st, core.MoodAngry)
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodAngry)
	record(st, core.MoodAngry)
	record(st, core.MoodAngry)
	time.Sleep(50 * time.Millisecond)

	if got := rec.calls.Load(); got != 0 {
		t.Fatalf("recommend calls = %d, want 0", got)
	}
}

func TestChangeToNeutralDoesNotTrigger(t *testing.T) {
	rec := &fakeRecommender{}
	pl := &fakePlayer{}
	st := store.New()
	record(st, core.MoodHappy)
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodNeutral)
	time.Sleep(50 * time.Millisecond)

	if got := rec.calls.Load(); got != 0 {
		t.Fatalf("recommend calls = %d, want 0", got)
	}
}

func TestRecommendErrorSurfacesNoticeAndLeavesState(t *testing.T) {
	rec := &fakeRecommender{err: errors.New("backend down")}
	pl := &fakePlayer{}
	st := store.New()
	st.SetPlaylist(tracks("keep"))
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodSad)

	select {
	case n := <-c.Notices():
		if !errors.Is(n.Err, aerrors.ErrRecommendationFailed) {
			t.Fatalf("notice error = %v, want ErrRecommendationFailed", n.Err)
		}
		if n.Mood != core.MoodSad {
			t.Fatalf("notice mood = %q, want sad", n.Mood)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notice emitted")
	}

	if pl.calls.Load() != 0 {
		t.Fatal("player called after failed recommendation")
	}
	pb := st.Playback()
	if pb.PlaylistLen() != 1 || pb.Playlist[0].ID != "keep" {
		t.Fatal("playlist mutated after failed recommendation")
	}
}

func TestEmptyRecommendationsSurfaceNotice(t *testing.T) {
	rec := &fakeRecommender{} // no batches: returns nil, nil
	pl := &fakePlayer{}
	st := store.New()
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodCalm)

	select {
	case n := <-c.Notices():
		if !errors.Is(n.Err, aerrors.ErrNoSongsForMood) {
			t.Fatalf("notice error = %v, want ErrNoSongsForMood", n.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notice emitted")
	}
	if pl.calls.Load() != 0 {
		t.Fatal("player called with empty recommendations")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	rec := &fakeRecommender{
		batches: [][]core.Track{tracks("old1", "old2"), tracks("new1")},
		block:   make(chan struct{}),
	}
	pl := &fakePlayer{}
	st := store.New()
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodHappy)
	waitFor(t, func() bool { return rec.calls.Load() == 1 }, "first fetch not started")

	record(st, core.MoodExcited)
	waitFor(t, func() bool { return rec.calls.Load() == 2 }, "second fetch not started")

	// Release both fetches; only the latest may commit.
	close(rec.block)
	waitFor(t, func() bool { return pl.calls.Load() == 1 }, "latest trigger not played")
	time.Sleep(50 * time.Millisecond)

	if got := pl.calls.Load(); got != 1 {
		t.Fatalf("play calls = %d, want 1", got)
	}
	pb := st.Playback()
	if pb.PlaylistLen() != 1 || pb.Playlist[0].ID != "new1" {
		t.Fatalf("playlist = %+v, want the latest batch only", pb.Playlist)
	}
}

func TestPlayFailureSurfacesNotice(t *testing.T) {
	playErr := errors.New("no active device")
	rec := &fakeRecommender{batches: [][]core.Track{tracks("a")}}
	pl := &fakePlayer{err: playErr}
	st := store.New()
	c := New(rec, pl, st)
	startController(t, c)

	record(st, core.MoodHappy)

	select {
	case n := <-c.Notices():
		if !errors.Is(n.Err, playErr) {
			t.Fatalf("notice error = %v, want play error", n.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notice emitted")
	}
}

func TestStatsCountMoodChanges(t *testing.T) {
	rec := &fakeRecommender{batches: [][]core.Track{tracks("a")}}
	pl := &fakePlayer{}
	st := store.New()
	stats := session.New()
	c := New(rec, pl, st, WithStats(stats))
	startController(t, c)

	record(st, core.MoodHappy)
	waitFor(t, func() bool { return pl.calls.Load() >= 1 }, "trigger did not run")
	record(st, core.MoodSad)
	waitFor(t, func() bool { return stats.Snapshot().MoodChanges == 2 }, "mood changes not counted")
}
