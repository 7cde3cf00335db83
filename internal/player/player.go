// Package player translates transport intents into backend playback
// commands and keeps the store's track state in sync with the results.
package player

import (
	"context"
	"fmt"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/errors"
	"github.com/aurafm/aura/internal/session"
	"github.com/aurafm/aura/internal/store"
)

// Transport issues playback commands against the catalog backend.
type Transport interface {
	Play(ctx context.Context, trackID, deviceID string) error
	Pause(ctx context.Context, deviceID string) error
	Resume(ctx context.Context, deviceID string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithDevice targets a specific playback device. Empty lets the backend
// choose the active one.
func WithDevice(deviceID string) Option {
	return func(c *Controller) {
		c.deviceID = deviceID
	}
}

// WithStats wires session statistics.
func WithStats(stats *session.Stats) Option {
	return func(c *Controller) {
		c.stats = stats
	}
}

// Controller is the playback controller. Store state is only mutated after
// the backend confirms a command, so a failed command never leaves partial
// state behind.
type Controller struct {
	transport Transport
	store     *store.Store
	stats     *session.Stats
	deviceID  string
}

// New creates a playback controller.
func New(transport Transport, st *store.Store, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		store:     st,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play starts playback of the given track. On failure the store is left
// unchanged.
func (c *Controller) Play(ctx context.Context, track core.Track) error {
	if err := c.transport.Play(ctx, track.ID, c.deviceID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPlaybackFailed, err)
	}

	c.store.SetTrack(&track)
	c.store.SetPlaying(true)
	if c.stats != nil {
		c.stats.SongPlayed()
	}
	return nil
}

// Next advances the playlist cursor with wraparound and plays the track
// there. The cursor only moves when the play command succeeds.
func (c *Controller) Next(ctx context.Context) error {
	return c.step(ctx, +1)
}

// Previous moves the playlist cursor back with wraparound and plays the
// track there. The cursor only moves when the play command succeeds.
func (c *Controller) Previous(ctx context.Context) error {
	return c.step(ctx, -1)
}

func (c *Controller) step(ctx context.Context, delta int) error {
	pb := c.store.Playback()
	n := pb.PlaylistLen()
	if n == 0 {
		return errors.ErrEmptyPlaylist
	}

	cursor := ((pb.Cursor+delta)%n + n) % n
	if err := c.Play(ctx, pb.Playlist[cursor]); err != nil {
		return err
	}

	c.store.SetCursor(cursor)
	return nil
}

// TogglePlayPause pauses when playing and resumes when paused. The local
// flag only flips after the backend confirms the command.
func (c *Controller) TogglePlayPause(ctx context.Context) error {
	pb := c.store.Playback()
	if !pb.HasTrack() {
		return fmt.Errorf("%w: nothing is playing", errors.ErrPlaybackFailed)
	}

	if pb.IsPlaying {
		return c.Pause(ctx)
	}
	return c.Resume(ctx)
}

// Pause pauses playback.
func (c *Controller) Pause(ctx context.Context) error {
	if err := c.transport.Pause(ctx, c.deviceID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPlaybackFailed, err)
	}
	c.store.SetPlaying(false)
	return nil
}

// Resume resumes playback.
func (c *Controller) Resume(ctx context.Context) error {
	if err := c.transport.Resume(ctx, c.deviceID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrPlaybackFailed, err)
	}
	c.store.SetPlaying(true)
	return nil
}
