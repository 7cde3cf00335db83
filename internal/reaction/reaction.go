// Package reaction turns mood changes into playback decisions: a change to
// a new non-neutral label fetches recommendations and starts the first
// track.
package reaction

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/errors"
	"github.com/aurafm/aura/internal/session"
	"github.com/aurafm/aura/internal/store"
)

// Recommender fetches mood-based track recommendations.
type Recommender interface {
	Recommend(ctx context.Context, mood core.Mood, limit int) ([]core.Track, error)
}

// Player starts playback of a track.
type Player interface {
	Play(ctx context.Context, track core.Track) error
}

// Notice is a recoverable, user-visible condition surfaced by the
// controller. State is always left untouched when a Notice is emitted.
type Notice struct {
	Err  error
	Mood core.Mood
	Time time.Time
}

// DefaultLimit is the number of recommendations requested per mood change.
const DefaultLimit = 20

// Option configures a Controller.
type Option func(*Controller)

// WithLimit sets the recommendation batch size.
func WithLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithStats wires session statistics.
func WithStats(stats *session.Stats) Option {
	return func(c *Controller) {
		c.stats = stats
	}
}

// Controller reacts to mood changes recorded in the store.
type Controller struct {
	recommender Recommender
	player      Player
	store       *store.Store
	stats       *session.Stats
	limit       int

	seq     atomic.Uint64
	notices chan Notice
}

// New creates a reaction controller.
func New(recommender Recommender, player Player, st *store.Store, opts ...Option) *Controller {
	c := &Controller{
		recommender: recommender,
		player:      player,
		store:       st,
		limit:       DefaultLimit,
		notices:     make(chan Notice, 8),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notices returns recoverable conditions for presentation. Delivery is
// best-effort; unread notices are dropped.
func (c *Controller) Notices() <-chan Notice {
	return c.notices
}

// Run consumes the store's mood subscription until the context ends.
// Triggers are evaluated strictly in order; overlapping fetches from rapid
// successive mood changes are allowed to race, and stale responses are
// discarded by sequence number.
func (c *Controller) Run(ctx context.Context) {
	changes := c.store.SubscribeMood(16)
	defer c.store.UnsubscribeMood(changes)

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if !c.qualifies(change) {
				continue
			}
			if c.stats != nil {
				c.stats.MoodChanged()
			}
			seq := c.seq.Add(1)
			go c.trigger(ctx, change.Sample.Mood, seq)
		}
	}
}

// qualifies gates triggers: only a change of label to a non-neutral mood
// fires. A repeated identical label never re-triggers.
func (c *Controller) qualifies(change store.MoodChange) bool {
	if change.Sample.Mood == change.Previous {
		return false
	}
	return !change.Sample.Mood.IsNeutral()
}

func (c *Controller) trigger(ctx context.Context, mood core.Mood, seq uint64) {
	tracks, err := c.recommender.Recommend(ctx, mood, c.limit)

	// A newer mood change supersedes this trigger; drop the response
	// without touching state.
	if seq != c.seq.Load() {
		return
	}
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		c.notify(fmt.Errorf("%w: %v", errors.ErrRecommendationFailed, err), mood)
		return
	}
	if len(tracks) == 0 {
		c.notify(fmt.Errorf("%w %q", errors.ErrNoSongsForMood, mood), mood)
		return
	}

	c.store.SetPlaylist(tracks)
	c.store.SetCursor(0)

	if err := c.player.Play(ctx, tracks[0]); err != nil {
		c.notify(err, mood)
	}
}

func (c *Controller) notify(err error, mood core.Mood) {
	notice := Notice{Err: err, Mood: mood, Time: time.Now()}
	select {
	case c.notices <- notice:
	default:
		// Nobody is reading; drop rather than block the pipeline.
	}
}
