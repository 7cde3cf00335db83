// Package detector runs the sampler loop: while armed, it captures the
// latest camera frame at a fixed interval, classifies it, and records
// positive detections in the store.
package detector

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aurafm/aura/internal/camera"
	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/errors"
	"github.com/aurafm/aura/internal/store"
)

// DefaultInterval is the fast-mode sampling interval.
const DefaultInterval = 100 * time.Millisecond

// Loop is the timed detection loop. Idle until Start, Armed until Stop.
type Loop struct {
	source     camera.Source
	classifier core.Classifier
	store      *store.Store
	notifier   core.Notifier
	interval   time.Duration

	armed    atomic.Bool
	inFlight atomic.Bool
	skipped  atomic.Uint64

	tickCount atomic.Uint64 // ticks executed in the current second
	lastFPS   atomic.Uint64

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex // serializes Start/Stop
}

// New creates a detection loop. A zero interval falls back to
// DefaultInterval; a nil notifier falls back to the no-op sink.
func New(source camera.Source, classifier core.Classifier, st *store.Store, notifier core.Notifier, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if notifier == nil {
		notifier = core.NoopNotifier{}
	}
	return &Loop{
		source:     source,
		classifier: classifier,
		store:      st,
		notifier:   notifier,
		interval:   interval,
	}
}

// Start arms the loop. It fails with ErrSourceUnavailable when the camera
// source cannot be opened, leaving the loop idle.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.armed.Load() {
		return fmt.Errorf("detector already started")
	}

	if err := l.source.Start(ctx); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrSourceUnavailable, err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.armed.Store(true)
	l.store.SetDetecting(true)
	l.notifier.StartDetection()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run(loopCtx)
	}()

	return nil
}

// Stop disarms the loop, stops the camera source and resets the
// classifier. Detections still in flight are discarded on completion.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.armed.CompareAndSwap(true, false) {
		return
	}

	l.cancel()
	l.wg.Wait()
	l.source.Stop()

	// Best-effort reset; the loop context is already cancelled.
	resetCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = l.classifier.Reset(resetCtx)

	l.store.SetDetecting(false)
	l.notifier.StopDetection()
	l.lastFPS.Store(0)
}

// Armed reports whether the loop is currently sampling.
func (l *Loop) Armed() bool {
	return l.armed.Load()
}

// FPS returns the number of detection ticks executed in the last full
// second. Observability only; never used for control decisions.
func (l *Loop) FPS() int {
	return int(l.lastFPS.Load())
}

// Skipped returns how many ticks were dropped by the in-flight guard.
func (l *Loop) Skipped() uint64 {
	return l.skipped.Load()
}

func (l *Loop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fpsTicker.C:
			l.lastFPS.Store(l.tickCount.Swap(0))
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

// tick runs one detection cycle. At most one detection is in flight at any
// time; ticks arriving while one is outstanding are skipped, never queued.
func (l *Loop) tick(ctx context.Context) {
	if !l.inFlight.CompareAndSwap(false, true) {
		l.skipped.Add(1)
		return
	}

	frame := l.source.Latest()
	if frame == nil {
		// No fresh frame since the last tick.
		l.inFlight.Store(false)
		return
	}

	l.tickCount.Add(1)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.inFlight.Store(false)
		l.detect(ctx, frame)
	}()
}

func (l *Loop) detect(ctx context.Context, frame *camera.Frame) {
	det, err := l.classifier.Detect(ctx, frame.Data)
	if err != nil || !det.Detected {
		// DetectionMiss: silently dropped, the loop continues.
		return
	}

	// Guard the commit: results landing after Stop are discarded.
	if !l.armed.Load() {
		return
	}

	l.store.RecordMood(det.Mood, det.Confidence)
	l.notifier.MoodUpdate(det.Mood, det.Confidence)
}
