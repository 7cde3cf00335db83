// Package camera captures frames from an HTTP camera feed.
//
// Frames are distributed through a single-slot mailbox: a new frame
// overwrites an unconsumed one. Drop, never queue — the detector always
// works on the freshest frame and a slow classifier cannot build a backlog.
package camera

import (
	"context"
	"sync"
	"time"
)

// Frame is a single captured frame, typically JPEG-encoded. Data must not
// be modified after capture; frames are shared by reference.
type Frame struct {
	Data      []byte
	Timestamp time.Time
	Seq       uint64
}

// Source produces frames from a camera feed.
type Source interface {
	// Start begins capturing. It verifies the feed is reachable before
	// returning, so a dead camera fails fast.
	Start(ctx context.Context) error

	// Latest returns the newest unconsumed frame, or nil when no frame has
	// arrived since the previous call.
	Latest() *Frame

	// Stop ends capturing. Idempotent.
	Stop()
}

// mailbox is a single-slot frame buffer. Publish overwrites; take consumes.
type mailbox struct {
	mu    sync.Mutex
	frame *Frame
	seq   uint64
	drops uint64
}

func (m *mailbox) publish(data []byte, ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frame != nil {
		m.drops++
	}
	m.seq++
	m.frame = &Frame{Data: data, Timestamp: ts, Seq: m.seq}
}

func (m *mailbox) take() *Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := m.frame
	m.frame = nil
	return f
}

// Drops returns how many frames were overwritten before being consumed.
func (m *mailbox) Drops() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drops
}
