package camera

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultSnapshotInterval is how often SnapshotSource fetches a still.
const DefaultSnapshotInterval = 100 * time.Millisecond

// SnapshotSource polls a still-image URL (one JPEG per GET) and keeps the
// newest frame in a mailbox. Useful for cameras that only expose a
// /snapshot endpoint.
type SnapshotSource struct {
	url        string
	interval   time.Duration
	httpClient *http.Client

	box  mailbox
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewSnapshotSource creates a source polling the given URL. A zero interval
// falls back to DefaultSnapshotInterval.
func NewSnapshotSource(url string, interval time.Duration) *SnapshotSource {
	if interval <= 0 {
		interval = DefaultSnapshotInterval
	}
	return &SnapshotSource{
		url:        url,
		interval:   interval,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Start probes the snapshot URL once, then begins polling. A failed probe
// returns an error and leaves the source stopped. A stopped source may be
// started again.
func (s *SnapshotSource) Start(ctx context.Context) error {
	data, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	s.box.publish(data, time.Now())

	s.mu.Lock()
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pollLoop(ctx, stop)
	}()

	return nil
}

// Latest returns the newest unconsumed frame.
func (s *SnapshotSource) Latest() *Frame {
	return s.box.take()
}

// Stop ends capturing. Safe to call more than once.
func (s *SnapshotSource) Stop() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Drops reports frames overwritten before consumption.
func (s *SnapshotSource) Drops() uint64 {
	return s.box.Drops()
}

func (s *SnapshotSource) pollLoop(ctx context.Context, stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			data, err := s.fetch(ctx)
			if err != nil {
				continue // transient camera hiccup; next tick retries
			}
			s.box.publish(data, time.Now())
		}
	}
}

func (s *SnapshotSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
