package camera

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
)

const reconnectDelay = time.Second

// MJPEGSource reads a multipart MJPEG stream (the format served by most IP
// cameras and phone camera apps) and keeps the newest frame in a mailbox.
type MJPEGSource struct {
	url        string
	httpClient *http.Client

	box  mailbox
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewMJPEGSource creates a source for the given stream URL.
func NewMJPEGSource(url string) *MJPEGSource {
	return &MJPEGSource{
		url:        url,
		httpClient: &http.Client{}, // no timeout: the stream is long-lived
	}
}

// Start connects to the stream and begins reading frames. It returns an
// error when the stream cannot be opened, leaving the source stopped.
// A stopped source may be started again.
func (s *MJPEGSource) Start(ctx context.Context) error {
	resp, boundary, err := s.connect(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.readLoop(ctx, stop, resp, boundary)
	}()

	return nil
}

// Latest returns the newest unconsumed frame.
func (s *MJPEGSource) Latest() *Frame {
	return s.box.take()
}

// Stop ends capturing. Safe to call more than once.
func (s *MJPEGSource) Stop() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Drops reports frames overwritten before consumption.
func (s *MJPEGSource) Drops() uint64 {
	return s.box.Drops()
}

func (s *MJPEGSource) connect(ctx context.Context) (*http.Response, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("connect camera stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("camera stream returned status %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("camera stream is not multipart MJPEG (content-type %q)", resp.Header.Get("Content-Type"))
	}

	return resp, params["boundary"], nil
}

// readLoop consumes stream parts until stopped, reconnecting when the
// stream drops mid-session.
func (s *MJPEGSource) readLoop(ctx context.Context, stop chan struct{}, resp *http.Response, boundary string) {
	for {
		s.readStream(stop, resp, boundary)
		if resp != nil {
			_ = resp.Body.Close()
		}

		// Stream ended; back off and reconnect unless stopping.
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}

		var err error
		resp, boundary, err = s.connect(ctx)
		if err != nil {
			// Camera still down. Keep trying until stopped.
			resp = nil
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
			continue
		}
	}
}

func (s *MJPEGSource) readStream(stop chan struct{}, resp *http.Response, boundary string) {
	if resp == nil {
		return
	}

	// NextPart blocks on the body; close it on stop so a stalled camera
	// connection cannot wedge Stop.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-stop:
			_ = resp.Body.Close()
		case <-done:
		}
	}()

	reader := multipart.NewReader(resp.Body, boundary)

	for {
		select {
		case <-stop:
			return
		default:
		}

		part, err := reader.NextPart()
		if err != nil {
			return
		}
		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return
		}
		if len(data) > 0 {
			s.box.publish(data, time.Now())
		}
	}
}
