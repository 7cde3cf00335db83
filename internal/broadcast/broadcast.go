// Package broadcast mirrors mood and detection events to a websocket
// channel so companion dashboards can follow along. The channel is a
// best-effort mirror: every failure is swallowed and never reaches the
// pipeline.
package broadcast

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aurafm/aura/internal/core"
)

const (
	reconnectAttempts = 5
	reconnectDelay    = time.Second
	writeTimeout      = 5 * time.Second
	queueSize         = 32
)

type event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type moodPayload struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
}

// Notifier implements core.Notifier over a websocket connection. Events
// are queued and written by a background goroutine; the connection is
// established lazily on the first event and re-established with bounded
// retries when it drops. Callers never block: when the queue is full the
// event is dropped.
type Notifier struct {
	url  string
	dial func(url string) (*websocket.Conn, error)

	queue chan event
	done  chan struct{}
	once  sync.Once
}

// New creates a notifier for the given websocket URL. No connection is
// made until the first event is sent.
func New(url string) *Notifier {
	n := &Notifier{
		url: url,
		dial: func(url string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			return conn, err
		},
		queue: make(chan event, queueSize),
		done:  make(chan struct{}),
	}
	go n.writeLoop()
	return n
}

// MoodUpdate mirrors a mood sample.
func (n *Notifier) MoodUpdate(mood core.Mood, confidence float64) {
	n.enqueue(event{Event: "mood_update", Data: moodPayload{Mood: string(mood), Confidence: confidence}})
}

// StartDetection announces that the detection loop started.
func (n *Notifier) StartDetection() {
	n.enqueue(event{Event: "start_detection"})
}

// StopDetection announces that the detection loop stopped.
func (n *Notifier) StopDetection() {
	n.enqueue(event{Event: "stop_detection"})
}

// Close shuts the writer down. Further events are dropped.
func (n *Notifier) Close() {
	n.once.Do(func() { close(n.done) })
}

func (n *Notifier) enqueue(ev event) {
	select {
	case n.queue <- ev:
	case <-n.done:
	default:
		// Channel is behind; drop rather than block the pipeline.
	}
}

func (n *Notifier) writeLoop() {
	var conn *websocket.Conn
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	for {
		select {
		case <-n.done:
			return
		case ev := <-n.queue:
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if conn == nil {
				conn = n.connect()
				if conn == nil {
					continue
				}
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err == nil {
				continue
			}
			// Connection went bad mid-session; reconnect once and
			// retry this event, then give up on it.
			conn.Close()
			conn = n.connect()
			if conn == nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			conn.WriteMessage(websocket.TextMessage, payload)
		}
	}
}

// connect dials with bounded retries, pausing between attempts.
func (n *Notifier) connect() *websocket.Conn {
	for attempt := 0; attempt < reconnectAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-n.done:
				return nil
			case <-time.After(reconnectDelay):
			}
		}
		conn, err := n.dial(n.url)
		if err != nil {
			continue
		}
		go drain(conn)
		return conn
	}
	return nil
}

// drain reads and discards inbound frames so the peer's pings and
// mood_changed echoes do not back up the connection.
func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
