package core

// Notifier mirrors mood and detection lifecycle events to external
// observers. All methods are fire-and-forget: implementations must swallow
// delivery failures and must never block the caller meaningfully.
type Notifier interface {
	MoodUpdate(mood Mood, confidence float64)
	StartDetection()
	StopDetection()
	Close()
}

// NoopNotifier discards all events.
type NoopNotifier struct{}

func (NoopNotifier) MoodUpdate(Mood, float64) {}
func (NoopNotifier) StartDetection()          {}
func (NoopNotifier) StopDetection()           {}
func (NoopNotifier) Close()                   {}
