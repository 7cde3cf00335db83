// Package classifier provides mood classifiers for the sampler loop.
package classifier

import (
	"context"

	"github.com/aurafm/aura/internal/backend"
	"github.com/aurafm/aura/internal/core"
)

// Remote classifies frames via the backend's mood detection endpoint.
type Remote struct {
	client *backend.Client
}

// NewRemote creates a classifier backed by the given backend client.
func NewRemote(client *backend.Client) *Remote {
	return &Remote{client: client}
}

// Detect sends the frame to the backend and maps the response.
func (r *Remote) Detect(ctx context.Context, frame []byte) (core.Detection, error) {
	result, err := r.client.Detect(ctx, frame)
	if err != nil {
		return core.Detection{}, err
	}
	if !result.Detected {
		return core.Detection{}, nil
	}
	return core.Detection{
		Detected:   true,
		Mood:       core.Mood(result.Mood),
		Confidence: result.Confidence,
	}, nil
}

// Reset clears the backend detector's smoothing history.
func (r *Remote) Reset(ctx context.Context) error {
	return r.client.ResetDetector(ctx)
}
