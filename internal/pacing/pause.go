package pacing

import (
	"context"
	"time"

	"NewspaperAnalyzer/internal/ports"
)

// Pause sleeps a fixed duration on every call, regardless of how long the
// previous call took.
type Pause struct {
	d time.Duration
}

var _ ports.Pacer = Pause{}

// Fixed builds a Pause; a non-positive duration returns immediately.
func Fixed(d time.Duration) Pause {
	return Pause{d: d}
}

// Wait sleeps for the configured duration or until ctx is done.
func (p Pause) Wait(ctx context.Context) error {
	if p.d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
