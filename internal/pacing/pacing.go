// Package pacing spaces out calls to rate-limited collaborators.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"NewspaperAnalyzer/internal/ports"
)

// Interval guarantees at least the configured duration between the starts
// of consecutive calls. The first call never waits.
type Interval struct {
	limiter *rate.Limiter
}

var _ ports.Pacer = (*Interval)(nil)

// Every builds a pacer; a non-positive duration disables waiting.
func Every(d time.Duration) *Interval {
	limit := rate.Inf
	if d > 0 {
		limit = rate.Every(d)
	}
	return &Interval{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (i *Interval) Wait(ctx context.Context) error {
	return i.limiter.Wait(ctx)
}
