// Package clock holds context-aware waiting helpers.
package clock

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx ends. Components take one so tests can skip real waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d and returns ctx.Err() if the context ends first.
// A non-positive duration only checks the context.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
