package payment

import (
	"context"
	"time"
)

// Sleeper waits for a duration or returns early on context cancellation.
// The confirmation delay goes through this interface so tests control
// completion timing deterministically.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper is the production Sleeper backed by a real timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
