package drivers

import (
	"context"
	"time"

	"github.com/remotedeck/remotedeck/internal/application/ports"
)

var _ ports.Sleeper = ContextSleeper{}

// ContextSleeper waits on a timer and gives up when ctx is done.
type ContextSleeper struct{}

// Sleep implements ports.Sleeper.
func (ContextSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
