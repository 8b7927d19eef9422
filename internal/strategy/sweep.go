package strategy

import (
	"context"
	"time"

	"github.com/yanun0323/pkg/sys"
)

// sweepSecond is the second-of-minute the status sweep fires at, a few
// seconds ahead of the boundary so the complete flags are down before
// the next batch of venue ticks lands.
const sweepSecond = 57

// StartStatusSweep runs the once-per-minute sweep, first firing at the
// next second-57 mark.
func (e *Engine) StartStatusSweep(ctx context.Context) {
	go func() {
		remaining := sweepSecond - time.Now().Second()
		if remaining < 0 {
			remaining += 60
		}

		timer := time.NewTimer(time.Duration(remaining) * time.Second)
		defer timer.Stop()

		select {
		case <-sys.Shutdown():
			return
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		e.Sweep()

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.Sweep()
			}
		}
	}()
}
