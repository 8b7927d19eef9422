package registry

import (
	"context"
	"time"

	"github.com/yanun0323/pkg/sys"
)

// rolloverHourUTC is the daily checkpoint for the expiration check,
// a quiet hour between sessions.
const rolloverHourUTC = 1

// StartDailyCheck runs the expiration check once per day, first firing
// at the daily checkpoint after start. The check only touches identities
// when the computed suffix differs from the assigned one.
func (r *Registry) StartDailyCheck(ctx context.Context) {
	go func() {
		now := time.Now().UTC()
		next := time.Date(now.Year(), now.Month(), now.Day(), rolloverHourUTC, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

		timer := time.NewTimer(next.Sub(now))
		defer timer.Stop()

		select {
		case <-sys.Shutdown():
			return
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		r.RollExpirations(time.Now().UTC())

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.RollExpirations(time.Now().UTC())
			}
		}
	}()
}
