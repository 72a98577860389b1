package timex

import (
	"context"
	"time"

	"sinedac-go/errcode"
)

// Callback runs once per period. Returning false cancels the schedule.
type Callback func() bool

// LateFunc is told how far past its deadline a callback finished.
type LateFunc func(late time.Duration)

// RepeatFunc is the shape of a repeating-timer service. Repeat is the
// default; tests substitute a manual driver.
type RepeatFunc func(ctx context.Context, period time.Duration, fn Callback, onLate LateFunc) error

// Repeat calls fn every period, measured from call start to call start, so
// the callback's own duration does not stretch the period. A callback that
// runs past the next deadline is reported to onLate (if non-nil); the
// missed tick is not replayed.
//
// Repeat blocks until ctx is cancelled (returning ctx.Err()) or fn returns
// false (returning nil). Callbacks never overlap.
func Repeat(ctx context.Context, period time.Duration, fn Callback, onLate LateFunc) error {
	if period <= 0 || fn == nil {
		return errcode.New(errcode.InvalidParams, "timex.Repeat", "period must be > 0 and fn non-nil")
	}
	t := time.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case due := <-t.C:
			if !fn() {
				return nil
			}
			if el := time.Since(due); el > period && onLate != nil {
				onLate(el - period)
			}
		}
	}
}
