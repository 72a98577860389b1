package synth

import (
	"context"
	"time"

	"sinedac-go/errcode"
)

// Monitor logs the tick counters every interval until ctx is done, and
// warns whenever overruns or dropped samples grew since the last report.
func (s *Service) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	prev := s.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			st := s.Stats()
			if st.Overruns > prev.Overruns || st.Dropped > prev.Dropped {
				s.log.Warnw("synth missed deadlines",
					"code", errcode.Overrun,
					"overruns", st.Overruns-prev.Overruns,
					"dropped", st.Dropped-prev.Dropped,
				)
			}
			s.log.Infow("synth stats",
				"state", s.State().Level,
				"ticks", st.Ticks,
				"rate_hz", float64(st.Ticks-prev.Ticks)/interval.Seconds(),
				"phase", st.Phase,
			)
			prev = st
		}
	}
}
