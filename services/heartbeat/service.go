package heartbeat

import (
	"context"
	"time"

	"sinedac-go/x/logx"
	"sinedac-go/x/timex"
)

// Pin is the "set output pin" capability. machine.Pin satisfies it.
type Pin interface {
	Set(high bool)
}

const DefaultInterval = 500 * time.Millisecond

// Service blinks a status LED so a running board is visible at a glance.
type Service struct {
	Pin      Pin
	Interval time.Duration
	Log      logx.Logger
	Repeat   timex.RepeatFunc

	on bool
}

func (s *Service) serviceLoop(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	repeat := s.Repeat
	if repeat == nil {
		repeat = timex.Repeat
	}
	err := repeat(ctx, interval, func() bool {
		s.on = !s.on
		s.Pin.Set(s.on)
		return true
	}, nil)
	s.Pin.Set(false)
	if s.Log != nil {
		s.Log.Infow("heartbeat stopping", "err", err)
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context) {
	go s.serviceLoop(ctx)
}

// Run blocks until ctx is done.
func (s *Service) Run(ctx context.Context) { s.serviceLoop(ctx) }
