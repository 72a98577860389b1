package heartbeat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sinedac-go/x/timex"
)

type levels struct {
	mu  sync.Mutex
	set []bool
}

func (l *levels) Set(high bool) {
	l.mu.Lock()
	l.set = append(l.set, high)
	l.mu.Unlock()
}

func TestHeartbeatTogglesThenParksLow(t *testing.T) {
	pin := &levels{}
	var period time.Duration
	s := &Service{
		Pin: pin,
		Repeat: func(ctx context.Context, d time.Duration, fn timex.Callback, _ timex.LateFunc) error {
			period = d
			for i := 0; i < 4; i++ {
				fn()
			}
			return nil
		},
	}
	s.Run(context.Background())

	assert.Equal(t, DefaultInterval, period)
	assert.Equal(t, []bool{true, false, true, false, false}, pin.set)
}

func TestHeartbeatStopsOnCancel(t *testing.T) {
	pin := &levels{}
	s := &Service{Pin: pin, Interval: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		pin.mu.Lock()
		defer pin.mu.Unlock()
		return len(pin.set) >= 3
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	pin.mu.Lock()
	defer pin.mu.Unlock()
	assert.False(t, pin.set[len(pin.set)-1])
}
