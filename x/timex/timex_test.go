package timex

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinedac-go/errcode"
)

func TestPeriodFromHz(t *testing.T) {
	assert.Equal(t, 25*time.Microsecond, PeriodFromHz(40000))
	assert.Equal(t, time.Second, PeriodFromHz(0))
}

func TestRepeatStopsWhenCallbackDeclines(t *testing.T) {
	var n atomic.Int32
	err := Repeat(context.Background(), time.Millisecond, func() bool {
		return n.Add(1) < 5
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(5), n.Load())
}

func TestRepeatStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Repeat(ctx, time.Millisecond, func() bool {
			n.Add(1)
			return true
		}, nil)
	}()

	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Repeat did not return after cancel")
	}
}

func TestRepeatReportsLateCallbacks(t *testing.T) {
	var lates atomic.Int32
	var calls int
	err := Repeat(context.Background(), time.Millisecond, func() bool {
		calls++
		time.Sleep(5 * time.Millisecond)
		return calls < 3
	}, func(late time.Duration) {
		if late > 0 {
			lates.Add(1)
		}
	})
	require.NoError(t, err)
	// The final call returns false before the late check.
	assert.Equal(t, int32(2), lates.Load())
}

func TestRepeatRejectsBadParams(t *testing.T) {
	err := Repeat(context.Background(), 0, func() bool { return false }, nil)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))

	err = Repeat(context.Background(), time.Millisecond, nil, nil)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
}
