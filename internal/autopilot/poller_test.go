package autopilot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollerExhausts(t *testing.T) {
	ticks := 0
	outcome, attempts := Poller{Interval: time.Millisecond, MaxAttempts: 10}.Run(context.Background(),
		func(ctx context.Context, attempt int) bool {
			ticks++
			assert.Equal(t, ticks, attempt)
			return false
		})

	assert.Equal(t, OutcomeExhausted, outcome)
	assert.Equal(t, 10, attempts)
	assert.Equal(t, 10, ticks)
}

func TestPollerStopsOnSuccess(t *testing.T) {
	ticks := 0
	outcome, attempts := Poller{Interval: time.Millisecond, MaxAttempts: 15}.Run(context.Background(),
		func(ctx context.Context, attempt int) bool {
			ticks++
			return attempt == 3
		})

	assert.Equal(t, OutcomeDone, outcome)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, ticks)
}

func TestPollerFirstTickAfterInterval(t *testing.T) {
	interval := 30 * time.Millisecond
	start := time.Now()
	var firstTick time.Duration

	Poller{Interval: interval, MaxAttempts: 1}.Run(context.Background(),
		func(ctx context.Context, attempt int) bool {
			firstTick = time.Since(start)
			return true
		})

	assert.GreaterOrEqual(t, firstTick, interval)
}

func TestPollerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	outcome, attempts := Poller{Interval: time.Millisecond, MaxAttempts: 5}.Run(ctx,
		func(ctx context.Context, attempt int) bool {
			called = true
			return false
		})

	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Equal(t, 0, attempts)
	assert.False(t, called)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "done", OutcomeDone.String())
	assert.Equal(t, "exhausted", OutcomeExhausted.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
}
