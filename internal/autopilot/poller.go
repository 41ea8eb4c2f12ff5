package autopilot

import (
	"context"
	"time"
)

type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeExhausted
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Poller runs a bounded fixed-interval check. The first tick fires one
// interval after Run starts; ticks are numbered from 1.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
}

// Run calls tick until it returns true, MaxAttempts ticks have run, or ctx
// is done. Only one ticker is alive per Run and it is always stopped.
func (p Poller) Run(ctx context.Context, tick func(ctx context.Context, attempt int) bool) (Outcome, int) {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return OutcomeCancelled, attempt - 1
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return OutcomeCancelled, attempt - 1
		}

		if tick(ctx, attempt) {
			return OutcomeDone, attempt
		}
		if attempt >= maxAttempts {
			return OutcomeExhausted, attempt
		}
	}
}
