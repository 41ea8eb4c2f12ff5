package browser

import (
	"math"
	"math/rand"
	"time"
)

// Backoff is an exponential delay with ±JitterPct jitter, clamped below at Min.
type Backoff struct {
	Min       time.Duration
	Max       time.Duration
	JitterPct int
}

// Delay returns the wait before retry number attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	minMS := float64(b.Min.Milliseconds())
	maxMS := float64(b.Max.Milliseconds())

	// Exponential backoff: min * 2^(attempt-1)
	exponential := minMS * math.Pow(2, float64(attempt-1))
	if exponential > maxMS {
		exponential = maxMS
	}

	// Apply jitter: ±jitterPct%
	jitterRange := exponential * float64(b.JitterPct) / 100
	jitter := (rand.Float64() - 0.5) * 2 * jitterRange
	finalMS := exponential + jitter

	if finalMS < minMS {
		finalMS = minMS
	}

	return time.Duration(math.Max(finalMS, 0)) * time.Millisecond
}
