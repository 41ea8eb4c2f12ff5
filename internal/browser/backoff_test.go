package browser

import (
	"testing"
	"time"
)

func TestBackoffCalculation(t *testing.T) {
	b := Backoff{
		Min:       250 * time.Millisecond,
		Max:       2000 * time.Millisecond,
		JitterPct: 20,
	}

	for attempt := 1; attempt <= 8; attempt++ {
		backoff := b.Delay(attempt)
		if backoff < b.Min || backoff > b.Max*120/100 {
			t.Errorf("Backoff out of expected range for attempt %d: %v", attempt, backoff)
		}
	}
}

func TestBackoffGrows(t *testing.T) {
	b := Backoff{Min: 100 * time.Millisecond, Max: 10 * time.Second}

	prev := time.Duration(0)
	for attempt := 1; attempt <= 5; attempt++ {
		d := b.Delay(attempt)
		if d <= prev {
			t.Errorf("Delay(%d) = %v, want > %v without jitter", attempt, d, prev)
		}
		prev = d
	}

	if d := b.Delay(0); d != b.Min {
		t.Errorf("Delay(0) = %v, want %v", d, b.Min)
	}
}
