package game

import "time"

// TickLimiter paces the driver loop to a fixed tick rate.
type TickLimiter struct {
	rate int
	next time.Time
}

// NewTickLimiter creates a limiter for rate ticks per second. A rate <= 0
// disables pacing.
func NewTickLimiter(rate int) *TickLimiter {
	return &TickLimiter{rate: rate}
}

// Interval returns the target tick duration, or 0 when unlimited.
func (l *TickLimiter) Interval() time.Duration {
	if l.rate <= 0 {
		return 0
	}
	return time.Second / time.Duration(l.rate)
}

// Wait blocks until the next tick is due. It sleeps for most of the interval
// and spins for the final stretch.
func (l *TickLimiter) Wait() {
	target := l.Interval()
	if target == 0 {
		l.next = time.Time{}
		return
	}

	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// More than a full tick late: resync instead of bursting to catch up.
	if late := -time.Until(l.next); late > target {
		l.next = time.Now().Add(target)
	}
}
