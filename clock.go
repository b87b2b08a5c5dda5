package humanfmt

import "time"

// Clock provides the current time. Relative and same-day rendering read
// "now" through it so tests can pin it.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a bare function to Clock
type ClockFunc func() time.Time

// Now implements Clock for ClockFunc
func (fn ClockFunc) Now() time.Time { return fn() }

// FixedClock always reports the same instant.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
