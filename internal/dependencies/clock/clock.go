package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run after d. The returned Timer can be
	// stopped before it fires.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a single-shot scheduled call
type Timer interface {
	// Stop cancels the timer. It reports whether the call was prevented
	// from running; false means it already fired or was stopped.
	Stop() bool
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on the runtime timer heap
func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{t: time.AfterFunc(d, f)}
}

type realTimer struct {
	t *time.Timer
}

func (t *realTimer) Stop() bool {
	return t.t.Stop()
}
