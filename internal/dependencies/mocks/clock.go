package mocks

import (
	"sync"
	"time"

	"github.com/nexusgamble/nexusgamble-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Scheduled funcs run synchronously from Advance, which makes timer
// races deterministic in tests.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// AfterFunc registers f to fire when the clock advances past d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{
		clock:    c,
		deadline: c.currentTime.Add(d),
		f:        f,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and fires any due timers
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	now := c.currentTime

	var due []*mockTimer
	var remaining []*mockTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.deadline.After(now) {
			t.fired = true
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	// Fire outside the lock so callbacks can use the clock
	for _, t := range due {
		t.f()
	}
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// PendingTimers returns the number of unfired, unstopped timers
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
