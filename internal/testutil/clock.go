package testutil

import "time"

// DeterministicClock returns timestamps that advance by a fixed step on
// every call.
//
// Cart mutations stamp AddedAt and LastUpdated through a clock; with this
// implementation the same operation sequence always produces byte-identical
// snapshots, which is what golden trace comparison depends on.
//
// Not safe for concurrent use; the cart subsystem runs in a single
// execution context.
type DeterministicClock struct {
	current time.Time
	step    time.Duration
}

// NewDeterministicClock creates a clock starting at start, advancing by
// step on each Now() call. The first call returns start + step.
func NewDeterministicClock(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{current: start, step: step}
}

// NewScenarioClock returns the clock used by the scenario harness:
// 2026-01-01T00:00:00Z advancing one second per call.
func NewScenarioClock() *DeterministicClock {
	return NewDeterministicClock(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Second,
	)
}

// Now advances the clock by one step and returns the new time.
// Monotonic: each call returns a strictly later time.
func (c *DeterministicClock) Now() time.Time {
	c.current = c.current.Add(c.step)
	return c.current
}

// Current returns the clock's position without advancing it.
func (c *DeterministicClock) Current() time.Time {
	return c.current
}
