package cartstore

import "time"

// Clock supplies timestamps for cart mutations.
//
// Every mutation stamps the touched item's AddedAt and the cart's
// LastUpdated through this interface, so tests and the scenario harness can
// substitute a deterministic implementation and get reproducible snapshots.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock. Timestamps are UTC so persisted
// records compare consistently across hosts.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
