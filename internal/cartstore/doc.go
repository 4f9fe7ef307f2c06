// Package cartstore implements the per-tenant cart store.
//
// A Store owns the authoritative in-memory cart for exactly one tenant and
// applies mutations atomically with respect to the single calling thread of
// execution.
//
// ARCHITECTURE:
//
// Synchronous Mutation Pipeline:
// Every mutator runs to completion within the calling invocation:
//
//	validate -> mutate items -> recompute totals -> persist -> notify
//
// There is no queue, no goroutine, nothing to await or cancel - this
// subsystem performs no network I/O and no background work.
//
// Persist-Before-Notify:
// Subscribers are notified only after the snapshot has been handed to the
// storage adapter. Code that reacts to a notification and then reads
// durable storage independently always observes a value at least as new as
// the snapshot it was notified with. Never reorder these two steps.
//
// Validation Failures:
// Invalid input (empty item id, non-positive add quantity, negative update
// quantity, unknown item id) returns false with no state change, no
// persistence and no notification. No error crosses the boundary.
//
// Tenant Isolation:
// Stores never share state. Operations on one tenant's store cannot read
// or block another tenant's store; isolation between durable records is the
// storage key namespace.
package cartstore
