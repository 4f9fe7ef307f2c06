// Package storage provides durable per-tenant persistence for cart
// snapshots, isolated from the cart store's in-memory logic.
//
// The Backend interface is a deliberately narrow key-value contract so the
// medium can be swapped without touching business rules: SQLite for
// long-lived hosts, a JSON file directory mirroring browser local storage,
// and an in-memory map for tests.
//
// The durable medium is shared across tenants and namespaced by key, with
// no locking. Two processes writing the same tenant's key race with
// last-write-wins semantics. That is a known limitation of the design and
// is preserved here.
package storage

import "context"

// Backend is the raw key-value persistence contract.
//
// Get reports ok=false when no record exists for the key; err is reserved
// for medium-level failures (I/O, database errors). Put always performs a
// full replace of the record - partial reconciliation is never done at the
// storage layer.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key returns the storage key for a tenant's cart record.
// One record per tenant, at "cart_{tenantID}".
func Key(tenantID string) string {
	return "cart_" + tenantID
}
