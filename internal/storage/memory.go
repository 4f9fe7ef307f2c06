package storage

import "context"

// MemoryBackend is a map-backed Backend for tests and the scenario harness.
//
// Values are copied on Put and Get so callers cannot alias the stored
// record. Not safe for concurrent use; the subsystem assumes a single
// execution context.
type MemoryBackend struct {
	records map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

// Get returns the record stored at key, or ok=false if none exists.
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := b.records[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Put replaces the record at key with a copy of value.
func (b *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	b.records[key] = stored
	return nil
}

// Close is a no-op.
func (b *MemoryBackend) Close() error {
	return nil
}

// Len returns the number of stored records. Test helper.
func (b *MemoryBackend) Len() int {
	return len(b.records)
}
