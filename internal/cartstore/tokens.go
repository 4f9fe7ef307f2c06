package cartstore

import "github.com/google/uuid"

// TokenGenerator mints mutation tokens for log correlation.
//
// Each successful mutation is logged with a token so a sequence of log
// lines can be tied back to one cart operation. Implemented by
// UUIDv7Generator (production) and testutil.FixedTokenGenerator (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 mutation tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time when grepping logs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
