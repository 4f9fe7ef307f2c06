package testutil

import "fmt"

// FixedTokenGenerator returns sequential, predictable mutation tokens.
//
// This enables deterministic log output and golden trace comparison: the
// same scenario always logs "mutation-000001", "mutation-000002", and so
// on, instead of fresh UUIDs.
type FixedTokenGenerator struct {
	n int
}

// NewFixedTokenGenerator creates a generator starting at mutation-000001.
func NewFixedTokenGenerator() *FixedTokenGenerator {
	return &FixedTokenGenerator{}
}

// Generate returns the next token in sequence.
func (g *FixedTokenGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("mutation-%06d", g.n)
}
