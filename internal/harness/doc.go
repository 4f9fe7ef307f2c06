// Package harness provides a conformance testing framework for the cart
// engine.
//
// Scenarios are YAML files describing a sequence of cart operations (add,
// update, remove, clear, merge) with expected outcomes, plus assertions
// over the final cart state. Each scenario runs against a fresh in-memory
// backend with a deterministic clock and fixed mutation tokens, so the
// same scenario always produces a byte-identical trace.
//
// Traces can be compared against golden files with RunWithGolden; golden
// files are the source of truth for expected engine behavior and are
// regenerated with:
//
//	go test ./internal/harness -update
package harness
