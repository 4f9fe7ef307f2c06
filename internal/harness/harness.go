package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tillroom/consigncart/internal/cart"
	"github.com/tillroom/consigncart/internal/cartstore"
	"github.com/tillroom/consigncart/internal/storage"
	"github.com/tillroom/consigncart/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory backend for isolation, with
// the deterministic clock and fixed mutation tokens, so repeated runs
// produce identical traces.
//
// Execution flow:
//  1. Build an in-memory backend, adapter and store for the scenario tenant
//  2. Apply each step in order, recording a trace event per step
//  3. Check each step's expect_ok against the operation's result
//  4. Evaluate the final-state assertions
func Run(scenario *Scenario) (*Result, error) {
	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := storage.NewAdapter(storage.NewMemoryBackend(), logger)
	store := cartstore.New(ctx, scenario.tenant(), adapter, scenario.taxRate(),
		cartstore.WithClock(testutil.NewScenarioClock()),
		cartstore.WithTokenGenerator(testutil.NewFixedTokenGenerator()),
		cartstore.WithLogger(logger),
	)

	result := NewResult()
	for i, step := range scenario.Steps {
		ok := applyStep(ctx, store, step)

		snap := store.Snapshot()
		result.Trace = append(result.Trace, TraceEvent{
			Seq:       i + 1,
			Op:        step.Op,
			ItemID:    step.ItemID,
			Quantity:  step.Quantity,
			OK:        ok,
			ItemCount: snap.ItemCount,
			Subtotal:  snap.Subtotal,
			Tax:       snap.Tax,
			Total:     snap.Total,
		})

		if step.ExpectOK != nil && ok != *step.ExpectOK {
			result.AddError("step %d (%s %s): ok = %v, expected %v",
				i+1, step.Op, step.ItemID, ok, *step.ExpectOK)
		}
	}

	final := store.Snapshot()
	for _, assertion := range scenario.Assertions {
		if err := evaluate(final, assertion, result.Trace); err != nil {
			result.AddError("%v", err)
		}
	}

	return result, nil
}

// applyStep executes one operation against the store.
// clear and merge have no failure mode and always report true.
func applyStep(ctx context.Context, store *cartstore.Store, step Step) bool {
	switch step.Op {
	case "add":
		item := cart.Item{
			ItemID:    step.ItemID,
			Title:     step.Title,
			Price:     step.Price,
			Category:  step.Category,
			Brand:     step.Brand,
			Condition: step.Condition,
		}
		return store.Add(ctx, item, step.Quantity)
	case "update":
		return store.UpdateQuantity(ctx, step.ItemID, step.Quantity)
	case "remove":
		return store.Remove(ctx, step.ItemID)
	case "clear":
		store.Clear(ctx)
		return true
	case "merge":
		authoritative := make([]cart.Item, len(step.Authoritative))
		for i, m := range step.Authoritative {
			authoritative[i] = cart.Item{
				ItemID:      m.ItemID,
				Title:       m.Title,
				Price:       m.Price,
				Quantity:    m.Quantity,
				IsAvailable: true,
			}
		}
		store.Merge(ctx, authoritative)
		return true
	default:
		// validate() already rejected unknown ops.
		return false
	}
}
