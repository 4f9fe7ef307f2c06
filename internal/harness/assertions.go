package harness

import (
	"fmt"
	"strings"

	"github.com/tillroom/consigncart/internal/cart"
)

// AssertionError is returned when a final-state assertion fails.
// It includes the executed trace so failures can be debugged in place.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s ok=%v count=%d total=%v\n",
			event.Seq, event.Op, event.ItemID, event.OK, event.ItemCount, event.Total)
	}

	return buf.String()
}

// evaluate checks one assertion against the final cart.
func evaluate(final cart.Cart, assertion Assertion, trace []TraceEvent) error {
	switch assertion.Type {
	case AssertFinalState:
		return assertFinalState(final, assertion, trace)
	case AssertItemPresent:
		return assertItemPresent(final, assertion, trace)
	case AssertItemAbsent:
		return assertItemAbsent(final, assertion, trace)
	default:
		return fmt.Errorf("unknown assertion type %q", assertion.Type)
	}
}

func assertFinalState(final cart.Cart, assertion Assertion, trace []TraceEvent) error {
	fail := func(field string, want, got any) error {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("%s = %v", field, want),
			Actual:   fmt.Sprintf("%s = %v", field, got),
			Trace:    trace,
		}
	}

	if assertion.ItemCount != nil && final.ItemCount != *assertion.ItemCount {
		return fail("item_count", *assertion.ItemCount, final.ItemCount)
	}
	if assertion.Subtotal != nil && final.Subtotal != *assertion.Subtotal {
		return fail("subtotal", *assertion.Subtotal, final.Subtotal)
	}
	if assertion.Tax != nil && final.Tax != *assertion.Tax {
		return fail("tax", *assertion.Tax, final.Tax)
	}
	if assertion.Total != nil && final.Total != *assertion.Total {
		return fail("total", *assertion.Total, final.Total)
	}
	return nil
}

func assertItemPresent(final cart.Cart, assertion Assertion, trace []TraceEvent) error {
	i := final.IndexOf(assertion.ItemID)
	if i < 0 {
		return &AssertionError{
			Type:     AssertItemPresent,
			Expected: fmt.Sprintf("item %s present", assertion.ItemID),
			Actual:   "not in cart",
			Trace:    trace,
		}
	}
	if assertion.Quantity != nil && final.Items[i].Quantity != *assertion.Quantity {
		return &AssertionError{
			Type:     AssertItemPresent,
			Expected: fmt.Sprintf("item %s quantity %d", assertion.ItemID, *assertion.Quantity),
			Actual:   fmt.Sprintf("quantity %d", final.Items[i].Quantity),
			Trace:    trace,
		}
	}
	return nil
}

func assertItemAbsent(final cart.Cart, assertion Assertion, trace []TraceEvent) error {
	if final.IndexOf(assertion.ItemID) >= 0 {
		return &AssertionError{
			Type:     AssertItemAbsent,
			Expected: fmt.Sprintf("item %s absent", assertion.ItemID),
			Actual:   "present in cart",
			Trace:    trace,
		}
	}
	return nil
}
