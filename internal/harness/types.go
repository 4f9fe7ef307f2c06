package harness

import "fmt"

// TraceEvent records one executed step and the cart state it produced.
type TraceEvent struct {
	Seq       int     `json:"seq"`
	Op        string  `json:"op"`
	ItemID    string  `json:"item_id,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	OK        bool    `json:"ok"`
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expect_ok matched and every
	// assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a failure and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
