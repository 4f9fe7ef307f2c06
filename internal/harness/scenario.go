package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario for the cart engine.
//
// A scenario executes a flow of cart operations against a single tenant's
// store and asserts on the resulting trace and final cart state.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name for trace comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Tenant is the tenant id the scenario runs under.
	// Defaults to "scenario-tenant" for deterministic golden comparison.
	Tenant string `yaml:"tenant,omitempty"`

	// TaxRate is the rate applied when totals are computed.
	// Defaults to 0.08.
	TaxRate *float64 `yaml:"tax_rate,omitempty"`

	// Steps is the operation flow to execute, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final cart state after all steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one cart operation in a scenario flow.
type Step struct {
	// Op is the operation: "add", "update", "remove", "clear" or "merge".
	Op string `yaml:"op"`

	// ItemID addresses the item for add/update/remove.
	ItemID string `yaml:"item_id,omitempty"`

	// Title, Price and friends populate the catalog descriptor for add.
	Title     string  `yaml:"title,omitempty"`
	Price     float64 `yaml:"price,omitempty"`
	Category  string  `yaml:"category,omitempty"`
	Brand     string  `yaml:"brand,omitempty"`
	Condition string  `yaml:"condition,omitempty"`

	// Quantity is the add amount or the update target.
	Quantity int `yaml:"quantity,omitempty"`

	// Authoritative is the account-side item list for merge.
	Authoritative []MergeItem `yaml:"authoritative,omitempty"`

	// ExpectOK, when set, asserts the operation's boolean result.
	ExpectOK *bool `yaml:"expect_ok,omitempty"`
}

// MergeItem is an authoritative item in a merge step.
type MergeItem struct {
	ItemID   string  `yaml:"item_id"`
	Title    string  `yaml:"title,omitempty"`
	Price    float64 `yaml:"price,omitempty"`
	Quantity int     `yaml:"quantity"`
}

// Assertion types.
const (
	// AssertFinalState checks derived fields of the final cart.
	AssertFinalState = "final_state"
	// AssertItemPresent checks an item exists, optionally with a quantity.
	AssertItemPresent = "item_present"
	// AssertItemAbsent checks an item does not exist.
	AssertItemAbsent = "item_absent"
)

// Assertion validates the final cart state.
type Assertion struct {
	Type string `yaml:"type"`

	// For item_present / item_absent.
	ItemID   string `yaml:"item_id,omitempty"`
	Quantity *int   `yaml:"quantity,omitempty"`

	// For final_state. Unset fields are not checked.
	ItemCount *int     `yaml:"item_count,omitempty"`
	Subtotal  *float64 `yaml:"subtotal,omitempty"`
	Tax       *float64 `yaml:"tax,omitempty"`
	Total     *float64 `yaml:"total,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// validate checks structural requirements before execution.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario must have a name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario must have at least one step")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case "add":
			// An empty item_id is allowed here: a scenario may exercise
			// the empty-id rejection path with expect_ok: false.
		case "update", "remove":
			if step.ItemID == "" {
				return fmt.Errorf("step %d: %s requires item_id", i+1, step.Op)
			}
		case "clear":
		case "merge":
		default:
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertFinalState:
		case AssertItemPresent, AssertItemAbsent:
			if a.ItemID == "" {
				return fmt.Errorf("assertion %d: %s requires item_id", i+1, a.Type)
			}
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i+1, a.Type)
		}
	}

	return nil
}

// taxRate returns the scenario's rate, defaulting to 8%.
func (s *Scenario) taxRate() float64 {
	if s.TaxRate != nil {
		return *s.TaxRate
	}
	return 0.08
}

// tenant returns the scenario's tenant id, defaulting for determinism.
func (s *Scenario) tenant() string {
	if s.Tenant != "" {
		return s.Tenant
	}
	return "scenario-tenant"
}
