package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// Serialized as indented JSON for readable golden diffs.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Tenant       string       `json:"tenant"`
	TaxRate      float64      `json:"tax_rate"`
	Trace        []TraceEvent `json:"trace"`
}

// RunWithGolden executes a scenario and compares the trace against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected trace behavior.
// Returns an error if scenario execution itself fails; trace mismatches
// fail the test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return fmt.Errorf("running scenario %s: %w", scenario.Name, err)
	}
	if !result.Pass {
		return fmt.Errorf("scenario %s failed: %v", scenario.Name, result.Errors)
	}

	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Tenant:       scenario.tenant(),
		TaxRate:      scenario.taxRate(),
		Trace:        result.Trace,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trace snapshot: %w", err)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, scenario.Name, append(data, '\n'))
	return nil
}
