package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: checkout_flow
description: Adds two items and checks totals
tenant: acme
tax_rate: 0.08
steps:
  - op: add
    item_id: sku-1
    title: Brass Lamp
    price: 50.0
    quantity: 1
    expect_ok: true
  - op: update
    item_id: sku-1
    quantity: 3
assertions:
  - type: final_state
    item_count: 3
    subtotal: 150.0
  - type: item_present
    item_id: sku-1
    quantity: 3
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "checkout_flow", s.Name)
	assert.Equal(t, "acme", s.Tenant)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, "add", s.Steps[0].Op)
	require.NotNil(t, s.Steps[0].ExpectOK)
	assert.True(t, *s.Steps[0].ExpectOK)
	require.Len(t, s.Assertions, 2)
	require.NotNil(t, s.Assertions[0].Subtotal)
	assert.Equal(t, 150.0, *s.Assertions[0].Subtotal)
}

func TestLoadScenario_FileMissing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenario(t, "steps: [unclosed")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing name",
			"steps:\n  - op: clear\n",
			"must have a name",
		},
		{
			"no steps",
			"name: empty\n",
			"at least one step",
		},
		{
			"unknown op",
			"name: x\nsteps:\n  - op: teleport\n",
			"unknown op",
		},
		{
			"update without item_id",
			"name: x\nsteps:\n  - op: update\n    quantity: 2\n",
			"requires item_id",
		},
		{
			"unknown assertion",
			"name: x\nsteps:\n  - op: clear\nassertions:\n  - type: magic\n",
			"unknown type",
		},
		{
			"item_present without item_id",
			"name: x\nsteps:\n  - op: clear\nassertions:\n  - type: item_present\n",
			"requires item_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenario_Defaults(t *testing.T) {
	s := &Scenario{Name: "d", Steps: []Step{{Op: "clear"}}}
	assert.Equal(t, "scenario-tenant", s.tenant())
	assert.Equal(t, 0.08, s.taxRate())
}

func TestLoadScenario_FromTestdata(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "add_update_remove_flow.yaml"))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
