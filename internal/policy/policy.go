// Package policy loads and validates the tax policy applied when cart
// totals are computed.
//
// Policy files are CUE: the embedded schema rejects malformed files
// (missing defaultRate, rates outside [0,1)) at load time with positioned
// errors, instead of letting a bad rate silently skew every total.
package policy

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	_ "embed"
	"fmt"
	"os"

	"github.com/tillroom/consigncart/internal/cart"
)

//go:embed schema.cue
var schemaCUE string

// DefaultRate is the built-in tax rate used when no policy file is given.
const DefaultRate = 0.08

// Error codes for policy loading failures.
const (
	ErrCodeNotFound = "POLICY_NOT_FOUND"
	ErrCodeParse    = "POLICY_PARSE_FAILED"
	ErrCodeInvalid  = "POLICY_INVALID"
)

// LoadError represents a failure to load or validate a policy file.
type LoadError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Policy resolves the tax rate for a tenant.
type Policy struct {
	defaultRate float64
	overrides   map[string]float64
}

// Default returns the built-in policy: DefaultRate for every tenant.
func Default() *Policy {
	return &Policy{defaultRate: DefaultRate}
}

// Load reads and validates a CUE policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("policy file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading policy file: %v", err)}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The embedded schema is part of the binary; failing to compile it
		// is a build defect, not user input.
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("compiling embedded schema: %v", err)}
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing policy: %v", err)}
	}

	unified := schema.LookupPath(cue.ParsePath("#Policy")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("invalid policy: %v", err)}
	}

	var decoded struct {
		DefaultRate float64            `json:"defaultRate"`
		Overrides   map[string]float64 `json:"overrides"`
	}
	if err := unified.Decode(&decoded); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("decoding policy: %v", err)}
	}

	p := &Policy{
		defaultRate: decoded.DefaultRate,
		overrides:   make(map[string]float64, len(decoded.Overrides)),
	}
	for tenant, rate := range decoded.Overrides {
		p.overrides[cart.NormalizeID(tenant)] = rate
	}
	return p, nil
}

// RateFor returns the tax rate for a tenant: its override if one exists,
// the default rate otherwise.
func (p *Policy) RateFor(tenantID string) float64 {
	if rate, ok := p.overrides[cart.NormalizeID(tenantID)]; ok {
		return rate
	}
	return p.defaultRate
}

// FixedRate returns a policy applying one rate to every tenant.
// Used by tests and the scenario harness.
func FixedRate(rate float64) *Policy {
	return &Policy{defaultRate: rate}
}
