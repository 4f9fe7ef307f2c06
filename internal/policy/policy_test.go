package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.cue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing policy file: %v", err)
	}
	return path
}

func TestLoad_ValidPolicy(t *testing.T) {
	path := writePolicy(t, `
defaultRate: 0.08
overrides: {
	"vintage-attic": 0.0625
}
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := p.RateFor("acme"); got != 0.08 {
		t.Errorf("RateFor(acme) = %v, want default 0.08", got)
	}
	if got := p.RateFor("vintage-attic"); got != 0.0625 {
		t.Errorf("RateFor(vintage-attic) = %v, want override 0.0625", got)
	}
}

func TestLoad_DefaultOnly(t *testing.T) {
	path := writePolicy(t, `defaultRate: 0.1`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := p.RateFor("anyone"); got != 0.1 {
		t.Errorf("RateFor = %v, want 0.1", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	assertLoadErrorCode(t, err, ErrCodeNotFound)
}

func TestLoad_MalformedCUE(t *testing.T) {
	path := writePolicy(t, `defaultRate: {{{`)
	_, err := Load(path)
	assertLoadErrorCode(t, err, ErrCodeParse)
}

func TestLoad_RejectsInvalidRates(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing defaultRate", `overrides: {"a": 0.05}`},
		{"negative rate", `defaultRate: -0.01`},
		{"rate of one", `defaultRate: 1.0`},
		{"bad override", "defaultRate: 0.08\noverrides: {\"a\": 2.5}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePolicy(t, tt.content))
			assertLoadErrorCode(t, err, ErrCodeInvalid)
		})
	}
}

func TestDefault(t *testing.T) {
	p := Default()
	if got := p.RateFor("anyone"); got != DefaultRate {
		t.Errorf("RateFor = %v, want %v", got, DefaultRate)
	}
}

func TestRateFor_NormalizesTenantID(t *testing.T) {
	path := writePolicy(t, "defaultRate: 0.08\noverrides: {\"vintage-attic\": 0.05}")
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := p.RateFor("  vintage-attic  "); got != 0.05 {
		t.Errorf("RateFor with padding = %v, want normalized lookup 0.05", got)
	}
}

func assertLoadErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error %T is not a LoadError: %v", err, err)
	}
	if le.Code != code {
		t.Errorf("error code = %s, want %s (message: %s)", le.Code, code, le.Message)
	}
}
