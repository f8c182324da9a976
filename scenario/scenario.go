// Package scenario defines benchmark suites: which contract methods to
// invoke, with what arguments, and how many warmup and measured
// iterations each gets. Suites are loaded from YAML files.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied to scenarios that omit the fields.
const (
	DefaultIterations = 100
	DefaultWarmup     = 5
)

// Scenario describes one benchmark: a single method invoked repeatedly
// with fixed arguments.
type Scenario struct {
	Name       string `yaml:"name"`
	Method     string `yaml:"method"`
	Args       []any  `yaml:"args"`
	Iterations int    `yaml:"iterations"`
	Read       bool   `yaml:"read"`

	// Warmup distinguishes "omitted" (nil, gets DefaultWarmup) from an
	// explicit 0.
	Warmup *int `yaml:"warmup"`
}

// WarmupCount returns the effective warmup count for the scenario.
func (sc *Scenario) WarmupCount() int {
	if sc.Warmup == nil {
		return DefaultWarmup
	}

	return *sc.Warmup
}

// Suite is a full benchmark configuration: the target contract plus an
// ordered list of scenarios to run against it.
type Suite struct {
	RPCURL    string     `yaml:"rpc_url"`
	Contract  string     `yaml:"contract"`
	ABIPath   string     `yaml:"abi"`
	OutputDir string     `yaml:"output_dir"`
	Charts    bool       `yaml:"charts"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and validates a suite file, applying per-scenario
// defaults.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite %s: %w", path, err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}

	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}

	return &suite, nil
}

// Validate checks the suite and fills in defaults for omitted
// iteration counts.
func (s *Suite) Validate() error {
	if s.RPCURL == "" {
		return fmt.Errorf("rpc_url must be set")
	}

	if s.Contract == "" {
		return fmt.Errorf("contract must be set")
	}

	if s.ABIPath == "" {
		return fmt.Errorf("abi must be set")
	}

	if len(s.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario must be defined")
	}

	if s.OutputDir == "" {
		s.OutputDir = "benchmark_results"
	}

	for i := range s.Scenarios {
		sc := &s.Scenarios[i]

		if sc.Method == "" {
			return fmt.Errorf("scenario %d: method must be set", i)
		}

		if sc.Name == "" {
			sc.Name = sc.Method
		}

		if sc.Iterations == 0 {
			sc.Iterations = DefaultIterations
		}

		if sc.Iterations < 1 {
			return fmt.Errorf("scenario %s: iterations must be >= 1, got %d",
				sc.Name, sc.Iterations)
		}

		if sc.Warmup != nil && *sc.Warmup < 0 {
			return fmt.Errorf("scenario %s: warmup must be >= 0, got %d",
				sc.Name, *sc.Warmup)
		}
	}

	return nil
}
