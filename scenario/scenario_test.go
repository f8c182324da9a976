package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write suite: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	path := writeSuite(t, `
rpc_url: http://localhost:8545
contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
abi: contract.abi.json
output_dir: out
charts: true
scenarios:
  - name: simple-read
    method: getValue
    read: true
    iterations: 50
    warmup: 2
  - method: setValue
    args: [42, "0x5FbDB2315678afecb367f032d93F642f64180aa3"]
`)

	suite, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(suite.Scenarios) != 2 {
		t.Fatalf("got %d scenarios, want 2", len(suite.Scenarios))
	}

	first := suite.Scenarios[0]
	if first.Name != "simple-read" || !first.Read {
		t.Errorf("first scenario = %+v, want simple-read/read", first)
	}
	if first.Iterations != 50 || first.WarmupCount() != 2 {
		t.Errorf("iterations/warmup = %d/%d, want 50/2",
			first.Iterations, first.WarmupCount())
	}

	second := suite.Scenarios[1]
	if second.Name != "setValue" {
		t.Errorf("name should default to method, got %q", second.Name)
	}
	if second.Iterations != DefaultIterations {
		t.Errorf("iterations = %d, want default %d",
			second.Iterations, DefaultIterations)
	}
	if second.WarmupCount() != DefaultWarmup {
		t.Errorf("warmup = %d, want default %d",
			second.WarmupCount(), DefaultWarmup)
	}
	if len(second.Args) != 2 {
		t.Errorf("got %d args, want 2", len(second.Args))
	}
}

func TestLoadExplicitZeroWarmup(t *testing.T) {
	path := writeSuite(t, `
rpc_url: http://localhost:8545
contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
abi: contract.abi.json
scenarios:
  - method: getValue
    read: true
    warmup: 0
`)

	suite, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := suite.Scenarios[0].WarmupCount(); got != 0 {
		t.Errorf("explicit warmup 0 must stay 0, got %d", got)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing rpc_url",
			`contract: "0x1"
abi: a.json
scenarios: [{method: m}]`,
			"rpc_url",
		},
		{
			"missing contract",
			`rpc_url: http://localhost:8545
abi: a.json
scenarios: [{method: m}]`,
			"contract",
		},
		{
			"missing abi",
			`rpc_url: http://localhost:8545
contract: "0x1"
scenarios: [{method: m}]`,
			"abi",
		},
		{
			"no scenarios",
			`rpc_url: http://localhost:8545
contract: "0x1"
abi: a.json`,
			"at least one scenario",
		},
		{
			"missing method",
			`rpc_url: http://localhost:8545
contract: "0x1"
abi: a.json
scenarios: [{iterations: 5}]`,
			"method",
		},
		{
			"negative iterations",
			`rpc_url: http://localhost:8545
contract: "0x1"
abi: a.json
scenarios: [{method: m, iterations: -5}]`,
			"iterations",
		},
		{
			"negative warmup",
			`rpc_url: http://localhost:8545
contract: "0x1"
abi: a.json
scenarios: [{method: m, warmup: -1}]`,
			"warmup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSuite(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOutputDirDefault(t *testing.T) {
	path := writeSuite(t, `
rpc_url: http://localhost:8545
contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
abi: contract.abi.json
scenarios:
  - method: getValue
    read: true
`)

	suite, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if suite.OutputDir != "benchmark_results" {
		t.Errorf("output_dir = %q, want benchmark_results", suite.OutputDir)
	}
}
