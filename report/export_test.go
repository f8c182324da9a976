package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/weiihann/chainbench/bench"
)

func sampleResults() []bench.Result {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	return []bench.Result{
		{
			Timestamp:       ts,
			Method:          "setValue",
			ExecutionTimeMs: 52.5,
			GasUsed:         21000,
			Success:         true,
			TxHash:          "0xabc",
			BlockNumber:     100,
		},
		{
			Timestamp:       ts.Add(time.Second),
			Method:          "setValue",
			ExecutionTimeMs: 130.25,
			Success:         false,
			Err:             "execution reverted",
		},
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	csvPath, jsonPath, err := Export(dir, "run1", sampleResults())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if csvPath != filepath.Join(dir, "run1.csv") {
		t.Errorf("csv path = %q, want run1.csv in %s", csvPath, dir)
	}
	if jsonPath != filepath.Join(dir, "run1.json") {
		t.Errorf("json path = %q, want run1.json in %s", jsonPath, dir)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("open CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d CSV rows, want header + 2", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][2] != "execution_time_ms" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][5] != "0xabc" || rows[1][6] != "100" {
		t.Errorf("write call row missing tx metadata: %v", rows[1])
	}
	if rows[2][6] != "" {
		t.Errorf("failed call must have empty block number, got %q", rows[2][6])
	}
	if rows[2][8] != "execution reverted" {
		t.Errorf("failed call row missing error: %v", rows[2])
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read JSON: %v", err)
	}

	var parsed []bench.Result
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("exported JSON invalid: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d JSON results, want 2", len(parsed))
	}
	if parsed[0].GasUsed != 21000 {
		t.Errorf("gas_used = %d, want 21000", parsed[0].GasUsed)
	}
}

func TestExportDerivedFilename(t *testing.T) {
	dir := t.TempDir()

	csvPath, jsonPath, err := Export(dir, "", sampleResults())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	base := filepath.Base(csvPath)
	if len(base) != len("benchmark_results_20060102_150405.csv") {
		t.Errorf("unexpected derived filename %q", base)
	}
	if filepath.Ext(jsonPath) != ".json" {
		t.Errorf("json path = %q, want .json extension", jsonPath)
	}
}

func TestExportEmptyLog(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Export(dir, "run1", nil)
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty log must write no files, found %d", len(entries))
	}
}
