package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/weiihann/chainbench/bench"
)

// ErrNoResults signals that the result log is empty and nothing was
// written. Callers should surface it as a notice, not a failure.
var ErrNoResults = errors.New("no results to export")

// csvHeader fixes the column order of exported rows.
var csvHeader = []string{
	"timestamp",
	"method",
	"execution_time_ms",
	"gas_used",
	"success",
	"tx_hash",
	"block_number",
	"value",
	"error",
}

// Export writes the full result log as a CSV file and a JSON file into
// dir and returns both paths. An empty prefix derives the filenames
// from the current time. With an empty log no files are written and
// ErrNoResults is returned.
func Export(dir, prefix string, results []bench.Result) (string, string, error) {
	if len(results) == 0 {
		return "", "", ErrNoResults
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir %s: %w", dir, err)
	}

	if prefix == "" {
		prefix = "benchmark_results_" + time.Now().Format("20060102_150405")
	}

	csvPath := filepath.Join(dir, prefix+".csv")
	if err := writeCSV(csvPath, results); err != nil {
		return "", "", err
	}

	jsonPath := filepath.Join(dir, prefix+".json")
	if err := writeJSON(jsonPath, results); err != nil {
		return "", "", err
	}

	return csvPath, jsonPath, nil
}

func writeCSV(path string, results []bench.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Timestamp.Format(time.RFC3339Nano),
			r.Method,
			strconv.FormatFloat(r.ExecutionTimeMs, 'f', -1, 64),
			strconv.FormatUint(r.GasUsed, 10),
			strconv.FormatBool(r.Success),
			r.TxHash,
			formatBlockNumber(r),
			r.Value,
			r.Err,
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}

func writeJSON(path string, results []bench.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}

func formatBlockNumber(r bench.Result) string {
	// Only mined write calls carry a block number.
	if r.TxHash == "" {
		return ""
	}

	return strconv.FormatUint(r.BlockNumber, 10)
}
