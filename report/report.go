// Package report formats benchmark summaries for the console and
// exports the raw result log to CSV and JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/weiihann/chainbench/bench"
)

// Write renders a human-readable summary block. The all-failed variant
// renders a short failure report instead of distribution statistics.
func Write(w io.Writer, s *bench.Summary) error {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "## Benchmark Results: %s\n", s.Method)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Execution Summary:")
	fmt.Fprintf(w, "  Total Runs:      %d\n", s.Total)
	fmt.Fprintf(w, "  Successful:      %d\n", s.Successful)
	fmt.Fprintf(w, "  Failed:          %d\n", s.Failed)
	fmt.Fprintf(w, "  Success Rate:    %.2f%%\n", s.SuccessRate*100)
	fmt.Fprintln(w)

	if s.AllFailed {
		fmt.Fprintln(w, "All executions failed; no statistics available.")

		return nil
	}

	fmt.Fprintln(w, "Execution Time (ms):")
	fmt.Fprintf(w, "  Mean:            %.2f\n", s.Time.MeanMs)
	fmt.Fprintf(w, "  Median:          %.2f\n", s.Time.MedianMs)
	fmt.Fprintf(w, "  Min:             %.2f\n", s.Time.MinMs)
	fmt.Fprintf(w, "  Max:             %.2f\n", s.Time.MaxMs)
	fmt.Fprintf(w, "  Std Dev:         %.2f\n", s.Time.StdevMs)
	fmt.Fprintf(w, "  95th percentile: %.2f\n", s.Time.P95Ms)
	fmt.Fprintf(w, "  99th percentile: %.2f\n", s.Time.P99Ms)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Gas Usage:")
	fmt.Fprintf(w, "  Mean:            %.0f\n", s.Gas.Mean)
	fmt.Fprintf(w, "  Median:          %.0f\n", s.Gas.Median)
	fmt.Fprintf(w, "  Min:             %d\n", s.Gas.Min)
	fmt.Fprintf(w, "  Max:             %d\n", s.Gas.Max)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Throughput:")
	fmt.Fprintf(w, "  Calls/sec:       %.2f\n", s.CallsPerSecond)

	return nil
}

// WriteJSON writes the summary as indented JSON to w.
func WriteJSON(w io.Writer, s *bench.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}
