package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/weiihann/chainbench/bench"
)

func sampleSummary() *bench.Summary {
	return &bench.Summary{
		Method:      "setValue",
		Total:       100,
		Successful:  98,
		Failed:      2,
		SuccessRate: 0.98,
		Time: &bench.TimeStats{
			MinMs:    10,
			MaxMs:    90,
			MeanMs:   50,
			MedianMs: 48,
			StdevMs:  12.5,
			P95Ms:    80,
			P99Ms:    88,
		},
		Gas: &bench.GasStats{
			Min:    21000,
			Max:    23000,
			Mean:   22000,
			Median: 22000,
		},
		CallsPerSecond: 20,
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"setValue",
		"Total Runs:      100",
		"Success Rate:    98.00%",
		"95th percentile: 80.00",
		"99th percentile: 88.00",
		"Calls/sec:       20.00",
		"21000",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteAllFailed(t *testing.T) {
	summary := &bench.Summary{
		Method:    "setValue",
		Total:     5,
		Failed:    5,
		AllFailed: true,
	}

	var buf bytes.Buffer
	if err := Write(&buf, summary); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "All executions failed") {
		t.Error("expected failure notice for all-failed summary")
	}
	if strings.Contains(output, "percentile") {
		t.Error("all-failed summary must not render distribution statistics")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSummary()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var parsed bench.Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if parsed.Method != "setValue" {
		t.Errorf("method = %q, want setValue", parsed.Method)
	}
	if parsed.Time == nil || parsed.Time.P95Ms != 80 {
		t.Error("execution time stats not round-tripped")
	}
}
