// Package bench runs timed benchmark loops against a deployed contract
// and aggregates the per-call log into summary statistics.
package bench

import "time"

// Result records a single attempted contract invocation. It is
// immutable once appended to the runner's log.
type Result struct {
	Timestamp       time.Time `json:"timestamp"`
	Method          string    `json:"method"`
	ExecutionTimeMs float64   `json:"execution_time_ms"`
	GasUsed         uint64    `json:"gas_used"`
	Success         bool      `json:"success"`
	TxHash          string    `json:"tx_hash,omitempty"`
	BlockNumber     uint64    `json:"block_number,omitempty"`
	Value           string    `json:"value,omitempty"`
	Err             string    `json:"error,omitempty"`
}

// TimeStats describes the execution-time distribution of the
// successful calls in a run, in milliseconds.
type TimeStats struct {
	MinMs    float64 `json:"min_ms"`
	MaxMs    float64 `json:"max_ms"`
	MeanMs   float64 `json:"mean_ms"`
	MedianMs float64 `json:"median_ms"`
	StdevMs  float64 `json:"stdev_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// GasStats describes the gas-usage distribution of the successful
// calls in a run.
type GasStats struct {
	Min    uint64  `json:"min"`
	Max    uint64  `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summary holds the aggregated outcome of one benchmark run. When
// AllFailed is set, no call succeeded and the distribution and
// throughput fields are nil: they are deliberately not computed over
// an empty set.
type Summary struct {
	Method     string  `json:"method"`
	Total      int     `json:"total_executions"`
	Successful int     `json:"successful_executions"`
	Failed     int     `json:"failed_executions"`

	// SuccessRate is Successful/Total, in [0,1].
	SuccessRate float64 `json:"success_rate"`

	AllFailed bool `json:"all_failed,omitempty"`

	Time *TimeStats `json:"execution_time,omitempty"`
	Gas  *GasStats  `json:"gas_usage,omitempty"`

	// CallsPerSecond is 1000 / mean execution time in ms.
	CallsPerSecond float64 `json:"calls_per_second,omitempty"`
}
