package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weiihann/chainbench/client"
)

// Spec holds parameters for a single benchmark run.
type Spec struct {
	Method     string
	Args       []any
	Iterations int
	Warmup     int

	// Read marks the method as a side-effect-free query: no signing,
	// no confirmation wait, no gas.
	Read bool
}

func (s Spec) validate() error {
	if s.Method == "" {
		return fmt.Errorf("method name must not be empty")
	}

	if s.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", s.Iterations)
	}

	if s.Warmup < 0 {
		return fmt.Errorf("warmup must be >= 0, got %d", s.Warmup)
	}

	return nil
}

// Runner drives sequential benchmark runs against one contract and
// owns the append-only log of recorded results.
type Runner struct {
	contract client.Contract
	results  []Result
	logger   *slog.Logger
}

// NewRunner creates a Runner that invokes methods through the given
// contract.
func NewRunner(contract client.Contract, logger *slog.Logger) *Runner {
	return &Runner{
		contract: contract,
		logger:   logger,
	}
}

// Execute performs one timed invocation and converts any failure,
// including a missing signing key on the write path, into a failed
// Result. It never returns an error: a benchmark run must not be
// aborted by a single bad call.
func (r *Runner) Execute(ctx context.Context, method string, args []any, read bool) Result {
	start := time.Now()

	res := Result{
		Timestamp: start,
		Method:    method,
	}

	if read {
		value, err := r.contract.Read(ctx, method, args)
		res.ExecutionTimeMs = elapsedMs(start)

		if err != nil {
			res.Err = err.Error()

			return res
		}

		res.Success = true
		res.Value = fmt.Sprintf("%v", value)

		return res
	}

	receipt, err := r.contract.Write(ctx, method, args)
	res.ExecutionTimeMs = elapsedMs(start)

	if err != nil {
		res.Err = err.Error()

		return res
	}

	res.Success = true
	res.GasUsed = receipt.GasUsed
	res.TxHash = receipt.TxHash
	res.BlockNumber = receipt.BlockNumber

	return res
}

// Run performs spec.Warmup discarded calls followed by spec.Iterations
// recorded calls, appending each recorded Result to the log in call
// order, and returns the aggregated Summary. Only an invalid Spec is
// an error; failed calls are part of the summary.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Summary, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	r.logger.Info("starting benchmark",
		slog.String("method", spec.Method),
		slog.Int("iterations", spec.Iterations),
		slog.Int("warmup", spec.Warmup),
		slog.Bool("read", spec.Read),
	)

	for i := 0; i < spec.Warmup; i++ {
		r.Execute(ctx, spec.Method, spec.Args, spec.Read)
		r.logger.Info("warmup complete",
			slog.Int("run", i+1),
			slog.Int("total", spec.Warmup),
		)
	}

	run := make([]Result, 0, spec.Iterations)

	for i := 0; i < spec.Iterations; i++ {
		res := r.Execute(ctx, spec.Method, spec.Args, spec.Read)
		run = append(run, res)
		r.results = append(r.results, res)

		if (i+1)%10 == 0 {
			r.logger.Info("progress",
				slog.Int("completed", i+1),
				slog.Int("total", spec.Iterations),
			)
		}
	}

	summary := summarize(spec.Method, run)

	if summary.AllFailed {
		r.logger.Warn("no successful executions",
			slog.String("method", spec.Method),
		)
	} else {
		r.logger.Info("benchmark complete",
			slog.String("method", spec.Method),
			slog.Int("successful", summary.Successful),
			slog.Int("failed", summary.Failed),
		)
	}

	return summary, nil
}

// Results returns a snapshot of the full recorded log, warmup calls
// excluded. Mutating the returned slice does not affect the runner.
func (r *Runner) Results() []Result {
	snapshot := make([]Result, len(r.results))
	copy(snapshot, r.results)

	return snapshot
}

// summarize aggregates one run's results. Statistics are computed over
// successful calls only; with zero successes the AllFailed variant is
// returned and no distribution math runs.
func summarize(method string, run []Result) *Summary {
	summary := &Summary{
		Method: method,
		Total:  len(run),
	}

	var times []float64
	var gas []float64

	var gasMin, gasMax uint64

	for _, res := range run {
		if !res.Success {
			continue
		}

		if summary.Successful == 0 || res.GasUsed < gasMin {
			gasMin = res.GasUsed
		}
		if res.GasUsed > gasMax {
			gasMax = res.GasUsed
		}

		summary.Successful++
		times = append(times, res.ExecutionTimeMs)
		gas = append(gas, float64(res.GasUsed))
	}

	summary.Failed = summary.Total - summary.Successful
	summary.SuccessRate = float64(summary.Successful) / float64(summary.Total)

	if summary.Successful == 0 {
		summary.AllFailed = true

		return summary
	}

	timeMin, timeMax := minMax(times)
	meanMs := mean(times)

	summary.Time = &TimeStats{
		MinMs:    timeMin,
		MaxMs:    timeMax,
		MeanMs:   meanMs,
		MedianMs: median(times),
		StdevMs:  stdev(times),
		P95Ms:    percentile(times, 95),
		P99Ms:    percentile(times, 99),
	}

	summary.Gas = &GasStats{
		Min:    gasMin,
		Max:    gasMax,
		Mean:   mean(gas),
		Median: median(gas),
	}

	summary.CallsPerSecond = 1000 / meanMs

	return summary
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
