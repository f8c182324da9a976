// Package chart renders benchmark result charts as PNG files: an
// execution-time histogram, an execution-time trend over call order,
// and a gas-usage histogram.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/weiihann/chainbench/bench"
)

// ErrNoResults signals that there were no successful results to plot
// and no files were written.
var ErrNoResults = errors.New("no successful results to visualize")

const histogramBins = 30

// Render writes the three benchmark charts into dir, creating it if
// absent. Only successful calls are plotted.
func Render(dir string, results []bench.Result) error {
	var times, gas []float64

	for _, r := range results {
		if !r.Success {
			continue
		}

		times = append(times, r.ExecutionTimeMs)
		gas = append(gas, float64(r.GasUsed))
	}

	if len(times) == 0 {
		return ErrNoResults
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir %s: %w", dir, err)
	}

	charts := []struct {
		filename string
		render   func(f *os.File) error
	}{
		{"execution_time_distribution.png", func(f *os.File) error {
			return renderHistogram(f, "Execution Time Distribution (ms)", times)
		}},
		{"execution_time_trend.png", func(f *os.File) error {
			return renderTrend(f, times)
		}},
		{"gas_usage_distribution.png", func(f *os.File) error {
			return renderHistogram(f, "Gas Usage Distribution", gas)
		}},
	}

	for _, c := range charts {
		path := filepath.Join(dir, c.filename)

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}

		if err := c.render(f); err != nil {
			f.Close()

			return fmt.Errorf("render %s: %w", path, err)
		}

		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}

	return nil
}

func renderHistogram(f *os.File, title string, values []float64) error {
	bars := bucketize(values, histogramBins)

	// A single bucket (constant values, e.g. gas on read calls) gives
	// go-chart a degenerate y-range; an explicit range keeps it
	// renderable.
	maxCount := 1.0
	for _, b := range bars {
		if b.Value > maxCount {
			maxCount = b.Value
		}
	}

	graph := gochart.BarChart{
		Title:      title,
		Width:      1024,
		Height:     512,
		BarWidth:   20,
		BarSpacing: 5,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars: bars,
	}

	return graph.Render(gochart.PNG, f)
}

func renderTrend(f *os.File, times []float64) error {
	xs := make([]float64, len(times))
	for i := range times {
		xs[i] = float64(i + 1)
	}

	graph := gochart.Chart{
		Title:  "Execution Time Over Test Duration",
		Width:  1200,
		Height: 512,
		XAxis: gochart.XAxis{
			Name: "Execution Number",
		},
		YAxis: gochart.YAxis{
			Name: "Execution Time (ms)",
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: times,
			},
		},
	}

	// go-chart refuses zero-delta axis ranges, which a single call or
	// identical timings would produce; pin explicit ranges instead.
	if len(times) == 1 {
		graph.XAxis.Range = &gochart.ContinuousRange{Min: 0, Max: 2}
	}

	lo, hi := times[0], times[0]
	for _, v := range times[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		graph.YAxis.Range = &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	return graph.Render(gochart.PNG, f)
}

// bucketize groups values into at most bins equal-width buckets. All
// values landing in one bucket (e.g. constant gas usage) yields a
// single bar.
func bucketize(values []float64, bins int) []gochart.Value {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if lo == hi {
		return []gochart.Value{{
			Value: float64(len(values)),
			Label: fmt.Sprintf("%.1f", lo),
		}}
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}

		counts[idx]++
	}

	bars := make([]gochart.Value, 0, bins)

	for i, count := range counts {
		bars = append(bars, gochart.Value{
			Value: float64(count),
			Label: fmt.Sprintf("%.0f", lo+width*float64(i)),
		})
	}

	return bars
}
