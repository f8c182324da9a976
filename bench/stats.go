package bench

import (
	"math"
	"sort"
)

// percentile computes the nearest-rank percentile of data: sort
// ascending, index floor(p/100 x n), clamped to the last element.
// No interpolation, so exact values are reproducible across runs.
func percentile(data []float64, p int) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	idx := (p * len(sorted)) / 100
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}

	return sorted[idx]
}

func mean(data []float64) float64 {
	var sum float64
	for _, v := range data {
		sum += v
	}

	return sum / float64(len(data))
}

func median(data []float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdev computes the sample standard deviation, returning 0 for fewer
// than two samples.
func stdev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}

	m := mean(data)

	var sum float64
	for _, v := range data {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(data)-1))
}

func minMax(data []float64) (float64, float64) {
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}
