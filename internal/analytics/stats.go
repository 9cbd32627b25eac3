package analytics

import (
	"math"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator), 0 when
// fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// AnnualizedVol converts a return series to annualized volatility in
// percent: stddev x sqrt(periodsPerYear) x 100.
func AnnualizedVol(returns []float64, periodsPerYear float64) float64 {
	return StdDev(returns) * math.Sqrt(periodsPerYear) * 100
}

// PctChange returns fractional period-over-period changes. Pairs whose
// first price is zero are skipped, so the result can be shorter than
// len(prices)-1.
func PctChange(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		out = append(out, (prices[i]-prices[i-1])/prices[i-1])
	}
	return out
}

// RollingVol computes annualized volatility over a trailing window at each
// position where a full window is available. Result length is
// len(returns)-window+1; nil when the series is shorter than the window.
func RollingVol(returns []float64, window int, periodsPerYear float64) []float64 {
	if window < 2 || len(returns) < window {
		return nil
	}
	out := make([]float64, 0, len(returns)-window+1)
	for i := window; i <= len(returns); i++ {
		out = append(out, AnnualizedVol(returns[i-window:i], periodsPerYear))
	}
	return out
}
