// Package quant holds the numerical core: AR(1) estimation, z-score
// signal generation, backtest simulation, and summary metrics. Every
// function is pure and safe to call concurrently.
package quant

import (
	"math"
	"time"
)

// Point is a single observation of a spread series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is a time-ordered sequence of observations with strictly
// increasing timestamps. math.NaN marks a missing value.
type Series []Point

// NewSeries builds a series from parallel timestamp and value slices.
func NewSeries(times []time.Time, values []float64) Series {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	s := make(Series, n)
	for i := 0; i < n; i++ {
		s[i] = Point{Time: times[i], Value: values[i]}
	}
	return s
}

// DropNA returns a copy of the series with missing values removed.
func (s Series) DropNA() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !math.IsNaN(p.Value) {
			out = append(out, p)
		}
	}
	return out
}

// Values returns the value column of the series.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.Value
	}
	return vals
}

// Diff returns first differences, with the first element set to 0.
func (s Series) Diff() []float64 {
	d := make([]float64, len(s))
	for i := 1; i < len(s); i++ {
		d[i] = s[i].Value - s[i-1].Value
	}
	return d
}

// AlignSignal inner-joins a spread series with a position signal on their
// timestamps. Timestamps present in only one input are dropped.
func AlignSignal(spread Series, signal PositionSignal) (Series, PositionSignal) {
	outSpread := make(Series, 0, len(spread))
	outSignal := make(PositionSignal, 0, len(signal))

	i, j := 0, 0
	for i < len(spread) && j < len(signal) {
		switch {
		case spread[i].Time.Before(signal[j].Time):
			i++
		case signal[j].Time.Before(spread[i].Time):
			j++
		default:
			outSpread = append(outSpread, spread[i])
			outSignal = append(outSignal, signal[j])
			i++
			j++
		}
	}
	return outSpread, outSignal
}
