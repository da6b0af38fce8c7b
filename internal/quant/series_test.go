package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_DropNA(t *testing.T) {
	s := dailySeries([]float64{math.NaN(), 1, math.NaN(), 2, 3, math.NaN()})

	cleaned := s.DropNA()

	assert.Equal(t, []float64{1, 2, 3}, cleaned.Values())
	assert.Len(t, s, 6, "input series is untouched")
}

func TestSeries_Diff(t *testing.T) {
	s := dailySeries([]float64{10, 11, 13, 12})
	assert.Equal(t, []float64{0, 1, 2, -1}, s.Diff())

	assert.Empty(t, Series{}.Diff())
}

func TestNewSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{start, start.AddDate(0, 0, 1)}

	s := NewSeries(times, []float64{1.5, 2.5})

	require.Len(t, s, 2)
	assert.Equal(t, start, s[0].Time)
	assert.Equal(t, 2.5, s[1].Value)
}

func TestAlignSignal(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spread := Series{
		{Time: start, Value: 1},
		{Time: start.AddDate(0, 0, 2), Value: 2},
		{Time: start.AddDate(0, 0, 4), Value: 3},
	}
	signal := PositionSignal{
		{Time: start.AddDate(0, 0, 1), Position: Long},
		{Time: start.AddDate(0, 0, 2), Position: Short},
		{Time: start.AddDate(0, 0, 4), Position: Flat},
		{Time: start.AddDate(0, 0, 5), Position: Long},
	}

	gotSpread, gotSignal := AlignSignal(spread, signal)

	require.Len(t, gotSpread, 2)
	require.Len(t, gotSignal, 2)
	assert.Equal(t, []float64{2, 3}, gotSpread.Values())
	assert.Equal(t, Short, gotSignal[0].Position)
	assert.Equal(t, Flat, gotSignal[1].Position)
}
