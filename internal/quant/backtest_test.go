package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailySignal(positions []Position) PositionSignal {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(PositionSignal, len(positions))
	for i, p := range positions {
		s[i] = SignalPoint{Time: start.AddDate(0, 0, i), Position: p}
	}
	return s
}

func TestRunBacktest_PositionLagsSignal(t *testing.T) {
	spread := dailySeries([]float64{10, 11, 13, 12, 12})
	signal := dailySignal([]Position{1, 1, -1, 0, 1})

	records := RunBacktest(spread, signal, 0)
	require.Len(t, records, 5)

	assert.Equal(t, Flat, records[0].Position)
	for i := 1; i < len(records); i++ {
		assert.Equal(t, records[i-1].Signal, records[i].Position, "position must equal previous signal at index %d", i)
	}
}

func TestRunBacktest_PnLAndEquity(t *testing.T) {
	spread := dailySeries([]float64{10, 11, 13, 12})
	signal := dailySignal([]Position{1, 1, -1, -1})

	records := RunBacktest(spread, signal, 0)
	require.Len(t, records, 4)

	// d_spread = [0, 1, 2, -1], position = [0, 1, 1, -1]
	assert.Equal(t, []float64{0, 1, 2, 1}, func() []float64 {
		out := make([]float64, len(records))
		for i, r := range records {
			out[i] = r.GrossPnL
		}
		return out
	}())

	assert.InDelta(t, records[0].NetPnL, records[0].Equity, 1e-12)
	for i := 1; i < len(records); i++ {
		assert.InDelta(t, records[i-1].Equity+records[i].NetPnL, records[i].Equity, 1e-12)
	}
}

func TestRunBacktest_TurnoverCosts(t *testing.T) {
	// Three turnover events at indices 1, 3, and 5; the implicit prior
	// signal is 0, so the unchanged leading zero is free.
	spread := dailySeries([]float64{10, 10, 10, 10, 10, 10})
	signal := dailySignal([]Position{0, 1, 1, -1, -1, 0})

	records := RunBacktest(spread, signal, 0.02)
	require.Len(t, records, 6)

	var totalCost float64
	costIdx := []int{}
	for i, r := range records {
		totalCost += r.Costs
		if r.Costs != 0 {
			costIdx = append(costIdx, i)
		}
	}

	assert.Equal(t, []int{1, 3, 5}, costIdx)
	assert.InDelta(t, 0.06, totalCost, 1e-12)
}

func TestRunBacktest_InitialNonzeroSignalCosts(t *testing.T) {
	spread := dailySeries([]float64{10, 11})
	signal := dailySignal([]Position{1, 1})

	records := RunBacktest(spread, signal, 0.02)
	require.Len(t, records, 2)

	assert.InDelta(t, 0.02, records[0].Costs, 1e-12)
	assert.InDelta(t, 0.0, records[1].Costs, 1e-12)
}

func TestRunBacktest_InnerJoinAlignment(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spread := Series{
		{Time: start, Value: 10},
		{Time: start.AddDate(0, 0, 1), Value: 11},
		{Time: start.AddDate(0, 0, 3), Value: 13},
	}
	signal := PositionSignal{
		{Time: start.AddDate(0, 0, 1), Position: Long},
		{Time: start.AddDate(0, 0, 2), Position: Long},
		{Time: start.AddDate(0, 0, 3), Position: Flat},
	}

	records := RunBacktest(spread, signal, 0)
	require.Len(t, records, 2)
	assert.Equal(t, start.AddDate(0, 0, 1), records[0].Time)
	assert.Equal(t, start.AddDate(0, 0, 3), records[1].Time)

	// First aligned element is treated as the start of the trajectory.
	assert.InDelta(t, 0.0, records[0].GrossPnL, 1e-12)
	assert.Equal(t, Long, records[1].Position)
	assert.InDelta(t, 2.0, records[1].GrossPnL, 1e-12)
}

func TestRunBacktest_EmptyInputs(t *testing.T) {
	records := RunBacktest(Series{}, PositionSignal{}, 0.02)
	assert.Empty(t, records)

	summary := Summarize(records, "empty")
	assert.Zero(t, summary.Sharpe)
	assert.Zero(t, summary.MaxDrawdown)
	assert.Zero(t, summary.TotalPnL)
	assert.Zero(t, summary.Trades)
	assert.True(t, math.IsNaN(summary.WinRatio))
}
