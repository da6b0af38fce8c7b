package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordsFromPnL(pnl []float64, signals []Position) []BacktestRecord {
	records := make([]BacktestRecord, len(pnl))
	equity := 0.0
	for i, v := range pnl {
		equity += v
		sig := Flat
		if signals != nil {
			sig = signals[i]
		}
		records[i] = BacktestRecord{NetPnL: v, Equity: equity, Signal: sig}
	}
	return records
}

func TestSharpe(t *testing.T) {
	tests := []struct {
		name    string
		pnl     []float64
		periods int
		want    float64
	}{
		{name: "empty series", pnl: nil, periods: 252, want: 0},
		{name: "zero variance", pnl: []float64{1, 1, 1}, periods: 252, want: 0},
		{
			name:    "population stdev convention",
			pnl:     []float64{1, -1, 1, -1},
			periods: 252,
			want:    0, // mean is exactly zero
		},
		{
			name:    "annualized positive ratio",
			pnl:     []float64{2, 0, 2, 0},
			periods: 252,
			want:    1.0 * math.Sqrt(252), // mean 1, population stdev 1
		},
		{
			name:    "alternative annualization",
			pnl:     []float64{2, 0, 2, 0},
			periods: 52,
			want:    math.Sqrt(52),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Sharpe(tt.pnl, tt.periods), 1e-9)
		})
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{name: "empty curve", equity: nil, want: 0},
		{name: "monotone rise has no drawdown", equity: []float64{0, 1, 2, 3}, want: 0},
		{name: "single dip", equity: []float64{0, 2, 1, 3}, want: -1},
		{name: "deepest trough after later peak", equity: []float64{0, 5, 3, 6, 1}, want: -5},
		{name: "all losses measured from start", equity: []float64{0, -1, -3}, want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(tt.equity), 1e-12)
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Run("all-zero pnl yields NaN win ratio", func(t *testing.T) {
		summary := Summarize(recordsFromPnL([]float64{0, 0, 0}, nil), "flat")
		assert.True(t, math.IsNaN(summary.WinRatio), "win ratio must be NaN, not a literal 0%%")
		assert.Zero(t, summary.TotalPnL)
		assert.Zero(t, summary.Sharpe)
	})

	t.Run("win ratio counts only nonzero entries", func(t *testing.T) {
		summary := Summarize(recordsFromPnL([]float64{1, 0, -1, 2, 0}, nil), "mixed")
		assert.InDelta(t, 2.0/3.0, summary.WinRatio, 1e-12)
		assert.InDelta(t, 2.0, summary.TotalPnL, 1e-12)
	})

	t.Run("trades match turnover events with implicit prior zero", func(t *testing.T) {
		signals := []Position{0, 1, 1, -1, -1, 0}
		summary := Summarize(recordsFromPnL(make([]float64, len(signals)), signals), "turns")
		assert.Equal(t, 3, summary.Trades)
	})

	t.Run("nonzero initial signal counts as a trade", func(t *testing.T) {
		signals := []Position{1, 1, 0}
		summary := Summarize(recordsFromPnL(make([]float64, len(signals)), signals), "turns")
		assert.Equal(t, 2, summary.Trades)
	})

	t.Run("label is carried through", func(t *testing.T) {
		summary := Summarize(nil, "ttf_nbp")
		assert.Equal(t, "ttf_nbp", summary.Label)
	})
}

func TestSummarize_EndToEnd(t *testing.T) {
	// Full pipeline on a synthetic mean-reverting path around 10.
	spread := dailySeries([]float64{10, 10.2, 13, 12, 10.4, 10, 7, 8.5, 10, 10.1})

	signal, _ := GenerateSignal(spread, 10, 1, 2, 0.5)
	records := RunBacktest(spread, signal, 0.01)
	summary := Summarize(records, "synthetic")

	assert.Equal(t, "synthetic", summary.Label)
	assert.Greater(t, summary.Trades, 0)
	assert.InDelta(t, records[len(records)-1].Equity, summary.TotalPnL, 1e-9)
	assert.LessOrEqual(t, summary.MaxDrawdown, 0.0)
}
