package quant

import "math"

// DefaultPeriodsPerYear annualizes daily P&L.
const DefaultPeriodsPerYear = 252

// SummaryStatistics is the scalar reduction of a backtest trajectory.
type SummaryStatistics struct {
	Label       string  `json:"label"`
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"max_drawdown"`
	TotalPnL    float64 `json:"total_pnl"`
	Trades      int     `json:"trades"`
	WinRatio    float64 `json:"win_ratio"`
}

// Sharpe computes the annualized Sharpe ratio of a P&L series using the
// population standard deviation. Empty input or zero variance yields 0,
// a neutral rather than erroneous result.
func Sharpe(pnl []float64, periodsPerYear int) float64 {
	var sum float64
	n := 0
	for _, v := range pnl {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)

	var ss float64
	for _, v := range pnl {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		ss += d * d
	}
	vol := math.Sqrt(ss / float64(n))
	if vol == 0 {
		return 0
	}
	return (mean / vol) * math.Sqrt(float64(periodsPerYear))
}

// MaxDrawdown returns the most negative peak-to-trough move of an equity
// curve, or 0 for empty input.
func MaxDrawdown(equity []float64) float64 {
	peak := math.Inf(-1)
	minDD := 0.0
	seen := false
	for _, v := range equity {
		if math.IsNaN(v) {
			continue
		}
		seen = true
		if v > peak {
			peak = v
		}
		if dd := v - peak; dd < minDD {
			minDD = dd
		}
	}
	if !seen {
		return 0
	}
	return minDD
}

// Summarize reduces a backtest trajectory to summary risk/return
// statistics, annualizing with DefaultPeriodsPerYear.
func Summarize(records []BacktestRecord, label string) SummaryStatistics {
	return SummarizeWithPeriods(records, label, DefaultPeriodsPerYear)
}

// SummarizeWithPeriods is Summarize with an explicit annualization factor.
// The win ratio is the fraction of nonzero net P&L entries that are
// positive; with no nonzero entries it is NaN, which is distinct from a
// literal 0% win rate.
func SummarizeWithPeriods(records []BacktestRecord, label string, periodsPerYear int) SummaryStatistics {
	netPnL := make([]float64, len(records))
	equity := make([]float64, len(records))
	for i, r := range records {
		netPnL[i] = r.NetPnL
		equity[i] = r.Equity
	}

	var total float64
	trades := 0
	nonZero, wins := 0, 0
	prevSignal := Flat
	for _, r := range records {
		if !math.IsNaN(r.NetPnL) {
			total += r.NetPnL
		}
		if r.Signal != prevSignal {
			trades++
		}
		prevSignal = r.Signal
		if math.IsNaN(r.NetPnL) || r.NetPnL != 0 {
			nonZero++
			if r.NetPnL > 0 {
				wins++
			}
		}
	}

	winRatio := math.NaN()
	if nonZero > 0 {
		winRatio = float64(wins) / float64(nonZero)
	}

	return SummaryStatistics{
		Label:       label,
		Sharpe:      Sharpe(netPnL, periodsPerYear),
		MaxDrawdown: MaxDrawdown(equity),
		TotalPnL:    total,
		Trades:      trades,
		WinRatio:    winRatio,
	}
}
