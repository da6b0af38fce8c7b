package quant

import "time"

// BacktestRecord is the per-timestamp outcome of a simulated strategy.
type BacktestRecord struct {
	Time     time.Time `json:"time"`
	Spread   float64   `json:"spread"`
	Signal   Position  `json:"signal"`
	Position Position  `json:"position"`
	GrossPnL float64   `json:"gross_pnl"`
	Costs    float64   `json:"costs"`
	NetPnL   float64   `json:"net_pnl"`
	Equity   float64   `json:"equity"`
}

// RunBacktest simulates holding the signaled positions on the spread with a
// flat transaction cost per turnover event.
//
// Spread and signal are inner-joined on their timestamps. The realized
// position lags the signal by one period (yesterday's signal is today's
// position), so a decision can never earn the price move that triggered it.
// A turnover occurs whenever the signal changes, with an implicit prior
// signal of 0 before the first element.
func RunBacktest(spread Series, signal PositionSignal, costPerTurnover float64) []BacktestRecord {
	alignedSpread, alignedSignal := AlignSignal(spread, signal)

	records := make([]BacktestRecord, len(alignedSpread))
	equity := 0.0
	for i := range alignedSpread {
		var dSpread float64
		position := Flat
		prevSignal := Flat
		if i > 0 {
			dSpread = alignedSpread[i].Value - alignedSpread[i-1].Value
			position = alignedSignal[i-1].Position
			prevSignal = alignedSignal[i-1].Position
		}

		gross := float64(position) * dSpread

		var costs float64
		if alignedSignal[i].Position != prevSignal {
			costs = costPerTurnover
		}

		net := gross - costs
		equity += net

		records[i] = BacktestRecord{
			Time:     alignedSpread[i].Time,
			Spread:   alignedSpread[i].Value,
			Signal:   alignedSignal[i].Position,
			Position: position,
			GrossPnL: gross,
			Costs:    costs,
			NetPnL:   net,
			Equity:   equity,
		}
	}
	return records
}
