package dto

import "time"

// SeriesInput selects the spread under analysis: either the name of a
// stored spread or an inline point set, never both.
type SeriesInput struct {
	Spread string     `json:"spread"`
	Points []PointDTO `json:"points" validate:"omitempty,dive"`
}

// EstimateRequest fits an AR(1) model to a spread.
type EstimateRequest struct {
	SeriesInput
}

// EstimateResponse carries the fitted parameters for display.
type EstimateResponse struct {
	Spread       string                `json:"spread,omitempty"`
	Observations int                   `json:"observations"`
	Params       AR1ParametersResponse `json:"params"`
}

// SignalRequest generates a position signal and z-score series. Mu and
// Sigma override the fitted values when both are given; thresholds fall
// back to the configured defaults when unset.
type SignalRequest struct {
	SeriesInput
	Mu     *float64 `json:"mu"`
	Sigma  *float64 `json:"sigma"`
	EntryZ *float64 `json:"entry_z" validate:"omitempty,gt=0"`
	ExitZ  *float64 `json:"exit_z" validate:"omitempty,gte=0"`
}

// SignalPointDTO is one signalled position for charting.
type SignalPointDTO struct {
	Time     time.Time `json:"time"`
	Position int       `json:"position"`
}

// SignalResponse carries the signal and z-scores alongside the threshold
// lines they were generated with.
type SignalResponse struct {
	Spread  string                 `json:"spread,omitempty"`
	EntryZ  float64                `json:"entry_z"`
	ExitZ   float64                `json:"exit_z"`
	Params  *AR1ParametersResponse `json:"params,omitempty"`
	Signal  []SignalPointDTO       `json:"signal"`
	ZScores []PointDTO             `json:"zscores"`
}

// BacktestRequest runs the full pipeline: fit, signal, simulate, summarize.
type BacktestRequest struct {
	SeriesInput
	Label           string   `json:"label" validate:"max=128"`
	EntryZ          *float64 `json:"entry_z" validate:"omitempty,gt=0"`
	ExitZ           *float64 `json:"exit_z" validate:"omitempty,gte=0"`
	CostPerTurnover *float64 `json:"cost_per_turnover" validate:"omitempty,gte=0"`
}

// BacktestRecordDTO is one timestamp of the simulated trajectory.
type BacktestRecordDTO struct {
	Time     time.Time `json:"time"`
	Spread   *float64  `json:"spread"`
	Signal   int       `json:"signal"`
	Position int       `json:"position"`
	GrossPnL *float64  `json:"gross_pnl"`
	Costs    float64   `json:"costs"`
	NetPnL   *float64  `json:"net_pnl"`
	Equity   *float64  `json:"equity"`
}

// BacktestResponse is the full pipeline output; RunID is set when the run
// was persisted against a stored spread.
type BacktestResponse struct {
	Spread  string                `json:"spread,omitempty"`
	Label   string                `json:"label"`
	RunID   *uint                 `json:"run_id,omitempty"`
	EntryZ  float64               `json:"entry_z"`
	ExitZ   float64               `json:"exit_z"`
	Params  AR1ParametersResponse `json:"params"`
	Summary SummaryResponse       `json:"summary"`
	Records []BacktestRecordDTO   `json:"records"`
}

// ThresholdPair is one (entry, exit) grid cell of a sweep.
type ThresholdPair struct {
	EntryZ float64 `json:"entry_z" validate:"gt=0"`
	ExitZ  float64 `json:"exit_z" validate:"gte=0"`
}

// SweepRequest evaluates a threshold grid over one spread.
type SweepRequest struct {
	SeriesInput
	Grid            []ThresholdPair `json:"grid" validate:"required,min=1,dive"`
	CostPerTurnover *float64        `json:"cost_per_turnover" validate:"omitempty,gte=0"`
}

// SweepResult is the summary for one grid cell.
type SweepResult struct {
	EntryZ  float64         `json:"entry_z"`
	ExitZ   float64         `json:"exit_z"`
	Summary SummaryResponse `json:"summary"`
}

// SweepResponse lists grid results ordered by Sharpe, best first.
type SweepResponse struct {
	Spread  string                `json:"spread,omitempty"`
	Params  AR1ParametersResponse `json:"params"`
	Results []SweepResult         `json:"results"`
}

// RunResponse is a stored backtest run without its full trajectory.
type RunResponse struct {
	ID        uint      `json:"id"`
	Spread    string    `json:"spread,omitempty"`
	Label     string    `json:"label"`
	EntryZ    float64   `json:"entry_z"`
	ExitZ     float64   `json:"exit_z"`
	CreatedAt time.Time `json:"created_at"`
}
