package dto

import (
	"math"
	"time"

	"spreadlab/internal/quant"
)

// FiniteFloat converts a float to a JSON-safe pointer: non-finite values
// (the infinity and NaN sentinels of the core) become null on the wire.
func FiniteFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// PointDTO is one series observation; a null value is an explicit gap.
type PointDTO struct {
	Time  time.Time `json:"time" validate:"required"`
	Value *float64  `json:"value"`
}

// NewPoints converts a core series for the wire, mapping NaN to null.
func NewPoints(s quant.Series) []PointDTO {
	out := make([]PointDTO, len(s))
	for i, p := range s {
		out[i] = PointDTO{Time: p.Time, Value: FiniteFloat(p.Value)}
	}
	return out
}

// SeriesFromPoints converts wire points into a core series, mapping null
// to the NaN missing-value marker.
func SeriesFromPoints(points []PointDTO) quant.Series {
	s := make(quant.Series, len(points))
	for i, p := range points {
		v := math.NaN()
		if p.Value != nil {
			v = *p.Value
		}
		s[i] = quant.Point{Time: p.Time, Value: v}
	}
	return s
}

// AR1ParametersResponse mirrors quant.AR1Parameters with JSON-safe fields.
type AR1ParametersResponse struct {
	Const    *float64 `json:"const"`
	Phi      *float64 `json:"phi"`
	Mu       *float64 `json:"mu"`
	Sigma    *float64 `json:"sigma"`
	HalfLife *float64 `json:"half_life"`
}

func NewAR1ParametersResponse(p quant.AR1Parameters) AR1ParametersResponse {
	return AR1ParametersResponse{
		Const:    FiniteFloat(p.Const),
		Phi:      FiniteFloat(p.Phi),
		Mu:       FiniteFloat(p.Mu),
		Sigma:    FiniteFloat(p.Sigma),
		HalfLife: FiniteFloat(p.HalfLife),
	}
}

// SummaryResponse mirrors quant.SummaryStatistics; the NaN win-ratio
// sentinel (no nonzero P&L entries at all) serializes as null.
type SummaryResponse struct {
	Label       string   `json:"label"`
	Sharpe      float64  `json:"sharpe"`
	MaxDrawdown float64  `json:"max_drawdown"`
	TotalPnL    float64  `json:"total_pnl"`
	Trades      int      `json:"trades"`
	WinRatio    *float64 `json:"win_ratio"`
}

func NewSummaryResponse(s quant.SummaryStatistics) SummaryResponse {
	return SummaryResponse{
		Label:       s.Label,
		Sharpe:      s.Sharpe,
		MaxDrawdown: s.MaxDrawdown,
		TotalPnL:    s.TotalPnL,
		Trades:      s.Trades,
		WinRatio:    FiniteFloat(s.WinRatio),
	}
}
