package quant

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when fewer than two usable observations
// remain after dropping missing values.
var ErrInsufficientData = errors.New("at least two observations are required to fit AR(1) after dropping missing values")

// AR1Parameters holds the fitted parameters of an AR(1) model
// S_t = c + phi*S_{t-1} + noise.
type AR1Parameters struct {
	Const    float64 `json:"const"`
	Phi      float64 `json:"phi"`
	Mu       float64 `json:"mu"`
	Sigma    float64 `json:"sigma"`
	HalfLife float64 `json:"half_life"`
}

// HalfLife computes the mean-reversion half-life ln(2)/-ln(phi) for an
// AR(1) coefficient. Outside the stationary mean-reverting range (0, 1)
// the process has no finite decay time and the half-life is +Inf.
func HalfLife(phi float64) float64 {
	if !(phi > 0 && phi < 1) {
		return math.Inf(1)
	}
	return math.Ln2 / -math.Log(phi)
}

// FitAR1 fits an AR(1) model to a spread series by ordinary least squares,
// regressing value[t] on [1, value[t-1]] over the cleaned time-ordered
// series. The earliest observation is consumed as the lag partner only.
func FitAR1(spread Series) (AR1Parameters, error) {
	cleaned := spread.DropNA()
	if len(cleaned) < 2 {
		return AR1Parameters{}, ErrInsufficientData
	}

	// y[i] = cleaned[i+1], x[i] = cleaned[i]
	m := float64(len(cleaned) - 1)
	var sumX, sumY, sumXX, sumXY float64
	for i := 0; i < len(cleaned)-1; i++ {
		x := cleaned[i].Value
		y := cleaned[i+1].Value
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	// Normal equations for [intercept, slope].
	phi := (m*sumXY - sumX*sumY) / (m*sumXX - sumX*sumX)
	c := (sumY - phi*sumX) / m

	var rss float64
	for i := 0; i < len(cleaned)-1; i++ {
		resid := cleaned[i+1].Value - c - phi*cleaned[i].Value
		rss += resid * resid
	}

	mu := math.Inf(1)
	if phi != 1 {
		mu = c / (1 - phi)
	}

	// Residual variance with two fitted parameters.
	sigma := math.Sqrt(rss / (m - 2))

	return AR1Parameters{
		Const:    c,
		Phi:      phi,
		Mu:       mu,
		Sigma:    sigma,
		HalfLife: HalfLife(phi),
	}, nil
}
