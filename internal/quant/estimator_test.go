package quant

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailySeries(values []float64) Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Time: start.AddDate(0, 0, i), Value: v}
	}
	return s
}

func TestHalfLife(t *testing.T) {
	tests := []struct {
		name string
		phi  float64
		want float64
	}{
		{name: "stationary phi 0.5", phi: 0.5, want: 1.0},
		{name: "stationary phi 0.9", phi: 0.9, want: math.Ln2 / -math.Log(0.9)},
		{name: "zero phi", phi: 0, want: math.Inf(1)},
		{name: "negative phi", phi: -0.5, want: math.Inf(1)},
		{name: "unit root", phi: 1, want: math.Inf(1)},
		{name: "explosive", phi: 1.2, want: math.Inf(1)},
		{name: "anti-persistent beyond -1", phi: -1.5, want: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HalfLife(tt.phi)
			if math.IsInf(tt.want, 1) {
				assert.True(t, math.IsInf(got, 1))
				return
			}
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.Greater(t, got, 0.0)
		})
	}
}

func TestFitAR1_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{name: "empty series", values: nil},
		{name: "single observation", values: []float64{1.0}},
		{name: "one usable after dropping missing", values: []float64{math.NaN(), 2.0, math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitAR1(dailySeries(tt.values))
			assert.ErrorIs(t, err, ErrInsufficientData)
		})
	}
}

func TestFitAR1_ExactFixtures(t *testing.T) {
	t.Run("perfect random walk with drift", func(t *testing.T) {
		// y = x + 1 exactly, so phi = 1 and the long-run mean diverges.
		params, err := FitAR1(dailySeries([]float64{1, 2, 3, 4}))
		require.NoError(t, err)

		assert.InDelta(t, 1.0, params.Phi, 1e-12)
		assert.InDelta(t, 1.0, params.Const, 1e-12)
		assert.True(t, math.IsInf(params.Mu, 1))
		assert.InDelta(t, 0.0, params.Sigma, 1e-9)
		assert.True(t, math.IsInf(params.HalfLife, 1))
	})

	t.Run("alternating series", func(t *testing.T) {
		// Perfectly anti-persistent: phi = -1, const = 1, no residual noise.
		params, err := FitAR1(dailySeries([]float64{0, 1, 0, 1, 0}))
		require.NoError(t, err)

		assert.InDelta(t, -1.0, params.Phi, 1e-12)
		assert.InDelta(t, 1.0, params.Const, 1e-12)
		assert.InDelta(t, 0.5, params.Mu, 1e-12)
		assert.InDelta(t, 0.0, params.Sigma, 1e-9)
		assert.True(t, math.IsInf(params.HalfLife, 1))
	})

	t.Run("residual variance uses n minus 2 degrees of freedom", func(t *testing.T) {
		// Hand-solved normal equations for [0, 2, 1, 3]:
		// phi = -0.5, const = 2.5, RSS = 1.5 over 3 targets, so
		// sigma = sqrt(1.5 / (3-2)), matching the OLS mse_resid convention.
		params, err := FitAR1(dailySeries([]float64{0, 2, 1, 3}))
		require.NoError(t, err)

		assert.InDelta(t, -0.5, params.Phi, 1e-12)
		assert.InDelta(t, 2.5, params.Const, 1e-12)
		assert.InDelta(t, math.Sqrt(1.5), params.Sigma, 1e-12)
		assert.InDelta(t, 2.5/1.5, params.Mu, 1e-12)
	})
}

func TestFitAR1_DropsMissingValues(t *testing.T) {
	withGaps := dailySeries([]float64{math.NaN(), 0, 2, math.NaN(), 1, 3})
	clean := dailySeries([]float64{0, 2, 1, 3})

	got, err := FitAR1(withGaps)
	require.NoError(t, err)
	want, err := FitAR1(clean)
	require.NoError(t, err)

	assert.InDelta(t, want.Phi, got.Phi, 1e-12)
	assert.InDelta(t, want.Const, got.Const, 1e-12)
	assert.InDelta(t, want.Sigma, got.Sigma, 1e-12)
}

func TestFitAR1_RecoversSimulatedProcess(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const (
		c        = 1.0
		phi      = 0.8
		noiseSD  = 0.5
		nSamples = 1000
	)

	values := make([]float64, nSamples)
	values[0] = c / (1 - phi)
	for i := 1; i < nSamples; i++ {
		values[i] = c + phi*values[i-1] + noiseSD*rng.NormFloat64()
	}

	params, err := FitAR1(dailySeries(values))
	require.NoError(t, err)

	assert.InDelta(t, phi, params.Phi, 0.05)
	assert.InDelta(t, c/(1-phi), params.Mu, 0.5)
	assert.InDelta(t, noiseSD, params.Sigma, 0.05)
	assert.Greater(t, params.HalfLife, 0.0)
	assert.False(t, math.IsInf(params.HalfLife, 1))
}
