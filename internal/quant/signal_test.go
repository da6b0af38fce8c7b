package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(signal PositionSignal) []Position {
	out := make([]Position, len(signal))
	for i, p := range signal {
		out[i] = p.Position
	}
	return out
}

func TestZScore(t *testing.T) {
	spread := dailySeries([]float64{10, 12, 8})

	t.Run("standardizes against mu and sigma", func(t *testing.T) {
		z := ZScore(spread, 10, 2)
		assert.Equal(t, []float64{0, 1, -1}, z.Values())
	})

	t.Run("zero sigma yields all missing", func(t *testing.T) {
		z := ZScore(spread, 10, 0)
		for _, p := range z {
			assert.True(t, math.IsNaN(p.Value))
		}
	})

	t.Run("NaN sigma yields all missing", func(t *testing.T) {
		z := ZScore(spread, 10, math.NaN())
		for _, p := range z {
			assert.True(t, math.IsNaN(p.Value))
		}
	})
}

func TestGenerateSignal_Hysteresis(t *testing.T) {
	// mu=0, sigma=1 makes the z-score equal to the spread itself.
	tests := []struct {
		name          string
		spread        []float64
		entryZ, exitZ float64
		want          []Position
	}{
		{
			name:   "short entry and flat-band exit",
			spread: []float64{1.5, 2.5, 1.0, 0.3},
			entryZ: 2, exitZ: 0.5,
			want: []Position{Flat, Short, Short, Flat},
		},
		{
			name:   "long entry on deep negative z",
			spread: []float64{-1.0, -2.5, -0.6, -0.2},
			entryZ: 2, exitZ: 0.5,
			want: []Position{Flat, Long, Long, Flat},
		},
		{
			name:   "no direct flip from short to long",
			spread: []float64{2.5, -2.5, -0.1},
			entryZ: 2, exitZ: 0.5,
			want: []Position{Short, Short, Flat},
		},
		{
			name:   "entry threshold is strict",
			spread: []float64{2.0, 2.0, -2.0},
			entryZ: 2, exitZ: 0.5,
			want: []Position{Flat, Flat, Flat},
		},
		{
			name:   "exit threshold is strict",
			spread: []float64{2.5, 0.5, 0.49},
			entryZ: 2, exitZ: 0.5,
			want: []Position{Short, Short, Flat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, _ := GenerateSignal(dailySeries(tt.spread), 0, 1, tt.entryZ, tt.exitZ)
			assert.Equal(t, tt.want, positions(signal))
		})
	}
}

func TestGenerateSignal_BoundaryStrictness(t *testing.T) {
	// z = [0, 0, 1, 1, -1, -1] exactly touches the entry band but never
	// exceeds it, so the machine must stay flat throughout.
	spread := dailySeries([]float64{10, 10, 12, 12, 8, 8})

	signal, zscores := GenerateSignal(spread, 10, 2, 1.0, 0.25)

	assert.Equal(t, []float64{0, 0, 1, 1, -1, -1}, zscores.Values())
	assert.Equal(t, []Position{Flat, Flat, Flat, Flat, Flat, Flat}, positions(signal))
}

func TestGenerateSignal_MissingZHoldsPosition(t *testing.T) {
	spread := dailySeries([]float64{2.5, math.NaN(), math.NaN(), 0.1})

	signal, zscores := GenerateSignal(spread, 0, 1, 2, 0.5)

	require.Len(t, signal, 4)
	assert.Equal(t, []Position{Short, Short, Short, Flat}, positions(signal))
	assert.True(t, math.IsNaN(zscores[1].Value))
	assert.True(t, math.IsNaN(zscores[2].Value))
}

func TestGenerateSignal_DegenerateSigmaStaysFlat(t *testing.T) {
	spread := dailySeries([]float64{10, 50, -50, 10})

	signal, zscores := GenerateSignal(spread, 10, 0, 2, 0.5)

	assert.Equal(t, []Position{Flat, Flat, Flat, Flat}, positions(signal))
	for _, p := range zscores {
		assert.True(t, math.IsNaN(p.Value))
	}
}
