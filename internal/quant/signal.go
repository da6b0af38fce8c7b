package quant

import (
	"math"
	"time"
)

// Position is a discrete held position.
type Position int

const (
	Short Position = -1
	Flat  Position = 0
	Long  Position = 1
)

// SignalPoint is a desired position at a single timestamp.
type SignalPoint struct {
	Time     time.Time `json:"time"`
	Position Position  `json:"position"`
}

// PositionSignal is a time-ordered position sequence sharing the index of
// the spread series it was generated from.
type PositionSignal []SignalPoint

// ZScore standardizes a spread series against mu and sigma. When sigma is
// zero, negative, or NaN there is no meaningful dispersion and the whole
// output is missing values.
func ZScore(spread Series, mu, sigma float64) Series {
	out := make(Series, len(spread))
	degenerate := sigma <= 0 || math.IsNaN(sigma)
	for i, p := range spread {
		v := math.NaN()
		if !degenerate {
			v = (p.Value - mu) / sigma
		}
		out[i] = Point{Time: p.Time, Value: v}
	}
	return out
}

// GenerateSignal turns a spread series into a position sequence via a
// three-state hysteresis machine over the z-score of the spread.
//
// From flat, the machine goes short when z rises strictly above entryZ
// (spread abnormally high, bet on reversion down) and long when z falls
// strictly below -entryZ. From long or short it exits to flat only when
// |z| drops strictly below exitZ; it never flips between long and short
// directly. A missing z-score holds the previous position.
//
// A degenerate sigma yields an all-missing z-score series and therefore a
// permanently flat signal; that is a designed degradation, not an error.
func GenerateSignal(spread Series, mu, sigma, entryZ, exitZ float64) (PositionSignal, Series) {
	zscores := ZScore(spread, mu, sigma)

	signal := make(PositionSignal, len(spread))
	state := Flat
	for i, zp := range zscores {
		z := zp.Value
		if !math.IsNaN(z) {
			if state == Flat {
				if z > entryZ {
					state = Short
				} else if z < -entryZ {
					state = Long
				}
			} else if math.Abs(z) < exitZ {
				state = Flat
			}
		}
		signal[i] = SignalPoint{Time: zp.Time, Position: state}
	}
	return signal, zscores
}
