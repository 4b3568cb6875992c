package inter

import (
	"fmt"
	"math/bits"
)

// Score is a non-negative fixed-point score value, scaled by ScoreScale.
// All scoring arithmetic is pure integer math so that every replica of
// the engine computes byte-identical results; no float ever touches a
// score.
type Score uint64

// ScoreScale is the fixed-point scale: a Score of ScoreScale represents
// 1.0. The same scale is used for the time-decay multiplier.
const ScoreScale = Score(1_000_000)

// String renders the score as a decimal with six fractional digits.
func (s Score) String() string {
	return fmt.Sprintf("%d.%06d", uint64(s/ScoreScale), uint64(s%ScoreScale))
}

// Dampen maps an elector's cumulative blessing count on one seed to the
// total dampened weight those blessings are worth:
//
//	Dampen(n) = floor(sqrt(n * ScoreScale))
//
// The square root makes repeated contributions sub-linear: the first
// blessing is worth 1000 units, two blessings ~1414, a hundred ~10000.
// Marginal value strictly decreases, so buying many votes on one seed
// (or holding many units) yields diminishing score per unit spent.
//
// The scoring engine applies only the delta Dampen(n) - Dampen(n-1) per
// call; the cumulative count is the sole input, so the function must be
// monotone for deltas to stay non-negative (isqrt is).
func Dampen(count uint64) Score {
	return Score(isqrt(count * uint64(ScoreScale)))
}

// isqrt returns floor(sqrt(n)) using a pure-integer Newton iteration.
// Deterministic on every platform, unlike math.Sqrt whose rounding is
// not guaranteed bit-exact across architectures.
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	// Initial guess: 2^ceil(bits/2), always >= sqrt(n).
	x := uint64(1) << ((bitLen(n) + 1) / 2)
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// bitLen returns the number of significant bits in n.
func bitLen(n uint64) uint {
	l := uint(0)
	for n > 0 {
		n >>= 1
		l++
	}
	return l
}

// DecayMultiplier computes the time-decay factor (scaled by ScoreScale)
// for a contribution made `elapsed` into a round of length `period`:
//
//	mul = ScoreScale - decayBase * elapsed / period
//
// clamped to the interval [decayMin, ScoreScale]. The curve is linear in
// elapsed time; the exact shape is a tunable policy (decayBase stretches
// the slope, decayBase = 0 disables decay entirely), but two properties
// are load-bearing and guarded by tests:
//   - non-increasing in elapsed time within the period, and
//   - bounded below by decayMin, so no contribution ever reaches zero.
func DecayMultiplier(elapsed, period Timestamp, decayBase, decayMin Score) Score {
	if decayMin > ScoreScale {
		decayMin = ScoreScale
	}
	if period == 0 || decayBase == 0 {
		return ScoreScale
	}
	if elapsed > period {
		elapsed = period
	}
	// decayBase * elapsed can exceed 64 bits for day-length periods in
	// nanoseconds, so the product goes through a 128-bit intermediate.
	// The quotient is at most decayBase, so Div64 cannot trap.
	hi, lo := bits.Mul64(uint64(decayBase), uint64(elapsed))
	q, _ := bits.Div64(hi, lo, uint64(period))
	drop := Score(q)
	if drop >= ScoreScale-decayMin {
		return decayMin
	}
	return ScoreScale - drop
}

// WeighDelta converts a raw dampened-weight delta into a score delta by
// applying the configured weight and the decay multiplier:
//
//	delta = rawDelta * weight * decayMul / ScoreScale
//
// rawDelta is a Dampen() difference (<= 1000 * sqrt growth per call) and
// weight is a small configured integer, so the product stays far below
// uint64 overflow for any realistic configuration.
func WeighDelta(rawDelta Score, weight uint64, decayMul Score) Score {
	return Score(uint64(rawDelta) * weight * uint64(decayMul) / uint64(ScoreScale))
}
