// Package chain synthesizes a full multi-expiry options chain from a live
// spot price. Every function here is a pure computation over its arguments:
// no I/O, no clock reads, no random state. Quotes are model-derived, not
// market data; the same inputs always rebuild the same chain.
package chain

import "math"

// Noise folds a sequence of numeric seeds into a single deterministic value
// in [0, 1). It substitutes for randomness so synthesized quotes stay stable
// between rebuilds: identical seeds always yield identical noise.
//
// Each input is scaled by 1000 (preserving 3-decimal strike resolution) and
// folded into a 32-bit accumulator with a multiply-by-31 polynomial mix. The
// sign bit is masked off before normalizing, so the result never reaches 1.
func Noise(seeds ...float64) float64 {
	var h int32
	for _, s := range seeds {
		h = h*31 + int32(int64(s*1000))
	}
	return float64(h&math.MaxInt32) / (math.MaxInt32 + 1)
}
