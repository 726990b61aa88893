package chain

import "math"

// MinStrikeRows is the minimum ladder size targeted for any positive spot,
// so the chain table has enough rows even for low-priced underlyings.
const MinStrikeRows = 9

// maxStrikeSteps caps ladder generation regardless of step size.
const maxStrikeSteps = 25

// defaultLadder covers the degenerate case where no usable spot exists.
var defaultLadder = []float64{1, 1.05, 1.1, 1.15, 1.2, 1.25, 1.3}

// StrikesForSpot returns a strictly increasing, duplicate-free strike ladder
// covering roughly 80%-125% of spot. The natural step scales with spot but is
// shrunk when needed so the band fits at least MinStrikeRows strikes; the
// shrunk step is floored, not rounded, at 3 decimals so the floor holds
// wherever the strike grid can express it (sub-2-cent spots collapse anyway
// because strikes bottom out at 3-decimal resolution).
//
// Strikes carry 3-decimal resolution while traded prices stay at 2 decimals:
// unifying the two would thin out the ladder for low spots (MON trades around
// $0.02, where a 2-decimal step collapses the whole band into one strike).
func StrikesForSpot(spot float64) []float64 {
	if spot <= 0 {
		return append([]float64(nil), defaultLadder...)
	}
	rawStep := math.Max(0.01, round2(spot*0.05))
	low := round2(spot * 0.8)
	high := round2(spot * 1.25)
	band := math.Max(high-low, spot*0.08)
	step := math.Max(0.001, floor3(math.Min(rawStep, band/(MinStrikeRows-1))))

	strikes := make([]float64, 0, maxStrikeSteps+1)
	for i := 0; i <= maxStrikeSteps; i++ {
		s := round3(low + float64(i)*step)
		if s > high {
			break
		}
		// Rounding can collapse adjacent steps or, for sub-cent spots,
		// push the first rungs to zero; keep only positive strict increases.
		if s > 0 && (len(strikes) == 0 || s > strikes[len(strikes)-1]) {
			strikes = append(strikes, s)
		}
	}
	if len(strikes) == 0 {
		return []float64{spot}
	}
	return strikes
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func floor3(v float64) float64 { return math.Floor(v*1000) / 1000 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
