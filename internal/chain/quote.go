package chain

import (
	"math"

	"gamma-guide/internal/models"
)

// Clamp bounds for synthesized quote fields.
const (
	minIV    = 35.0
	maxIV    = 95.0
	minDelta = 0.05
	maxDelta = 0.95
)

// minMid keeps the theoretical mid strictly positive for far-OTM contracts.
const minMid = 0.02

// quoteSizes are the bid/ask size buckets quotes draw from.
var quoteSizes = [3]int{50, 100, 250}

// SynthesizeQuote deterministically derives one contract's synthetic quote
// from (strike, side, spot, baseIV, seed). Two calls with identical inputs
// produce identical output.
//
// The model is parametric rather than priced from first principles: IV rises
// with moneyness plus a bounded jitter, the mid combines a dampened intrinsic
// term with a time-value term that grows with distance from spot, and spreads
// widen away from the money. Volume, open interest and the secondary greeks
// are further Noise draws within fixed ranges (volume 50-850, OI 100-2100,
// gamma 0.001-0.003, theta -0.05..-0.02, vega 0.08-0.12).
func SynthesizeQuote(strike float64, side models.OptionSide, spot, baseIV, seed float64) models.OptionQuote {
	isCall := side != models.Put
	moneyness := (spot - strike) / spot
	sideFlag := 1.0
	if !isCall {
		moneyness = -moneyness
		sideFlag = 0.0
	}

	ivJitter := (Noise(seed, strike, sideFlag) - 0.5) * 4 // [-2, 2]
	iv := clamp(baseIV+moneyness*15+ivJitter, minIV, maxIV)

	atmDist := math.Abs(strike - spot)
	spreadPct := 0.02 + atmDist/spot*0.01
	intrinsic := (spot - strike) * 0.4
	if !isCall {
		intrinsic = (strike - spot) * 0.4
	}
	mid := math.Max(minMid, intrinsic+atmDist*0.15)
	spread := mid * spreadPct
	bid := round2(mid - spread/2)
	ask := round2(mid + spread/2)
	last := round2((bid + ask) / 2)

	sizeFlag := 2.0
	if !isCall {
		sizeFlag = 3.0
	}
	sizeChoice := int(Noise(seed, strike, sizeFlag)*3) % 3
	bidSize := quoteSizes[sizeChoice]
	askSize := quoteSizes[(sizeChoice+1)%3]

	skew := (strike - spot) / spot
	delta := 0.5 + moneyness*2 - skew*1.5
	if !isCall {
		delta = 0.5 - moneyness*2 + skew*1.5
	}
	delta = clamp(delta, minDelta, maxDelta)

	return models.OptionQuote{
		Bid:          bid,
		Ask:          ask,
		Last:         last,
		Change:       round2((Noise(seed, strike, 4) - 0.5) * 4),
		Volume:       int(Noise(seed, strike, 5)*800) + 50,
		OpenInterest: int(Noise(seed, strike, 6)*2000) + 100,
		BidSize:      bidSize,
		AskSize:      askSize,
		IV:           round1(iv),
		Delta:        round2(delta),
		Gamma:        round3(0.001 + Noise(seed, strike, 7)*0.002),
		Theta:        round2(-0.02 - Noise(seed, strike, 8)*0.03),
		Vega:         round2(0.08 + Noise(seed, strike, 9)*0.04),
	}
}
