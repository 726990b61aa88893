package chain

import (
	"math"
	"time"

	"gamma-guide/internal/models"
)

// DefaultSpotFallback is substituted for a missing or non-positive spot so
// the chain stays renderable instead of propagating an error.
const DefaultSpotFallback = 1.15

// DefaultSymbol labels snapshots when no symbol is configured.
const DefaultSymbol = "MON-USD"

// Engine assembles options-chain snapshots. It retains no state between
// calls; snapshots are recomputed wholesale from their inputs and building
// them concurrently from multiple callers is safe.
type Engine struct {
	symbol      string
	expirations int
}

// NewEngine returns an Engine for the given symbol producing the given
// number of monthly expirations per snapshot. Zero values take defaults.
func NewEngine(symbol string, expirations int) *Engine {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	if expirations <= 0 {
		expirations = DefaultExpirations
	}
	return &Engine{symbol: symbol, expirations: expirations}
}

// VolNudge converts a 24h percentage price change into an IV nudge applied to
// the whole term structure, capped at 15 points. A nil or NaN change means
// the input is unavailable and no nudge is applied.
func VolNudge(change24h *float64) float64 {
	if change24h == nil || math.IsNaN(*change24h) {
		return 0
	}
	return math.Min(15, math.Abs(*change24h)*0.5)
}

// BaseIV returns the base implied volatility for the expiration at the given
// index. Longer tenors carry more IV; higher recent volatility nudges every
// tenor up by the same amount.
func BaseIV(expiryIndex int, volNudge float64) float64 {
	return 52 + float64(expiryIndex)*3 + volNudge
}

// Snapshot builds the complete chain for the given spot price and optional
// 24h change (nil when unavailable). now anchors expiration scheduling; the
// snapshot is a pure function of (now, spot, change24h).
func (e *Engine) Snapshot(now time.Time, spot float64, change24h *float64) *models.OptionsChainSnapshot {
	safeSpot := spot
	if safeSpot <= 0 {
		safeSpot = DefaultSpotFallback
	}
	strikes := StrikesForSpot(safeSpot)
	expirations := NextExpirations(now, e.expirations)
	nudge := VolNudge(change24h)

	chains := make(map[string][]models.StrikeRow, len(expirations))
	for i, expiry := range expirations {
		chains[expiry] = buildRows(expiry, i, safeSpot, BaseIV(i, nudge), strikes)
	}
	return &models.OptionsChainSnapshot{
		Symbol:         e.symbol,
		Spot:           safeSpot,
		Expirations:    expirations,
		ChainsByExpiry: chains,
	}
}

// buildRows synthesizes the call/put quote pair for every strike of one
// expiration. Per-strike seeds are spaced by 10x the strike with the put
// offset by one, so no two contracts in the snapshot share a seed.
func buildRows(expiry string, expiryIndex int, spot, baseIV float64, strikes []float64) []models.StrikeRow {
	seed := ExpirySeed(expiry, expiryIndex)
	rows := make([]models.StrikeRow, len(strikes))
	for i, strike := range strikes {
		rows[i] = models.StrikeRow{
			Strike: strike,
			Call:   SynthesizeQuote(strike, models.Call, spot, baseIV, seed+strike*10),
			Put:    SynthesizeQuote(strike, models.Put, spot, baseIV, seed+strike*10+1),
		}
	}
	return rows
}
