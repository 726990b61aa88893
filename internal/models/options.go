// Package models defines the data types shared across the application.
package models

// OptionSide identifies the contract type.
type OptionSide string

const (
	Call OptionSide = "call"
	Put  OptionSide = "put"
)

// OptionQuote is one contract's synthetic market quote. Quotes are
// regenerated fresh on every synthesis call and carry no persisted identity;
// reproducibility comes from the determinism of the inputs.
type OptionQuote struct {
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	Last         float64 `json:"last"`
	Change       float64 `json:"change"`
	Volume       int     `json:"volume"`
	OpenInterest int     `json:"openInterest"`
	BidSize      int     `json:"bidSize"`
	AskSize      int     `json:"askSize"`
	IV           float64 `json:"iv"`
	Delta        float64 `json:"delta"`
	Gamma        float64 `json:"gamma"`
	Theta        float64 `json:"theta"`
	Vega         float64 `json:"vega"`
}

// StrikeRow is one row of the chain: the call and put quote pair for a strike
// at a given expiration.
type StrikeRow struct {
	Strike float64     `json:"strike"`
	Call   OptionQuote `json:"call"`
	Put    OptionQuote `json:"put"`
}

// OptionsChainSnapshot is the complete, immutable result of one synthesis
// call. It is owned by the caller and recomputed wholesale when the spot or
// the 24h-change input moves; it is never mutated in place.
type OptionsChainSnapshot struct {
	Symbol         string                 `json:"symbol"`
	Spot           float64                `json:"spot"`
	Expirations    []string               `json:"expirations"`
	ChainsByExpiry map[string][]StrikeRow `json:"chainsByExpiry"`
}

// Row returns the strike row for the given expiry and strike, or nil when the
// snapshot has no such contract.
func (s *OptionsChainSnapshot) Row(expiry string, strike float64) *StrikeRow {
	rows, ok := s.ChainsByExpiry[expiry]
	if !ok {
		return nil
	}
	for i := range rows {
		if rows[i].Strike == strike {
			return &rows[i]
		}
	}
	return nil
}

// Quote returns the quote for one side of a strike row, or nil when the
// contract does not exist in the snapshot.
func (s *OptionsChainSnapshot) Quote(expiry string, strike float64, side OptionSide) *OptionQuote {
	row := s.Row(expiry, strike)
	if row == nil {
		return nil
	}
	if side == Put {
		return &row.Put
	}
	return &row.Call
}
