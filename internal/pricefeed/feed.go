// Package pricefeed provides spot price feed interfaces and implementations.
// The chain engine never imports this package; feeds are collaborators wired
// in by the CLI and the HTTP server.
package pricefeed

import (
	"context"
	"time"
)

// SpotQuote is one underlying's live market snapshot.
type SpotQuote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change24h *float64  `json:"change24h,omitempty"`
	High24h   *float64  `json:"high24h,omitempty"`
	Low24h    *float64  `json:"low24h,omitempty"`
	Volume24h *float64  `json:"volume24h,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
	Fallback  bool      `json:"fallback,omitempty"` // true when the feed substituted a canned quote
}

// Feed defines the interface for spot price providers.
type Feed interface {
	// Spot returns the current quote for the configured underlying.
	Spot(ctx context.Context) (*SpotQuote, error)
}
