package models

import "time"

// OrderSide represents the direction of an order.
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// OrderType represents the order execution type.
type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

// OrderSpec is a caller-supplied order against a single contract. It is not
// persisted by the engine; the journal stores it alongside the evaluated
// risk profile when the user places a paper order.
type OrderSpec struct {
	Expiry     string     `json:"expiry"`
	Strike     float64    `json:"strike"`
	Side       OptionSide `json:"side"`
	OrderSide  OrderSide  `json:"orderSide"`
	OrderType  OrderType  `json:"orderType"`
	Quantity   int        `json:"quantity"`
	LimitPrice *float64   `json:"limitPrice,omitempty"` // nil defaults to ask (buy) or bid (sell)
}

// RiskProfile is the computed cost breakdown and payoff bounds for an order.
// Unbounded profit/loss is surfaced as an explicit flag, never as a numeric
// sentinel, so callers can render "Unlimited" instead of a large number.
type RiskProfile struct {
	Premium     float64 `json:"premium"`
	RegFee      float64 `json:"regFee"`
	ExchangeFee float64 `json:"exchangeFee"`
	ContractFee float64 `json:"contractFee"`
	Total       float64 `json:"total"`

	MaxProfit          float64 `json:"maxProfit"`
	MaxProfitUnbounded bool    `json:"maxProfitUnbounded"`
	Breakeven          float64 `json:"breakeven"`
	MaxLoss            float64 `json:"maxLoss"`
	MaxLossUnbounded   bool    `json:"maxLossUnbounded"`
}

// JournalEntry is one persisted paper order with the risk figures it was
// placed at.
type JournalEntry struct {
	ID       int64       `json:"id"`
	PlacedAt time.Time   `json:"placedAt"`
	Symbol   string      `json:"symbol"`
	Spot     float64     `json:"spot"`
	Order    OrderSpec   `json:"order"`
	Price    float64     `json:"price"` // effective per-share price at placement
	Risk     RiskProfile `json:"risk"`
}
