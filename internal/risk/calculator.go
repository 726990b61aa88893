// Package risk computes the cost breakdown and payoff bounds for an order
// against a selected option contract. Everything here is a pure computation;
// margin and collateral requirements for short positions are not modeled.
package risk

import "gamma-guide/internal/models"

// ContractMultiplier is the number of underlying units per contract.
const ContractMultiplier = 100

// Flat per-contract fee schedule.
const (
	RegFeePerContract      = 0.02
	ExchangeFeePerContract = 0.01
	ContractFeePerContract = 0.50
)

// EffectivePrice resolves the per-share price an order would execute at:
// market orders take the current ask (buy) or bid (sell); limit orders take
// the entered limit price, defaulting to ask/bid when none was given.
func EffectivePrice(quote models.OptionQuote, spec models.OrderSpec) float64 {
	marketPx := quote.Ask
	if spec.OrderSide == models.Sell {
		marketPx = quote.Bid
	}
	if spec.OrderType == models.Limit && spec.LimitPrice != nil {
		return *spec.LimitPrice
	}
	return marketPx
}

// Evaluate computes premium, fees, breakeven and the bounded/unbounded
// max-profit and max-loss figures for an order against the selected quote.
//
// It returns nil when there is nothing to evaluate: no contract selected or
// a non-positive quantity. Callers treat nil as "nothing to display", not as
// a failure.
func Evaluate(quote *models.OptionQuote, spec models.OrderSpec) *models.RiskProfile {
	if quote == nil || spec.Quantity <= 0 {
		return nil
	}
	qty := float64(spec.Quantity)
	px := EffectivePrice(*quote, spec)
	premium := px * qty * ContractMultiplier

	p := &models.RiskProfile{
		Premium:     premium,
		RegFee:      RegFeePerContract * qty,
		ExchangeFee: ExchangeFeePerContract * qty,
		ContractFee: ContractFeePerContract * qty,
	}
	p.Total = p.Premium + p.RegFee + p.ExchangeFee + p.ContractFee

	isCall := spec.Side == models.Call
	if isCall {
		p.Breakeven = spec.Strike + px
	} else {
		p.Breakeven = spec.Strike - px
	}

	// A put's payoff is capped by the underlying going to zero.
	putCap := spec.Strike*ContractMultiplier*qty - premium

	if spec.OrderSide == models.Buy {
		p.MaxLoss = premium
		if isCall {
			p.MaxProfitUnbounded = true
		} else {
			p.MaxProfit = putCap
		}
		return p
	}
	p.MaxProfit = premium
	if isCall {
		p.MaxLossUnbounded = true
	} else {
		p.MaxLoss = putCap
	}
	return p
}
