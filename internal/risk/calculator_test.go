package risk

import (
	"math"
	"testing"

	"gamma-guide/internal/models"
)

const eps = 1e-9

func approx(got, want float64) bool {
	return math.Abs(got-want) < eps
}

func limit(px float64) *float64 { return &px }

func TestEvaluateLongCall(t *testing.T) {
	// Spot 1.15, strike 1.20, buy 1 call at 0.05.
	q := &models.OptionQuote{Bid: 0.04, Ask: 0.05}
	p := Evaluate(q, models.OrderSpec{
		Strike:    1.20,
		Side:      models.Call,
		OrderSide: models.Buy,
		OrderType: models.Market,
		Quantity:  1,
	})
	if p == nil {
		t.Fatal("got nil profile")
	}
	if !approx(p.Premium, 5.00) {
		t.Errorf("premium = %v, want 5.00", p.Premium)
	}
	if !approx(p.Breakeven, 1.25) {
		t.Errorf("breakeven = %v, want 1.25", p.Breakeven)
	}
	if !approx(p.MaxLoss, 5.00) || p.MaxLossUnbounded {
		t.Errorf("max loss = %v (unbounded=%v), want bounded 5.00", p.MaxLoss, p.MaxLossUnbounded)
	}
	if !p.MaxProfitUnbounded {
		t.Error("long call max profit should be flagged unbounded")
	}
}

func TestEvaluateLongPut(t *testing.T) {
	// Strike 1.10, buy 2 puts at 0.03.
	q := &models.OptionQuote{Bid: 0.02, Ask: 0.03}
	p := Evaluate(q, models.OrderSpec{
		Strike:    1.10,
		Side:      models.Put,
		OrderSide: models.Buy,
		OrderType: models.Market,
		Quantity:  2,
	})
	if p == nil {
		t.Fatal("got nil profile")
	}
	if !approx(p.Premium, 6.00) {
		t.Errorf("premium = %v, want 6.00", p.Premium)
	}
	if !approx(p.Breakeven, 1.07) {
		t.Errorf("breakeven = %v, want 1.07", p.Breakeven)
	}
	if !approx(p.MaxLoss, 6.00) {
		t.Errorf("max loss = %v, want 6.00", p.MaxLoss)
	}
	if p.MaxProfitUnbounded {
		t.Error("long put max profit must not be unbounded")
	}
	if !approx(p.MaxProfit, 214.00) {
		t.Errorf("max profit = %v, want 214.00 (1.10*100*2 - 6.00)", p.MaxProfit)
	}
}

func TestEvaluateShortCall(t *testing.T) {
	q := &models.OptionQuote{Bid: 0.04, Ask: 0.05}
	p := Evaluate(q, models.OrderSpec{
		Strike:    1.20,
		Side:      models.Call,
		OrderSide: models.Sell,
		OrderType: models.Market,
		Quantity:  1,
	})
	if p == nil {
		t.Fatal("got nil profile")
	}
	// Short orders fill at the bid.
	if !approx(p.Premium, 4.00) {
		t.Errorf("premium = %v, want 4.00", p.Premium)
	}
	if !approx(p.MaxProfit, 4.00) || p.MaxProfitUnbounded {
		t.Errorf("max profit = %v (unbounded=%v), want bounded 4.00", p.MaxProfit, p.MaxProfitUnbounded)
	}
	if !p.MaxLossUnbounded {
		t.Error("short call max loss should be flagged unbounded")
	}
	if !approx(p.Breakeven, 1.24) {
		t.Errorf("breakeven = %v, want 1.24", p.Breakeven)
	}
}

func TestEvaluateShortPut(t *testing.T) {
	q := &models.OptionQuote{Bid: 0.02, Ask: 0.03}
	p := Evaluate(q, models.OrderSpec{
		Strike:    1.10,
		Side:      models.Put,
		OrderSide: models.Sell,
		OrderType: models.Market,
		Quantity:  2,
	})
	if p == nil {
		t.Fatal("got nil profile")
	}
	if !approx(p.Premium, 4.00) {
		t.Errorf("premium = %v, want 4.00", p.Premium)
	}
	if !approx(p.MaxProfit, 4.00) {
		t.Errorf("max profit = %v, want 4.00", p.MaxProfit)
	}
	if p.MaxLossUnbounded {
		t.Error("short put max loss must be bounded")
	}
	if !approx(p.MaxLoss, 216.00) {
		t.Errorf("max loss = %v, want 216.00 (1.10*100*2 - 4.00)", p.MaxLoss)
	}
	if !approx(p.Breakeven, 1.08) {
		t.Errorf("breakeven = %v, want 1.08", p.Breakeven)
	}
}

func TestEvaluateFees(t *testing.T) {
	q := &models.OptionQuote{Bid: 0.95, Ask: 1.05}
	p := Evaluate(q, models.OrderSpec{
		Strike:    100,
		Side:      models.Call,
		OrderSide: models.Buy,
		OrderType: models.Market,
		Quantity:  3,
	})
	if p == nil {
		t.Fatal("got nil profile")
	}
	if !approx(p.RegFee, 0.06) {
		t.Errorf("reg fee = %v, want 0.06", p.RegFee)
	}
	if !approx(p.ExchangeFee, 0.03) {
		t.Errorf("exchange fee = %v, want 0.03", p.ExchangeFee)
	}
	if !approx(p.ContractFee, 1.50) {
		t.Errorf("contract fee = %v, want 1.50", p.ContractFee)
	}
	if !approx(p.Total, p.Premium+p.RegFee+p.ExchangeFee+p.ContractFee) {
		t.Errorf("total = %v does not sum premium and fees", p.Total)
	}
}

func TestEvaluateNothingToEvaluate(t *testing.T) {
	q := &models.OptionQuote{Bid: 0.04, Ask: 0.05}
	if p := Evaluate(nil, models.OrderSpec{Quantity: 1}); p != nil {
		t.Error("expected nil profile without a selected contract")
	}
	if p := Evaluate(q, models.OrderSpec{Quantity: 0}); p != nil {
		t.Error("expected nil profile for zero quantity")
	}
	if p := Evaluate(q, models.OrderSpec{Quantity: -2}); p != nil {
		t.Error("expected nil profile for negative quantity")
	}
}

func TestEffectivePrice(t *testing.T) {
	q := models.OptionQuote{Bid: 0.04, Ask: 0.05}
	cases := []struct {
		name string
		spec models.OrderSpec
		want float64
	}{
		{"market buy hits ask", models.OrderSpec{OrderSide: models.Buy, OrderType: models.Market}, 0.05},
		{"market sell hits bid", models.OrderSpec{OrderSide: models.Sell, OrderType: models.Market}, 0.04},
		{"limit uses entered price", models.OrderSpec{OrderSide: models.Buy, OrderType: models.Limit, LimitPrice: limit(0.045)}, 0.045},
		{"blank limit buy defaults to ask", models.OrderSpec{OrderSide: models.Buy, OrderType: models.Limit}, 0.05},
		{"blank limit sell defaults to bid", models.OrderSpec{OrderSide: models.Sell, OrderType: models.Limit}, 0.04},
	}
	for _, tc := range cases {
		if got := EffectivePrice(q, tc.spec); !approx(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
