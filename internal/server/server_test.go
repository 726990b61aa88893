package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"gamma-guide/internal/chain"
	"gamma-guide/internal/config"
	"gamma-guide/internal/models"
	"gamma-guide/internal/pricefeed"
)

// stubFeed returns a fixed quote without touching the network.
type stubFeed struct {
	quote *pricefeed.SpotQuote
	err   error
}

func (f *stubFeed) Spot(context.Context) (*pricefeed.SpotQuote, error) {
	return f.quote, f.err
}

func newTestServer(feed pricefeed.Feed) *Server {
	s := New(config.ServerConfig{Addr: ":0"}, chain.NewEngine("MON-USD", 5), feed, zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	}
	return s
}

func change(v float64) *float64 { return &v }

func TestHandlePrice(t *testing.T) {
	feed := &stubFeed{quote: &pricefeed.SpotQuote{Symbol: "MON-USD", Price: 0.02162, Change24h: change(7.9)}}
	srv := newTestServer(feed)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/price", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got pricefeed.SpotQuote
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Price != 0.02162 {
		t.Errorf("price = %v, want 0.02162", got.Price)
	}
}

func TestHandleChainUsesFeed(t *testing.T) {
	feed := &stubFeed{quote: &pricefeed.SpotQuote{Symbol: "MON-USD", Price: 1.15}}
	srv := newTestServer(feed)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chain", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap models.OptionsChainSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Spot != 1.15 {
		t.Errorf("spot = %v, want 1.15", snap.Spot)
	}
	if len(snap.Expirations) != 5 {
		t.Errorf("got %d expirations, want 5", len(snap.Expirations))
	}
	if len(snap.ChainsByExpiry) != 5 {
		t.Errorf("got chains for %d expiries, want 5", len(snap.ChainsByExpiry))
	}
}

func TestHandleChainSpotOverride(t *testing.T) {
	// Feed errors must not matter when the caller supplies the spot.
	feed := &stubFeed{err: context.DeadlineExceeded}
	srv := newTestServer(feed)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chain?spot=2.5&change24h=20", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap models.OptionsChainSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Spot != 2.5 {
		t.Errorf("spot = %v, want override 2.5", snap.Spot)
	}
}

func TestHandleChainFeedDown(t *testing.T) {
	feed := &stubFeed{err: context.DeadlineExceeded}
	srv := newTestServer(feed)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chain", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHandleRisk(t *testing.T) {
	feed := &stubFeed{quote: &pricefeed.SpotQuote{Symbol: "MON-USD", Price: 1.15}}
	srv := newTestServer(feed)

	// Discover a real contract from the chain first.
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chain", nil))
	var snap models.OptionsChainSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	expiry := snap.Expirations[0]
	strike := snap.ChainsByExpiry[expiry][0].Strike

	body, _ := json.Marshal(map[string]interface{}{
		"expiry":    expiry,
		"strike":    strike,
		"side":      "call",
		"orderSide": "buy",
		"orderType": "market",
		"quantity":  2,
	})
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/risk", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Spot   float64            `json:"spot"`
		Expiry string             `json:"expiry"`
		Quote  models.OptionQuote `json:"quote"`
		Risk   models.RiskProfile `json:"risk"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Risk.MaxProfitUnbounded {
		t.Error("long call risk should flag unbounded profit")
	}
	wantPremium := resp.Quote.Ask * 2 * 100
	if resp.Risk.Premium != wantPremium {
		t.Errorf("premium = %v, want %v", resp.Risk.Premium, wantPremium)
	}
}

func TestHandleRiskValidation(t *testing.T) {
	feed := &stubFeed{quote: &pricefeed.SpotQuote{Price: 1.15}}
	srv := newTestServer(feed)

	body := []byte(`{"strike": 1.2, "side": "call", "orderSide": "buy", "orderType": "market", "quantity": 0}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/risk", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for zero quantity", rec.Code)
	}

	// Strike outside the generated ladder.
	body = []byte(`{"strike": 99.9, "side": "call", "orderSide": "buy", "orderType": "market", "quantity": 1}`)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/risk", bytes.NewReader(body)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown contract", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubFeed{quote: &pricefeed.SpotQuote{Price: 1}})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
