// Package server exposes the chain engine and risk calculator over a small
// REST API consumed by the dashboard UI.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"gamma-guide/internal/chain"
	"gamma-guide/internal/config"
	"gamma-guide/internal/models"
	"gamma-guide/internal/pricefeed"
	"gamma-guide/internal/risk"
)

// Server wires the engine, the price feed and the HTTP surface together.
type Server struct {
	engine *chain.Engine
	feed   pricefeed.Feed
	logger zerolog.Logger
	router *mux.Router
	http   *http.Server
	now    func() time.Time
}

// New creates a Server with all routes registered.
func New(cfg config.ServerConfig, engine *chain.Engine, feed pricefeed.Feed, logger zerolog.Logger) *Server {
	s := &Server{
		engine: engine,
		feed:   feed,
		logger: logger,
		router: mux.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/price", s.handlePrice).Methods(http.MethodGet)
	api.HandleFunc("/chain", s.handleChain).Methods(http.MethodGet)
	api.HandleFunc("/risk", s.handleRisk).Methods(http.MethodPost)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP API listening")
		errCh <- s.http.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	quote, err := s.feed.Spot(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// handleChain builds a fresh snapshot. spot and change24h query parameters
// override the live feed, which keeps the endpoint usable without upstream
// connectivity and gives tests a deterministic input.
func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	spot, change24h, err := s.resolveSpot(r)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	snap := s.engine.Snapshot(s.now(), spot, change24h)
	writeJSON(w, http.StatusOK, snap)
}

// riskRequest is the POST /api/risk body: an order spec plus an optional
// spot override mirroring /api/chain.
type riskRequest struct {
	Expiry     string   `json:"expiry"`
	Strike     float64  `json:"strike"`
	Side       string   `json:"side"`
	OrderSide  string   `json:"orderSide"`
	OrderType  string   `json:"orderType"`
	Quantity   int      `json:"quantity"`
	LimitPrice *float64 `json:"limitPrice,omitempty"`
	Spot       *float64 `json:"spot,omitempty"`
	Change24h  *float64 `json:"change24h,omitempty"`
}

func (req *riskRequest) toSpec(expiry string) models.OrderSpec {
	return models.OrderSpec{
		Expiry:     expiry,
		Strike:     req.Strike,
		Side:       models.OptionSide(req.Side),
		OrderSide:  models.OrderSide(req.OrderSide),
		OrderType:  models.OrderType(req.OrderType),
		Quantity:   req.Quantity,
		LimitPrice: req.LimitPrice,
	}
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Quantity <= 0 {
		s.writeErrorMsg(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	spot := 0.0
	change24h := req.Change24h
	if req.Spot != nil {
		spot = *req.Spot
	} else {
		quote, err := s.feed.Spot(r.Context())
		if err != nil {
			s.writeError(w, http.StatusBadGateway, err)
			return
		}
		spot = quote.Price
		change24h = quote.Change24h
	}

	snap := s.engine.Snapshot(s.now(), spot, change24h)
	expiry := req.Expiry
	if expiry == "" {
		expiry = snap.Expirations[0]
	}
	spec := req.toSpec(expiry)
	quote := snap.Quote(expiry, req.Strike, spec.Side)
	if quote == nil {
		s.writeErrorMsg(w, http.StatusNotFound, "contract not found in chain")
		return
	}
	profile := risk.Evaluate(quote, spec)
	if profile == nil {
		s.writeErrorMsg(w, http.StatusBadRequest, "nothing to evaluate")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spot":   snap.Spot,
		"expiry": expiry,
		"quote":  quote,
		"risk":   profile,
	})
}

func (s *Server) resolveSpot(r *http.Request) (float64, *float64, error) {
	q := r.URL.Query()
	if raw := q.Get("spot"); raw != "" {
		spot, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			var change24h *float64
			if rawChg := q.Get("change24h"); rawChg != "" {
				if chg, err := strconv.ParseFloat(rawChg, 64); err == nil {
					change24h = &chg
				}
			}
			return spot, change24h, nil
		}
	}
	quote, err := s.feed.Spot(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return quote.Price, quote.Change24h, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn().Err(err).Int("status", status).Msg("Request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
