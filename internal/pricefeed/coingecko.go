package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "gamma-guide/internal/errors"
	"gamma-guide/internal/logging"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Fallback quote returned when CoinGecko is unreachable, so the dashboard
// keeps rendering a plausible chain instead of erroring out.
const (
	fallbackPrice     = 0.02162
	fallbackChange24h = 7.9
)

// CoinGeckoClient fetches spot prices from the CoinGecko /coins/markets
// endpoint. One retry is attempted on 429 and 5xx responses.
type CoinGeckoClient struct {
	baseURL    string
	coinID     string
	symbol     string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// CoinGeckoConfig holds client construction parameters.
type CoinGeckoConfig struct {
	CoinID  string // CoinGecko asset id, e.g. "monad"
	Symbol  string // label used on quotes, e.g. "MON-USD"
	APIKey  string // optional demo API key for higher rate limits
	Timeout time.Duration
	BaseURL string // override for tests; empty uses the public API
}

// NewCoinGeckoClient creates a new CoinGecko-backed feed.
func NewCoinGeckoClient(cfg CoinGeckoConfig, logger zerolog.Logger) *CoinGeckoClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &CoinGeckoClient{
		baseURL:    cfg.BaseURL,
		coinID:     cfg.CoinID,
		symbol:     cfg.Symbol,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// marketRow mirrors one element of the /coins/markets response.
type marketRow struct {
	CurrentPrice             float64  `json:"current_price"`
	High24h                  *float64 `json:"high_24h"`
	Low24h                   *float64 `json:"low_24h"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

// Spot fetches the current quote. On transport failure or a non-OK response
// after the retry, it returns the canned fallback quote flagged as such; the
// error is logged, not propagated, because a missing feed must not take the
// dashboard down.
func (c *CoinGeckoClient) Spot(ctx context.Context) (*SpotQuote, error) {
	start := time.Now()
	row, err := c.fetch(ctx, false)
	if err != nil {
		logging.LogFeed(c.logger, "coingecko", c.symbol, 0, time.Since(start), err)
		change := fallbackChange24h
		return &SpotQuote{
			Symbol:    c.symbol,
			Price:     fallbackPrice,
			Change24h: &change,
			UpdatedAt: time.Now(),
			Fallback:  true,
		}, nil
	}

	logging.LogFeed(c.logger, "coingecko", c.symbol, row.CurrentPrice, time.Since(start), nil)

	return &SpotQuote{
		Symbol:    c.symbol,
		Price:     row.CurrentPrice,
		Change24h: row.PriceChangePercentage24h,
		High24h:   row.High24h,
		Low24h:    row.Low24h,
		Volume24h: row.TotalVolume,
		UpdatedAt: time.Now(),
	}, nil
}

func (c *CoinGeckoClient) fetch(ctx context.Context, retried bool) (*marketRow, error) {
	u, err := url.Parse(c.baseURL + "/coins/markets")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("vs_currency", "usd")
	q.Set("ids", c.coinID)
	q.Set("per_page", "1")
	q.Set("page", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFeedError("coingecko", c.coinID, 0, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		if !retried && (res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(800 * time.Millisecond):
			}
			return c.fetch(ctx, true)
		}
		return nil, apperrors.NewFeedError("coingecko", c.coinID, res.StatusCode, nil)
	}

	var rows []marketRow
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, apperrors.Wrap(err, "decoding coins/markets response")
	}
	if len(rows) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrSymbolNotFound, "coingecko id %q", c.coinID)
	}
	if rows[0].CurrentPrice <= 0 {
		return nil, fmt.Errorf("coingecko returned non-positive price %v", rows[0].CurrentPrice)
	}
	return &rows[0], nil
}
