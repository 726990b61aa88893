package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamma-guide/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}
	if cfg.Chain.Symbol != "MON-USD" {
		t.Errorf("symbol = %q, want MON-USD", cfg.Chain.Symbol)
	}
	if cfg.Chain.Expirations != 5 {
		t.Errorf("expirations = %d, want 5", cfg.Chain.Expirations)
	}
	if cfg.Feed.CoinGeckoID != "monad" {
		t.Errorf("coingecko_id = %q, want monad", cfg.Feed.CoinGeckoID)
	}
	if cfg.Feed.Timeout != 8*time.Second {
		t.Errorf("feed timeout = %v, want 8s", cfg.Feed.Timeout)
	}
	if cfg.Server.Addr != ":8085" {
		t.Errorf("server addr = %q, want :8085", cfg.Server.Addr)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("chain:\n  symbol: ETH-USD\n  expirations: 3\nfeed:\n  coingecko_id: ethereum\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chain.Symbol != "ETH-USD" {
		t.Errorf("symbol = %q, want ETH-USD", cfg.Chain.Symbol)
	}
	if cfg.Chain.Expirations != 3 {
		t.Errorf("expirations = %d, want 3", cfg.Chain.Expirations)
	}
	if cfg.Feed.CoinGeckoID != "ethereum" {
		t.Errorf("coingecko_id = %q, want ethereum", cfg.Feed.CoinGeckoID)
	}
	// Untouched sections keep defaults.
	if cfg.Server.Addr != ":8085" {
		t.Errorf("server addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GAMMA_FEED_TIMEOUT", "3s")
	t.Setenv("GAMMA_CHAIN_SYMBOL", "BTC-USD")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Feed.Timeout != 3*time.Second {
		t.Errorf("feed timeout = %v, want 3s from GAMMA_FEED_TIMEOUT", cfg.Feed.Timeout)
	}
	if cfg.Chain.Symbol != "BTC-USD" {
		t.Errorf("symbol = %q, want BTC-USD from GAMMA_CHAIN_SYMBOL", cfg.Chain.Symbol)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Chain.Expirations = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero expirations")
	} else if !errors.Is(err, errors.ErrConfigInvalid) {
		t.Errorf("validation error %v does not wrap ErrConfigInvalid", err)
	}
	cfg.Chain.Expirations = 5
	cfg.Feed.CoinGeckoID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty coingecko_id")
	}
}
