package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gamma-guide/internal/chain"
	"gamma-guide/internal/config"
	"gamma-guide/internal/logging"
	"gamma-guide/internal/models"
	"gamma-guide/internal/pricefeed"
	"gamma-guide/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-29"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Engine  *chain.Engine
	Feed    pricefeed.Feed
	Journal store.Journal
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Engine: chain.NewEngine(cfg.Chain.Symbol, cfg.Chain.Expirations),
	}

	feed := pricefeed.NewCoinGeckoClient(pricefeed.CoinGeckoConfig{
		CoinID:  cfg.Feed.CoinGeckoID,
		Symbol:  cfg.Chain.Symbol,
		APIKey:  cfg.Feed.APIKey,
		Timeout: cfg.Feed.Timeout,
	}, logger)
	app.Feed = feed

	// Redis cache in front of the feed when configured
	if cfg.Feed.RedisURL != "" {
		cached, err := pricefeed.NewCachedFeed(feed, cfg.Feed.CoinGeckoID, cfg.Feed.RedisURL, cfg.Feed.CacheTTL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize price cache, using direct feed")
		} else {
			app.Feed = cached
			logger.Debug().Msg("Redis price cache initialized")
		}
	}

	journal, err := store.NewSQLiteJournal(config.DBPath(""))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize order journal, order commands unavailable")
	} else {
		app.Journal = journal
		logger.Debug().Msg("SQLite order journal initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "gamma-guide",
		Short: "Gamma Guide - synthetic options chain desk",
		Long: `Gamma Guide synthesizes a deterministic options chain for a spot-quoted
underlying and prices the cost and risk of single-leg orders against it.

The chain is derived entirely from the live spot price and 24h change: the
same inputs always produce the same quotes. Paper orders are journaled
locally in SQLite.

Use 'gamma-guide help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/gamma-guide)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newChainCmd(app))
	rootCmd.AddCommand(newRiskCmd(app))
	rootCmd.AddCommand(newOrderCmd(app))
	rootCmd.AddCommand(newServeCmd(app))

	return rootCmd
}

// spot fetches the current quote and resolves the synthesis inputs,
// falling back to the engine default when the feed returns nothing usable.
func (app *App) spot(ctx context.Context) (*pricefeed.SpotQuote, float64, *float64) {
	quote, err := app.Feed.Spot(ctx)
	if err != nil || quote == nil {
		app.Logger.Warn().Err(err).Msg("Spot feed unavailable, using default spot")
		return nil, chain.DefaultSpotFallback, nil
	}
	price := quote.Price
	if price <= 0 {
		price = chain.DefaultSpotFallback
	}
	return quote, price, quote.Change24h
}

// snapshot builds a fresh chain snapshot from the live spot quote.
func (app *App) snapshot(ctx context.Context) (*models.OptionsChainSnapshot, *pricefeed.SpotQuote) {
	quote, price, change := app.spot(ctx)
	snap := app.Engine.Snapshot(time.Now().UTC(), price, change)
	return snap, quote
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Gamma Guide v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Chain Configuration")
	output.Printf("  Symbol:          %s\n", cfg.Chain.Symbol)
	output.Printf("  Expirations:     %d\n", cfg.Chain.Expirations)
	output.Println()

	output.Bold("Feed Configuration")
	output.Printf("  CoinGecko ID:    %s\n", cfg.Feed.CoinGeckoID)
	output.Printf("  Timeout:         %s\n", cfg.Feed.Timeout)
	output.Printf("  Cache TTL:       %s\n", cfg.Feed.CacheTTL)
	if cfg.Feed.RedisURL != "" {
		output.Printf("  Redis:           %s\n", cfg.Feed.RedisURL)
	} else {
		output.Printf("  Redis:           disabled\n")
	}
	output.Println()

	output.Bold("Server Configuration")
	output.Printf("  Address:         %s\n", cfg.Server.Addr)
	output.Printf("  Read Timeout:    %s\n", cfg.Server.ReadTimeout)
	output.Printf("  Write Timeout:   %s\n", cfg.Server.WriteTimeout)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v\n", cfg.Logging.File)
	if cfg.Logging.File {
		output.Printf("  File Path:       %s\n", cfg.Logging.FilePath)
	}
}
