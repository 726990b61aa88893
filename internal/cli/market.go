package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gamma-guide/internal/logging"
	"gamma-guide/internal/models"
	"gamma-guide/pkg/utils"
)

func newPriceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "Show the live spot price",
		Long:  "Fetch the current spot quote for the configured underlying.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			quote, err := app.Feed.Spot(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch spot price: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(quote)
			}

			output.Bold("%s", quote.Symbol)
			output.Printf("  Price:      %s\n", utils.FormatPrice(quote.Price))
			if quote.Change24h != nil {
				change := *quote.Change24h
				output.Printf("  24h Change: %s\n", output.Signed(change, utils.FormatPercent(change)))
			}
			if quote.High24h != nil && quote.Low24h != nil {
				output.Printf("  24h Range:  %s - %s\n",
					utils.FormatPrice(*quote.Low24h), utils.FormatPrice(*quote.High24h))
			}
			if quote.Volume24h != nil {
				output.Printf("  24h Volume: %s\n", utils.FormatCompact(*quote.Volume24h))
			}
			output.Printf("  Updated:    %s\n", quote.UpdatedAt.UTC().Format(time.RFC3339))
			if quote.Fallback {
				output.Warning("Feed unavailable, showing fallback quote")
			}
			return nil
		},
	}
}

func newChainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Show the synthesized options chain",
		Long: `Synthesize the options chain from the live spot price and render the
strike ladder for one expiration. Without --expiry the nearest expiration
is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			expiry, _ := cmd.Flags().GetString("expiry")

			snap, quote := app.snapshot(cmd.Context())
			logging.LogSnapshot(app.Logger, snap.Symbol, snap.Spot,
				len(snap.Expirations), len(snap.ChainsByExpiry[snap.Expirations[0]]))

			if expiry == "" {
				expiry = snap.Expirations[0]
			}
			rows, ok := snap.ChainsByExpiry[expiry]
			if !ok {
				output.Error("No such expiration: %s", expiry)
				output.Dim("Available: %s", strings.Join(snap.Expirations, ", "))
				return fmt.Errorf("unknown expiration %q", expiry)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol": snap.Symbol,
					"spot":   snap.Spot,
					"expiry": expiry,
					"rows":   rows,
				})
			}

			displayChain(output, snap, expiry, rows)
			if quote != nil && quote.Fallback {
				output.Warning("Feed unavailable, chain built from fallback spot")
			}
			return nil
		},
	}

	cmd.Flags().String("expiry", "", "Expiration date (YYYY-MM-DD)")

	return cmd
}

func displayChain(output *Output, snap *models.OptionsChainSnapshot, expiry string, rows []models.StrikeRow) {
	output.Bold("Options Chain - %s", snap.Symbol)
	output.Printf("  Spot: %s  Expiry: %s (%s)\n\n",
		utils.FormatPrice(snap.Spot),
		utils.FormatExpiryLabel(expiry),
		utils.FormatExpiryShort(expiry, time.Now().UTC()))

	output.Printf("%9s %9s %7s %8s │ %9s │ %9s %9s %7s %8s\n",
		"Call Bid", "Call Ask", "IV", "Vol", "Strike", "Put Bid", "Put Ask", "IV", "Vol")
	output.Println(strings.Repeat("─", 92))

	// Nearest strike at or above spot counts as ATM
	atm := rows[len(rows)-1].Strike
	for _, r := range rows {
		if r.Strike >= snap.Spot {
			atm = r.Strike
			break
		}
	}

	for _, r := range rows {
		strikeStr := fmt.Sprintf("%9.3f", r.Strike)
		if r.Strike == atm {
			strikeStr = output.BoldText(strikeStr)
		}

		output.Printf("%9.2f %9.2f %6.1f%% %8s │ %s │ %9.2f %9.2f %6.1f%% %8s\n",
			r.Call.Bid, r.Call.Ask, r.Call.IV, utils.FormatVolume(int64(r.Call.Volume)),
			strikeStr,
			r.Put.Bid, r.Put.Ask, r.Put.IV, utils.FormatVolume(int64(r.Put.Volume)))
	}

	output.Println()
	output.Dim("Expirations: %s", strings.Join(snap.Expirations, ", "))
}
