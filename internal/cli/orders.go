package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gamma-guide/internal/errors"
	"gamma-guide/internal/logging"
	"gamma-guide/internal/models"
	"gamma-guide/internal/risk"
	"gamma-guide/pkg/utils"
)

func newRiskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Evaluate the cost and risk of an order",
		Long: `Price a single-leg order against the current synthetic chain: premium,
fees, breakeven and the payoff bounds of the position.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spec, err := orderSpecFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			snap, _ := app.snapshot(cmd.Context())
			if spec.Expiry == "" {
				spec.Expiry = snap.Expirations[0]
			}

			quote := snap.Quote(spec.Expiry, spec.Strike, spec.Side)
			if quote == nil {
				output.Error("No %s contract at strike %.3f for expiry %s", spec.Side, spec.Strike, spec.Expiry)
				output.Dim("Use 'gamma-guide chain --expiry %s' to list strikes", spec.Expiry)
				return errors.ErrQuoteNotFound
			}

			profile := risk.Evaluate(quote, spec)
			if profile == nil {
				output.Error("Order could not be evaluated")
				return errors.ErrInvalidOrder
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"order": spec,
					"spot":  snap.Spot,
					"price": risk.EffectivePrice(*quote, spec),
					"risk":  profile,
				})
			}

			displayRisk(output, snap.Symbol, snap.Spot, spec, *quote, profile)
			return nil
		},
	}

	addOrderFlags(cmd)
	return cmd
}

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Paper order journal",
		Long:  "Place paper orders against the synthetic chain and review past orders.",
	}

	place := &cobra.Command{
		Use:   "place",
		Short: "Place a paper order",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Journal == nil {
				output.Error("Order journal unavailable")
				return errors.ErrDatabaseError
			}

			spec, err := orderSpecFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			snap, _ := app.snapshot(cmd.Context())
			if spec.Expiry == "" {
				spec.Expiry = snap.Expirations[0]
			}

			quote := snap.Quote(spec.Expiry, spec.Strike, spec.Side)
			if quote == nil {
				output.Error("No %s contract at strike %.3f for expiry %s", spec.Side, spec.Strike, spec.Expiry)
				return errors.ErrQuoteNotFound
			}

			profile := risk.Evaluate(quote, spec)
			if profile == nil {
				output.Error("Order could not be evaluated")
				return errors.ErrInvalidOrder
			}

			entry := &models.JournalEntry{
				PlacedAt: time.Now().UTC(),
				Symbol:   snap.Symbol,
				Spot:     snap.Spot,
				Order:    spec,
				Price:    risk.EffectivePrice(*quote, spec),
				Risk:     *profile,
			}

			id, err := app.Journal.SaveOrder(cmd.Context(), entry)
			if err != nil {
				output.Error("Failed to journal order: %v", err)
				return err
			}
			entry.ID = id

			logging.LogOrder(app.Logger, entry.Symbol, string(spec.Side), string(spec.OrderSide),
				spec.Quantity, profile.Total)

			if output.IsJSON() {
				return output.JSON(entry)
			}

			output.Success("Order #%d journaled", id)
			displayRisk(output, snap.Symbol, snap.Spot, spec, *quote, profile)
			return nil
		},
	}
	addOrderFlags(place)

	list := &cobra.Command{
		Use:   "list",
		Short: "List journaled orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Journal == nil {
				output.Error("Order journal unavailable")
				return errors.ErrDatabaseError
			}

			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := app.Journal.ListOrders(cmd.Context(), limit)
			if err != nil {
				output.Error("Failed to read journal: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}

			if len(entries) == 0 {
				output.Dim("No journaled orders")
				return nil
			}

			output.Bold("Order Journal")
			output.Printf("%-5s %-17s %-10s %-12s %9s %5s %5s %4s %10s\n",
				"ID", "Placed", "Symbol", "Expiry", "Strike", "Side", "B/S", "Qty", "Total")
			output.Println(strings.Repeat("─", 86))
			for _, e := range entries {
				output.Printf("%-5d %-17s %-10s %-12s %9.3f %5s %5s %4d %10s\n",
					e.ID,
					e.PlacedAt.UTC().Format("2006-01-02 15:04"),
					e.Symbol,
					e.Order.Expiry,
					e.Order.Strike,
					e.Order.Side,
					e.Order.OrderSide,
					e.Order.Quantity,
					utils.FormatUSD(e.Risk.Total))
			}
			return nil
		},
	}
	list.Flags().Int("limit", 20, "Maximum number of orders to show")

	cmd.AddCommand(place)
	cmd.AddCommand(list)
	return cmd
}

func addOrderFlags(cmd *cobra.Command) {
	cmd.Flags().String("expiry", "", "Expiration date (YYYY-MM-DD), default nearest")
	cmd.Flags().Float64("strike", 0, "Strike price (required)")
	cmd.Flags().String("side", "call", "Contract side: call or put")
	cmd.Flags().String("action", "buy", "Order direction: buy or sell")
	cmd.Flags().Int("qty", 1, "Number of contracts")
	cmd.Flags().Float64("limit-price", 0, "Limit price per share; omit for market order")
	cmd.MarkFlagRequired("strike")
}

func orderSpecFromFlags(cmd *cobra.Command) (models.OrderSpec, error) {
	expiry, _ := cmd.Flags().GetString("expiry")
	strike, _ := cmd.Flags().GetFloat64("strike")
	side, _ := cmd.Flags().GetString("side")
	action, _ := cmd.Flags().GetString("action")
	qty, _ := cmd.Flags().GetInt("qty")
	limitPrice, _ := cmd.Flags().GetFloat64("limit-price")

	spec := models.OrderSpec{
		Expiry:    expiry,
		Strike:    strike,
		Quantity:  qty,
		OrderType: models.Market,
	}

	switch strings.ToLower(side) {
	case "call":
		spec.Side = models.Call
	case "put":
		spec.Side = models.Put
	default:
		return spec, errors.NewValidationError("side", side, "must be call or put")
	}

	switch strings.ToLower(action) {
	case "buy":
		spec.OrderSide = models.Buy
	case "sell":
		spec.OrderSide = models.Sell
	default:
		return spec, errors.NewValidationError("action", action, "must be buy or sell")
	}

	if qty <= 0 {
		return spec, errors.NewValidationError("qty", qty, "must be positive")
	}
	if strike <= 0 {
		return spec, errors.NewValidationError("strike", strike, "must be positive")
	}

	if cmd.Flags().Changed("limit-price") {
		if limitPrice <= 0 {
			return spec, errors.NewValidationError("limit-price", limitPrice, "must be positive")
		}
		spec.OrderType = models.Limit
		spec.LimitPrice = &limitPrice
	}

	return spec, nil
}

func displayRisk(output *Output, symbol string, spot float64, spec models.OrderSpec, quote models.OptionQuote, profile *models.RiskProfile) {
	output.Bold("%s %s $%.3f %s x%d (%s)",
		symbol, utils.FormatExpiryLabel(spec.Expiry), spec.Strike,
		strings.ToUpper(string(spec.Side)), spec.Quantity, spec.OrderSide)
	output.Printf("  Spot: %s  Bid/Ask: %.2f / %.2f  IV: %.1f%%\n\n",
		utils.FormatPrice(spot), quote.Bid, quote.Ask, quote.IV)

	output.Bold("Cost Breakdown")
	output.Printf("  Premium:         %s\n", utils.FormatUSD(profile.Premium))
	output.Printf("  Regulatory Fee:  %s\n", utils.FormatUSD(profile.RegFee))
	output.Printf("  Exchange Fee:    %s\n", utils.FormatUSD(profile.ExchangeFee))
	output.Printf("  Contract Fee:    %s\n", utils.FormatUSD(profile.ContractFee))
	output.Printf("  Total:           %s\n\n", output.BoldText(utils.FormatUSD(profile.Total)))

	output.Bold("Risk Profile")
	if profile.MaxProfitUnbounded {
		output.Printf("  Max Profit:      %s\n", output.ColoredString(ColorGreen, "Unlimited"))
	} else {
		output.Printf("  Max Profit:      %s\n", output.Signed(1, utils.FormatUSD(profile.MaxProfit)))
	}
	output.Printf("  Breakeven:       %.2f\n", profile.Breakeven)
	if profile.MaxLossUnbounded {
		output.Printf("  Max Loss:        %s\n", output.ColoredString(ColorRed, "Unlimited"))
	} else {
		output.Printf("  Max Loss:        %s\n", output.Signed(-1, utils.FormatUSD(profile.MaxLoss)))
	}
}
