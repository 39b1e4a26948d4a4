package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <name>",
	Short: "Run a discovery scan once and print the results",
	Long: `Runs one discovery scan and prints the ranked results as JSON.

Available scans:
  trending, gainers, losers, rebounds, small-caps, moonshots,
  dividends, etfs, cryptos, commodities, stars, heatmap, high-risk

Example:
  go run ./cmd/stockd scan gainers
  go run ./cmd/stockd scan high-risk --min-score 55`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var scanMinScore float64

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Float64Var(&scanMinScore, "min-score", 0, "minimum opportunity score for the high-risk scan")
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := context.Background()

	var results interface{}
	switch args[0] {
	case "trending":
		results = s.discovery.Trending(ctx)
	case "gainers":
		results = s.discovery.MarketMovers(ctx, "gainers")
	case "losers":
		results = s.discovery.MarketMovers(ctx, "losers")
	case "rebounds":
		results = s.discovery.Rebounds(ctx)
	case "small-caps":
		results = s.discovery.SmallCaps(ctx)
	case "moonshots":
		results = s.discovery.Moonshots(ctx)
	case "dividends":
		results = s.discovery.DividendPayers(ctx)
	case "etfs":
		results = s.discovery.ETFs(ctx)
	case "cryptos":
		results = s.discovery.Cryptos(ctx)
	case "commodities":
		results = s.discovery.Commodities(ctx)
	case "stars":
		results = s.discovery.StarAssets(ctx)
	case "heatmap":
		results = s.discovery.Heatmap(ctx)
	case "high-risk":
		results = s.riskscan.ScanOpportunities(ctx, scanMinScore)
	default:
		return fmt.Errorf("unknown scan %q", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
