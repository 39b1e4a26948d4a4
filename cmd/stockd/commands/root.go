package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockd",
	Short: "Stock analysis and discovery engine",
	Long: `stockd - composite stock scoring and market discovery

Scores stocks across eight analysis categories, runs concurrent
discovery scans over curated ticker universes and serves the
results over a REST API.

Usage:
  go run ./cmd/stockd [command]

Examples:
  go run ./cmd/stockd api
  go run ./cmd/stockd analyze AAPL
  go run ./cmd/stockd scan gainers
  go run ./cmd/stockd warm`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
