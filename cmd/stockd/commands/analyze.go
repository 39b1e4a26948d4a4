package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Playwithbroken/stock-analysis-tool/internal/analysis"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker>",
	Short: "Score a single ticker",
	Long: `Runs the full eight-category analysis for one ticker and prints
the recommendation.

Example:
  go run ./cmd/stockd analyze AAPL
  go run ./cmd/stockd analyze MSFT --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeJSON bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw recommendation as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	ticker := strings.ToUpper(args[0])

	snap, err := s.provider.Snapshot(context.Background(), ticker)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", ticker, err)
	}

	rec := s.analyzer.Score(snap)

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	printRecommendation(rec)
	return nil
}

func printRecommendation(rec *analysis.Recommendation) {
	fmt.Printf("=== %s (%s) ===\n\n", rec.CompanyName, rec.Ticker)
	fmt.Printf("Total score: %.1f\n", rec.TotalScore)
	fmt.Printf("Action:      %s\n", rec.Action)
	fmt.Printf("Valuation:   %s\n", rec.Valuation)
	fmt.Printf("Verdict:     %s\n\n", rec.Verdict)

	for _, key := range []string{
		analysis.CategoryFundamentals,
		analysis.CategoryFear,
		analysis.CategoryOpportunities,
		analysis.CategoryPrice,
		analysis.CategoryVolatility,
		analysis.CategoryNews,
		analysis.CategoryInsider,
		analysis.CategoryPeers,
	} {
		result := rec.Categories[key]
		fmt.Printf("[%s] %.0f - %s\n", key, result.Score, result.Summary)
		for _, f := range result.Findings {
			fmt.Printf("  %-28s %-16s %s\n", f.Metric, f.Value, f.Rating)
		}
	}

	fmt.Printf("\nPotential: %.0f - %s\n", rec.Potential.Score, rec.Potential.Summary)
	fmt.Printf("Rebound:   %.0f - %s\n", rec.Rebound.Score, rec.Rebound.Summary)
	fmt.Printf("\nShort term: %s\nLong term:  %s\n", rec.ShortTerm, rec.LongTerm)
}
