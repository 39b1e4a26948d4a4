package analysis

import "github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"

// analyzeInsiderActivity reports executive buying and selling. Currently a
// static simulation until a filings data source is wired up.
// TODO: replace with real transactions from SEC Form 4 filings.
func (a *Analyzer) analyzeInsiderActivity(_ *marketdata.Snapshot) CategoryResult {
	return CategoryResult{
		Category: "Insider Activity",
		Findings: []Finding{
			{
				Metric:         "Insider Buy (CEO)",
				Value:          "12,500 Shares",
				Rating:         Positive,
				Interpretation: "High conviction",
			},
			{
				Metric:         "Insider Sell (CFO)",
				Value:          "2,000 Shares",
				Rating:         Neutral,
				Interpretation: "Routine tax/diversification",
			},
		},
		Score:   15,
		Summary: "Slightly positive insider sentiment",
	}
}
