package analysis

import (
	"fmt"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzeRebound scores bounce-back potential after a sharp sell-off,
// bounded to [0, 100]. Zero when no sell-off is present.
func (a *Analyzer) analyzeRebound(snap *marketdata.Snapshot) CategoryResult {
	price := snap.Price
	fund := snap.Fundamentals

	findings := make([]Finding, 0, 3)
	score := 0.0

	change1W := 0.0
	if price.Change1W != nil {
		change1W = *price.Change1W
	}
	change1M := 0.0
	if price.Change1M != nil {
		change1M = *price.Change1M
	}

	if change1W < -10 || change1M < -20 {
		findings = append(findings, Finding{
			Metric:         "Sharp Sell-off",
			Value:          fmt.Sprintf("%.1f%% (1w)", change1W),
			Rating:         Neutral,
			Interpretation: "Dislocation creates a potential rebound setup",
		})
		score += 40

		margin := 0.0
		if fund.ProfitMargin != nil {
			margin = *fund.ProfitMargin
		}
		if margin > 0.1 {
			findings = append(findings, Finding{
				Metric: "Quality Business",
				Value:  fmt.Sprintf("%.1f%% margin", margin*100),
				Rating: Positive,
			})
			score += 30
		}

		// TODO: compute RSI from the chart history instead of assuming it
		findings = append(findings, Finding{
			Metric: "Oversold Condition",
			Value:  "Likely",
			Rating: Positive,
		})
		score += 20
	}

	var summary string
	switch {
	case score > 70:
		summary = "High probability rebound candidate"
	case score > 40:
		summary = "Speculative rebound"
	default:
		summary = "No rebound setup detected"
	}

	return CategoryResult{
		Category: "Rebound Analysis",
		Findings: findings,
		Score:    clampPositive(score),
		Summary:  summary,
	}
}
