package analysis

import (
	"fmt"
	"math"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzeFearFactors collects bearish signals across sentiment, balance
// sheet, volatility and valuation. Score only ever moves down; a clean
// snapshot scores zero with a single "no red flags" finding.
func (a *Analyzer) analyzeFearFactors(snap *marketdata.Snapshot) CategoryResult {
	fund := snap.Fundamentals
	short := snap.ShortInterest
	vol := snap.Volatility
	price := snap.Price

	findings := make([]Finding, 0, 8)
	score := 0.0

	if short.ShortPercentFloat != nil {
		shortPct := *short.ShortPercentFloat
		// Providers report this either as a fraction or a percentage
		if shortPct < 1 {
			shortPct *= 100
		}

		rating := Neutral
		interp := "Low short interest"
		switch {
		case shortPct > 20:
			rating = VeryNegative
			interp = "Very high short interest - significant bearish sentiment"
			score -= 25
		case shortPct > 10:
			rating = Negative
			interp = "Elevated short interest - notable bearish bets"
			score -= 15
		case shortPct > 5:
			interp = "Moderate short interest"
			score -= 5
		}

		findings = append(findings, Finding{
			Metric:         "Short Interest (% Float)",
			Value:          fmt.Sprintf("%.1f%%", shortPct),
			Rating:         rating,
			Interpretation: interp,
			Category:       "Market Sentiment",
		})
	}

	if short.ShortRatio != nil {
		ratio := *short.ShortRatio

		rating := Neutral
		interp := "Low days to cover"
		if ratio > 10 {
			rating = Negative
			interp = "High days to cover - potential short squeeze but also high bearishness"
		} else if ratio > 5 {
			interp = "Moderate short covering timeline"
		}

		findings = append(findings, Finding{
			Metric:         "Days to Cover",
			Value:          fmt.Sprintf("%.1f days", ratio),
			Rating:         rating,
			Interpretation: interp,
			Category:       "Market Sentiment",
		})
	}

	if fund.DebtToEquity != nil && *fund.DebtToEquity > 150 {
		findings = append(findings, Finding{
			Metric:         "High Leverage Risk",
			Value:          fmt.Sprintf("D/E: %.0f%%", *fund.DebtToEquity),
			Rating:         Negative,
			Interpretation: "High debt levels increase risk in downturn or rising rates",
			Category:       "Financial Risk",
		})
		score -= 15
	}

	if fund.FreeCashflow != nil && *fund.FreeCashflow < 0 {
		findings = append(findings, Finding{
			Metric:         "Cash Burn",
			Value:          fmt.Sprintf("$%.0fM negative FCF", math.Abs(*fund.FreeCashflow)/1e6),
			Rating:         Negative,
			Interpretation: "Company burning cash - may need financing",
			Category:       "Financial Risk",
		})
		score -= 15
	}

	if vol.VolatilityAnnual != nil && *vol.VolatilityAnnual > 50 {
		findings = append(findings, Finding{
			Metric:         "High Volatility",
			Value:          fmt.Sprintf("%.1f%% annual", *vol.VolatilityAnnual),
			Rating:         Negative,
			Interpretation: "Expect large price swings - not for conservative investors",
			Category:       "Market Risk",
		})
		score -= 10
	}

	if price.From52WHigh != nil && *price.From52WHigh < -30 {
		findings = append(findings, Finding{
			Metric:         "Significant Drawdown",
			Value:          fmt.Sprintf("%.1f%% from 52W high", *price.From52WHigh),
			Rating:         Negative,
			Interpretation: "Stock has fallen significantly - may indicate problems or opportunity",
			Category:       "Price Risk",
		})
		score -= 10
	}

	if fund.RevenueGrowth != nil && *fund.RevenueGrowth < 0 {
		findings = append(findings, Finding{
			Metric:         "Revenue Decline",
			Value:          fmt.Sprintf("%.1f%%", *fund.RevenueGrowth*100),
			Rating:         Negative,
			Interpretation: "Shrinking business - structural concerns",
			Category:       "Business Risk",
		})
		score -= 15
	}

	if fund.PERatio != nil && *fund.PERatio > 30 &&
		fund.EarningsGrowth != nil && *fund.EarningsGrowth < 0.1 {
		findings = append(findings, Finding{
			Metric:         "Valuation Risk",
			Value:          fmt.Sprintf("P/E %.0f with %.0f%% growth", *fund.PERatio, *fund.EarningsGrowth*100),
			Rating:         Negative,
			Interpretation: "High valuation not supported by growth",
			Category:       "Valuation Risk",
		})
		score -= 15
	}

	if len(findings) == 0 {
		findings = append(findings, Finding{
			Metric:         "No Major Red Flags",
			Value:          "-",
			Rating:         Positive,
			Interpretation: "No significant fear factors identified",
		})
	}

	negatives := 0
	for _, f := range findings {
		if f.Rating == Negative || f.Rating == VeryNegative {
			negatives++
		}
	}

	return CategoryResult{
		Category: "Fear Factors & Risks",
		Findings: findings,
		Score:    clampScore(score),
		Summary:  fmt.Sprintf("Identified %d significant risk factors", negatives),
	}
}
