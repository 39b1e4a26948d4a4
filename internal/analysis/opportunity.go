package analysis

import (
	"fmt"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzeOpportunities collects bullish catalysts. The mirror image of
// analyzeFearFactors: score only moves up.
func (a *Analyzer) analyzeOpportunities(snap *marketdata.Snapshot) CategoryResult {
	fund := snap.Fundamentals
	analyst := snap.Analyst
	price := snap.Price
	comparison := snap.Comparison

	findings := make([]Finding, 0, 8)
	score := 0.0

	if fund.RevenueGrowth != nil && *fund.RevenueGrowth > 0.15 {
		findings = append(findings, Finding{
			Metric:         "Strong Growth",
			Value:          fmt.Sprintf("%.1f%% revenue growth", *fund.RevenueGrowth*100),
			Rating:         Positive,
			Interpretation: "Business expanding rapidly",
		})
		score += 15
	}

	if fund.ProfitMargin != nil && *fund.ProfitMargin > 0.20 {
		findings = append(findings, Finding{
			Metric:         "High Profitability",
			Value:          fmt.Sprintf("%.1f%% profit margin", *fund.ProfitMargin*100),
			Rating:         Positive,
			Interpretation: "Strong pricing power and efficiency",
		})
		score += 10
	}

	if fund.TotalCash != nil && fund.TotalDebt != nil && *fund.TotalCash > *fund.TotalDebt {
		findings = append(findings, Finding{
			Metric:         "Net Cash Position",
			Value:          fmt.Sprintf("$%.1fB net cash", (*fund.TotalCash-*fund.TotalDebt)/1e9),
			Rating:         Positive,
			Interpretation: "Strong financial position - flexibility for growth or buybacks",
		})
		score += 15
	}

	if price.CurrentPrice != nil && analyst.TargetMean != nil && *price.CurrentPrice > 0 {
		target := *analyst.TargetMean
		upside := (target / *price.CurrentPrice - 1) * 100

		if upside > 20 {
			findings = append(findings, Finding{
				Metric:         "Analyst Upside",
				Value:          fmt.Sprintf("+%.0f%% to target $%.2f", upside, target),
				Rating:         Positive,
				Interpretation: "Analysts see significant upside potential",
			})
			score += 15
		} else if upside > 0 {
			findings = append(findings, Finding{
				Metric:         "Analyst Target",
				Value:          fmt.Sprintf("+%.0f%% to target $%.2f", upside, target),
				Rating:         Neutral,
				Interpretation: "Modest upside according to analysts",
			})
		}
	}

	if fund.PERatio != nil && *fund.PERatio > 0 && *fund.PERatio < 15 {
		findings = append(findings, Finding{
			Metric:         "Value Opportunity",
			Value:          fmt.Sprintf("P/E of %.1f", *fund.PERatio),
			Rating:         Positive,
			Interpretation: "Trading at attractive valuation",
		})
		score += 10
	}

	if comparison.RelativePerformance != nil && *comparison.RelativePerformance > 15 {
		findings = append(findings, Finding{
			Metric:         "Market Outperformance",
			Value:          fmt.Sprintf("+%.1f%% vs index", *comparison.RelativePerformance),
			Rating:         Positive,
			Interpretation: "Demonstrating relative strength",
		})
		score += 10
	}

	if fund.DividendYield != nil && *fund.DividendYield > 0.02 {
		findings = append(findings, Finding{
			Metric:         "Dividend Income",
			Value:          fmt.Sprintf("%.2f%% yield", *fund.DividendYield*100),
			Rating:         Positive,
			Interpretation: "Provides income while waiting",
		})
		score += 5
	}

	if fund.FreeCashflow != nil && fund.MarketCap != nil &&
		*fund.FreeCashflow > 0 && *fund.MarketCap > 0 {
		fcfYield := *fund.FreeCashflow / *fund.MarketCap * 100
		if fcfYield > 5 {
			findings = append(findings, Finding{
				Metric:         "FCF Yield",
				Value:          fmt.Sprintf("%.1f%%", fcfYield),
				Rating:         Positive,
				Interpretation: "Strong cash generation relative to valuation",
			})
			score += 10
		}
	}

	if len(findings) == 0 {
		findings = append(findings, Finding{
			Metric:         "Limited Catalysts",
			Value:          "-",
			Rating:         Neutral,
			Interpretation: "No obvious near-term catalysts identified",
		})
	}

	positives := 0
	for _, f := range findings {
		if f.Rating == Positive {
			positives++
		}
	}

	return CategoryResult{
		Category: "Opportunities & Catalysts",
		Findings: findings,
		Score:    clampScore(score),
		Summary:  fmt.Sprintf("Identified %d positive factors", positives),
	}
}
