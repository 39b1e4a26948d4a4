package analysis

import (
	"fmt"
	"math"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzeFundamentals scores valuation, profitability and balance sheet
// metrics against fixed threshold tables.
func (a *Analyzer) analyzeFundamentals(snap *marketdata.Snapshot) CategoryResult {
	fund := snap.Fundamentals
	if fund.Err != "" {
		return noDataResult("Fundamental Analysis", fund.Err)
	}

	findings := make([]Finding, 0, 10)
	score := 0.0

	// P/E Ratio: <0 -> -20, <15 -> +15, <25 -> 0, <40 -> -10, else -20
	if fund.PERatio != nil {
		pe := *fund.PERatio

		var rating Rating
		var interp string
		switch {
		case pe < 0:
			rating = VeryNegative
			interp = "Negative earnings - company is unprofitable"
			score -= 20
		case pe < 15:
			rating = Positive
			interp = "Low valuation - potentially undervalued"
			score += 15
		case pe < 25:
			rating = Neutral
			interp = "Fair valuation"
		case pe < 40:
			rating = Negative
			interp = "Expensive - high expectations priced in"
			score -= 10
		default:
			rating = VeryNegative
			interp = "Very expensive - significant downside risk"
			score -= 20
		}

		findings = append(findings, Finding{
			Metric:         "P/E Ratio",
			Value:          fmt.Sprintf("%.2f", pe),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// Forward P/E relative to trailing P/E
	if fund.ForwardPE != nil && fund.PERatio != nil {
		fwdPE := *fund.ForwardPE
		pe := *fund.PERatio

		if fwdPE < pe*0.85 {
			findings = append(findings, Finding{
				Metric:         "Forward P/E",
				Value:          fmt.Sprintf("%.2f", fwdPE),
				Rating:         Positive,
				Interpretation: "Earnings expected to grow significantly",
			})
			score += 10
		} else if fwdPE > pe*1.1 {
			findings = append(findings, Finding{
				Metric:         "Forward P/E",
				Value:          fmt.Sprintf("%.2f", fwdPE),
				Rating:         Negative,
				Interpretation: "Earnings expected to decline",
			})
			score -= 10
		}
	}

	// P/B Ratio
	if fund.PBRatio != nil {
		pb := *fund.PBRatio

		var rating Rating
		var interp string
		switch {
		case pb < 1:
			rating = Positive
			interp = "Trading below book value"
			score += 10
		case pb < 3:
			rating = Neutral
			interp = "Reasonable price to book"
		default:
			rating = Negative
			interp = "High premium to book value"
			score -= 5
		}

		findings = append(findings, Finding{
			Metric:         "P/B Ratio",
			Value:          fmt.Sprintf("%.2f", pb),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// EV/EBITDA
	if fund.EVEBITDA != nil {
		ev := *fund.EVEBITDA

		var rating Rating
		var interp string
		switch {
		case ev < 8:
			rating = Positive
			interp = "Cheap on enterprise value basis"
			score += 10
		case ev < 15:
			rating = Neutral
			interp = "Fair enterprise valuation"
		case ev < 25:
			rating = Negative
			interp = "Expensive enterprise valuation"
			score -= 10
		default:
			rating = VeryNegative
			interp = "Very high EV/EBITDA"
			score -= 15
		}

		findings = append(findings, Finding{
			Metric:         "EV/EBITDA",
			Value:          fmt.Sprintf("%.2f", ev),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// Profit margin
	if fund.ProfitMargin != nil {
		marginPct := *fund.ProfitMargin * 100

		var rating Rating
		var interp string
		switch {
		case marginPct > 20:
			rating = VeryPositive
			interp = "Excellent profitability"
			score += 15
		case marginPct > 10:
			rating = Positive
			interp = "Good profit margins"
			score += 5
		case marginPct > 0:
			rating = Neutral
			interp = "Modest profitability"
		default:
			rating = Negative
			interp = "Unprofitable"
			score -= 15
		}

		findings = append(findings, Finding{
			Metric:         "Profit Margin",
			Value:          fmt.Sprintf("%.1f%%", marginPct),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// Return on equity
	if fund.ROE != nil {
		roePct := *fund.ROE * 100

		var rating Rating
		var interp string
		switch {
		case roePct > 20:
			rating = VeryPositive
			interp = "Excellent return on equity"
			score += 10
		case roePct > 12:
			rating = Positive
			interp = "Good capital efficiency"
			score += 5
		case roePct > 0:
			rating = Neutral
			interp = "Modest returns"
		default:
			rating = Negative
			interp = "Destroying shareholder value"
			score -= 10
		}

		findings = append(findings, Finding{
			Metric:         "Return on Equity",
			Value:          fmt.Sprintf("%.1f%%", roePct),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// Revenue growth
	if fund.RevenueGrowth != nil {
		growthPct := *fund.RevenueGrowth * 100

		var rating Rating
		var interp string
		switch {
		case growthPct > 25:
			rating = VeryPositive
			interp = "High growth company"
			score += 15
		case growthPct > 10:
			rating = Positive
			interp = "Solid growth"
			score += 5
		case growthPct > 0:
			rating = Neutral
			interp = "Modest growth"
		case growthPct > -10:
			rating = Negative
			interp = "Revenue declining"
			score -= 10
		default:
			rating = VeryNegative
			interp = "Significant revenue decline"
			score -= 20
		}

		findings = append(findings, Finding{
			Metric:         "Revenue Growth",
			Value:          fmt.Sprintf("%.1f%%", growthPct),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// Debt to equity (reported in percent)
	if fund.DebtToEquity != nil {
		de := *fund.DebtToEquity

		var rating Rating
		var interp string
		switch {
		case de < 30:
			rating = VeryPositive
			interp = "Very low debt - strong balance sheet"
			score += 10
		case de < 80:
			rating = Positive
			interp = "Manageable debt levels"
			score += 5
		case de < 150:
			rating = Neutral
			interp = "Moderate leverage"
		case de < 250:
			rating = Negative
			interp = "High debt - financial risk"
			score -= 15
		default:
			rating = VeryNegative
			interp = "Excessive debt - high risk"
			score -= 25
		}

		findings = append(findings, Finding{
			Metric:         "Debt/Equity",
			Value:          fmt.Sprintf("%.1f%%", de),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	// Free cash flow
	if fund.FreeCashflow != nil {
		fcf := *fund.FreeCashflow

		if fcf > 0 {
			findings = append(findings, Finding{
				Metric:         "Free Cash Flow",
				Value:          formatMoney(fcf),
				Rating:         Positive,
				Interpretation: "Generating positive cash flow",
			})
			score += 10
		} else {
			findings = append(findings, Finding{
				Metric:         "Free Cash Flow",
				Value:          formatMoney(fcf),
				Rating:         Negative,
				Interpretation: "Burning cash",
			})
			score -= 15
		}
	}

	// Market cap classification, informational only
	if fund.MarketCap != nil {
		findings = append(findings, Finding{
			Metric: "Market Cap",
			Value:  formatMarketCap(*fund.MarketCap),
			Rating: Neutral,
		})
	}

	var summary string
	switch {
	case score > 30:
		summary = "Strong fundamentals - quality company at reasonable valuation"
	case score > 10:
		summary = "Solid fundamentals with some positive aspects"
	case score > -10:
		summary = "Mixed fundamentals - neither clearly cheap nor expensive"
	case score > -30:
		summary = "Weak fundamentals - several concerns"
	default:
		summary = "Poor fundamentals - significant risks present"
	}

	return CategoryResult{
		Category: "Fundamental Analysis",
		Findings: findings,
		Score:    clampScore(score),
		Summary:  summary,
	}
}

// formatMoney renders an absolute cash amount in billions or millions
func formatMoney(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	if abs > 1e9 {
		return fmt.Sprintf("%s$%.2fB", sign, abs/1e9)
	}
	return fmt.Sprintf("%s$%.1fM", sign, abs/1e6)
}

// formatMarketCap renders a market cap with its size bucket
func formatMarketCap(cap float64) string {
	switch {
	case cap > 200e9:
		return fmt.Sprintf("$%.0fB (Mega Cap)", cap/1e9)
	case cap > 10e9:
		return fmt.Sprintf("$%.1fB (Large Cap)", cap/1e9)
	case cap > 2e9:
		return fmt.Sprintf("$%.1fB (Mid Cap)", cap/1e9)
	case cap > 300e6:
		return fmt.Sprintf("$%.0fM (Small Cap)", cap/1e6)
	default:
		return fmt.Sprintf("$%.0fM (Micro Cap)", cap/1e6)
	}
}
