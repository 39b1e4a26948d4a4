package analysis

import (
	"fmt"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzePricePerformance scores price changes over several timeframes
func (a *Analyzer) analyzePricePerformance(snap *marketdata.Snapshot) CategoryResult {
	price := snap.Price
	if price.Err != "" {
		return noDataResult("Price Performance", price.Err)
	}

	findings := make([]Finding, 0, 8)
	score := 0.0

	if price.CurrentPrice != nil {
		currency := price.Currency
		if currency == "" {
			currency = "USD"
		}
		findings = append(findings, Finding{
			Metric: "Current Price",
			Value:  fmt.Sprintf("%.2f %s", *price.CurrentPrice, currency),
			Rating: Neutral,
		})
	}

	periods := []struct {
		change *float64
		label  string
	}{
		{price.Change1W, "1 Week"},
		{price.Change1M, "1 Month"},
		{price.Change6M, "6 Months"},
		{price.Change1Y, "1 Year"},
	}

	for _, p := range periods {
		if p.change == nil {
			continue
		}
		change := *p.change

		rating := Neutral
		if change > 5 {
			rating = Positive
		} else if change < -5 {
			rating = Negative
		}

		score += change / 10

		findings = append(findings, Finding{
			Metric: fmt.Sprintf("Performance %s", p.label),
			Value:  fmt.Sprintf("%+.2f%%", change),
			Rating: rating,
		})
	}

	if price.From52WHigh != nil {
		rating := Neutral
		if *price.From52WHigh < -20 {
			rating = Negative
		}
		findings = append(findings, Finding{
			Metric: "From 52-Week High",
			Value:  fmt.Sprintf("%.2f%%", *price.From52WHigh),
			Rating: rating,
		})
	}

	if price.From52WLow != nil {
		rating := Neutral
		if *price.From52WLow > 20 {
			rating = Positive
		}
		findings = append(findings, Finding{
			Metric: "From 52-Week Low",
			Value:  fmt.Sprintf("+%.2f%%", *price.From52WLow),
			Rating: rating,
		})
	}

	change1Y := 0.0
	if price.Change1Y != nil {
		change1Y = *price.Change1Y
	}

	var summary string
	switch {
	case change1Y > 30:
		summary = "Strong uptrend over the past year"
	case change1Y > 10:
		summary = "Moderate positive performance"
	case change1Y > -10:
		summary = "Sideways movement, no clear trend"
	case change1Y > -30:
		summary = "Moderate decline over the past year"
	default:
		summary = "Significant downtrend - caution advised"
	}

	return CategoryResult{
		Category: "Price Performance",
		Findings: findings,
		Score:    clampScore(score),
		Summary:  summary,
	}
}
