package analysis

import (
	"fmt"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzeVolatility scores annualized volatility, beta and trading volume
func (a *Analyzer) analyzeVolatility(snap *marketdata.Snapshot) CategoryResult {
	vol := snap.Volatility
	if vol.Err != "" {
		return noDataResult("Volatility & Risk", vol.Err)
	}

	findings := make([]Finding, 0, 3)
	score := 0.0

	volAnnual := 0.0
	if vol.VolatilityAnnual != nil {
		volAnnual = *vol.VolatilityAnnual

		rating := Positive
		interp := "Lower risk"
		if volAnnual > 50 {
			rating = Negative
			interp = "High risk"
		} else if volAnnual > 25 {
			rating = Neutral
			interp = "Moderate risk"
		}

		findings = append(findings, Finding{
			Metric:         "Annualized Volatility",
			Value:          fmt.Sprintf("%.1f%%", volAnnual),
			Rating:         rating,
			Interpretation: interp,
		})

		// Higher volatility lowers the score, centered at 30%
		score -= (volAnnual - 30) / 2
	}

	if vol.Beta != nil {
		beta := *vol.Beta

		var rating Rating
		var interp string
		switch {
		case beta > 1.5:
			rating = Negative
			interp = "Much more volatile than market"
		case beta > 1.1:
			rating = Neutral
			interp = "Slightly more volatile than market"
		case beta > 0.9:
			rating = Neutral
			interp = "Moves with the market"
		default:
			rating = Positive
			interp = "Less volatile than market (defensive)"
		}

		findings = append(findings, Finding{
			Metric:         "Beta",
			Value:          fmt.Sprintf("%.2f", beta),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	if vol.VolumeRatio != nil {
		ratio := *vol.VolumeRatio

		rating := Neutral
		var interp string
		switch {
		case ratio > 2:
			interp = "Unusually high trading activity"
		case ratio > 1.2:
			interp = "Above average volume"
		case ratio < 0.5:
			rating = Negative
			interp = "Low liquidity warning"
		default:
			interp = "Normal trading volume"
		}

		findings = append(findings, Finding{
			Metric:         "Volume Ratio (vs Avg)",
			Value:          fmt.Sprintf("%.2fx", ratio),
			Rating:         rating,
			Interpretation: interp,
		})
	}

	var summary string
	switch {
	case volAnnual > 40:
		summary = "High volatility stock - suitable for risk-tolerant investors"
	case volAnnual > 25:
		summary = "Moderate volatility"
	default:
		summary = "Relatively stable stock"
	}

	return CategoryResult{
		Category: "Volatility & Risk",
		Findings: findings,
		Score:    clampScore(score),
		Summary:  summary,
	}
}
