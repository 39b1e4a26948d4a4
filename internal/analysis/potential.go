package analysis

import (
	"fmt"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// analyzePotential scores long-term growth and upside, bounded to [0, 100]
func (a *Analyzer) analyzePotential(snap *marketdata.Snapshot) CategoryResult {
	fund := snap.Fundamentals
	analyst := snap.Analyst
	price := snap.Price

	findings := make([]Finding, 0, 3)
	score := 0.0

	revGrowth := 0.0
	if fund.RevenueGrowth != nil {
		revGrowth = *fund.RevenueGrowth
	}
	if revGrowth > 0.25 {
		findings = append(findings, Finding{
			Metric: "Hyper Growth",
			Value:  fmt.Sprintf("%.1f%%", revGrowth*100),
			Rating: VeryPositive,
		})
		score += 30
	} else if revGrowth > 0.15 {
		findings = append(findings, Finding{
			Metric: "Strong Growth",
			Value:  fmt.Sprintf("%.1f%%", revGrowth*100),
			Rating: Positive,
		})
		score += 15
	}

	if price.CurrentPrice != nil && analyst.TargetMean != nil && *price.CurrentPrice > 0 {
		upside := (*analyst.TargetMean / *price.CurrentPrice - 1) * 100
		if upside > 30 {
			findings = append(findings, Finding{
				Metric: "High Upside",
				Value:  fmt.Sprintf("+%.1f%%", upside),
				Rating: VeryPositive,
			})
			score += 30
		} else if upside > 15 {
			findings = append(findings, Finding{
				Metric: "Moderate Upside",
				Value:  fmt.Sprintf("+%.1f%%", upside),
				Rating: Positive,
			})
			score += 10
		}
	}

	if fund.PEGRatio != nil {
		peg := *fund.PEGRatio
		if peg < 1.0 {
			findings = append(findings, Finding{
				Metric: "Attractive PEG",
				Value:  fmt.Sprintf("%.2f", peg),
				Rating: VeryPositive,
			})
			score += 10
		} else if peg < 1.5 {
			findings = append(findings, Finding{
				Metric: "Reasonable PEG",
				Value:  fmt.Sprintf("%.2f", peg),
				Rating: Positive,
			})
			score += 10
		}
	}

	var summary string
	switch {
	case score > 50:
		summary = "Exceptional growth potential identified"
	case score > 20:
		summary = "Moderate growth potential"
	default:
		summary = "Limited growth catalysts"
	}

	return CategoryResult{
		Category: "Potential Analysis",
		Findings: findings,
		Score:    clampPositive(score),
		Summary:  summary,
	}
}
