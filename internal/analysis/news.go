package analysis

import (
	"strings"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

const maxScoredHeadlines = 15

var positiveKeywords = []string{
	"beat", "growth", "profit", "upgrade", "buy", "outperform",
	"raise", "positive", "strong", "record", "bullish", "superior",
}

var negativeKeywords = []string{
	"miss", "cut", "downgrade", "sell", "loss", "decline", "weak",
	"concern", "risk", "warning", "lawsuit", "investigation", "bearish",
}

var trustedSources = []string{
	"Bloomberg", "Reuters", "CNBC", "Financial Times", "Wall Street Journal",
	"Yahoo Finance", "Forbes", "MarketWatch", "Barrons", "Seeking Alpha",
	"Business Insider", "The Economist", "investors.com", "Investor's Business Daily",
}

func isTrustedSource(source string) bool {
	if source == "" {
		return false
	}
	lower := strings.ToLower(source)
	for _, trusted := range trustedSources {
		if strings.Contains(lower, strings.ToLower(trusted)) {
			return true
		}
	}
	return false
}

// analyzeNewsSentiment scores recent headlines by keyword matching.
// Headlines from trusted outlets count 1.5x.
func (a *Analyzer) analyzeNewsSentiment(snap *marketdata.Snapshot) CategoryResult {
	news := snap.News
	if len(news) == 0 {
		return CategoryResult{
			Category: "Recent News",
			Findings: []Finding{{
				Metric:         "No Recent News",
				Value:          "-",
				Rating:         Neutral,
				Interpretation: "No recent news available",
			}},
			Score:   0,
			Summary: "Unable to assess news sentiment",
		}
	}

	if len(news) > maxScoredHeadlines {
		news = news[:maxScoredHeadlines]
	}

	findings := make([]Finding, 0, len(news))
	total := 0.0
	trustedPositive := false
	trustedNegative := false

	for _, item := range news {
		title := strings.ToLower(item.Title)
		trusted := isTrustedSource(item.Publisher)

		posCount := 0
		for _, kw := range positiveKeywords {
			if strings.Contains(title, kw) {
				posCount++
			}
		}
		negCount := 0
		for _, kw := range negativeKeywords {
			if strings.Contains(title, kw) {
				negCount++
			}
		}

		rating := Neutral
		itemScore := 0.0
		sentiment := "neutral"
		if posCount > negCount {
			rating = Positive
			itemScore = 1
			sentiment = "positive"
			if trusted {
				trustedPositive = true
			}
		} else if negCount > posCount {
			rating = Negative
			itemScore = -1
			sentiment = "negative"
			if trusted {
				trustedNegative = true
			}
		}

		if trusted {
			itemScore *= 1.5
		}
		total += itemScore

		interp := sentiment
		if trusted {
			interp = sentiment + " (verified source)"
		}

		findings = append(findings, Finding{
			Metric:         item.Title,
			Value:          item.Publisher,
			Rating:         rating,
			Interpretation: interp,
		})
	}

	avg := total / float64(len(news))

	var summary string
	switch {
	case avg > 0.3:
		summary = "Positive news sentiment identified"
		if trustedPositive {
			summary = "Generally positive news flow from verified sources"
		}
	case avg < -0.3:
		summary = "Caution: Negative news sentiment detected"
		if trustedNegative {
			summary = "Negative news sentiment - monitor closely (Verified alerts present)"
		}
	default:
		summary = "Mixed or neutral news sentiment"
	}

	return CategoryResult{
		Category: "Recent News",
		Findings: findings,
		Score:    clampScore(avg * 50),
		Summary:  summary,
	}
}
