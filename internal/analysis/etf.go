package analysis

import (
	"fmt"
	"strings"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

// ETFBenchmark is a low-cost reference fund for a category
type ETFBenchmark struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	TER    float64 `json:"ter"`
}

// ETFAlternative is a cheaper fund suggested in place of the analyzed one
type ETFAlternative struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	TER    float64 `json:"ter"`
	Reason string  `json:"reason"`
}

// ETFReport is the fund-specific analysis output
type ETFReport struct {
	TER           *float64             `json:"ter"`
	Category      string               `json:"category"`
	IsBestInClass bool                 `json:"is_best_in_class"`
	Alternatives  []ETFAlternative     `json:"alternatives"`
	Holdings      []marketdata.Holding `json:"holdings"`
	TotalAssets   *float64             `json:"total_assets"`
}

// Reference funds matched by category substring, first match wins
var etfBenchmarks = []struct {
	Key   string
	Bench ETFBenchmark
}{
	{"S&P 500", ETFBenchmark{Ticker: "VOO", Name: "Vanguard S&P 500 ETF", TER: 0.03}},
	{"Nasdaq 100", ETFBenchmark{Ticker: "QQQM", Name: "Invesco NASDAQ 100 ETF", TER: 0.15}},
	{"Total Stock Market", ETFBenchmark{Ticker: "VTI", Name: "Vanguard Total Stock Market ETF", TER: 0.03}},
	{"Dividend Growth", ETFBenchmark{Ticker: "SCHD", Name: "Schwab US Dividend Equity ETF", TER: 0.06}},
	{"High Dividend", ETFBenchmark{Ticker: "VYM", Name: "Vanguard High Dividend Yield ETF", TER: 0.06}},
	{"World Stock", ETFBenchmark{Ticker: "VT", Name: "Vanguard World Stock ETF", TER: 0.07}},
	{"Emerging Markets", ETFBenchmark{Ticker: "VWO", Name: "Vanguard FTSE Emerging Markets ETF", TER: 0.08}},
	{"Value", ETFBenchmark{Ticker: "VTV", Name: "Vanguard Value ETF", TER: 0.04}},
	{"Growth", ETFBenchmark{Ticker: "VUG", Name: "Vanguard Growth ETF", TER: 0.04}},
}

// AnalyzeETF compares a fund's expense ratio against the cheapest
// benchmark in its category and suggests alternatives.
func (a *Analyzer) AnalyzeETF(snap *marketdata.Snapshot) ETFReport {
	fund := snap.Fundamentals

	report := ETFReport{
		TER:           fund.ExpenseRatio,
		Category:      fund.Category,
		IsBestInClass: true,
		Alternatives:  []ETFAlternative{},
		Holdings:      snap.ETFHoldings,
		TotalAssets:   fund.TotalAssets,
	}

	category := strings.ToLower(fund.Category)
	for _, entry := range etfBenchmarks {
		if !strings.Contains(category, strings.ToLower(entry.Key)) {
			continue
		}
		bench := entry.Bench
		if fund.ExpenseRatio != nil && *fund.ExpenseRatio > bench.TER+0.05 {
			report.IsBestInClass = false
			report.Alternatives = append(report.Alternatives, ETFAlternative{
				Ticker: bench.Ticker,
				Name:   bench.Name,
				TER:    bench.TER,
				Reason: fmt.Sprintf("Günstigere Alternative im Bereich %s", fund.Category),
			})
		}
		break
	}

	return report
}
