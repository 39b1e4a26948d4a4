package analysis

import (
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// Analyzer turns a market data snapshot into an explainable recommendation.
// All category functions are total: missing fields skip their rules, error
// markers degrade to a single no-data finding, and an empty snapshot yields
// a neutral all-zero recommendation. Score never panics or returns an error.
type Analyzer struct {
	logger *logger.Logger
}

// New creates a new analyzer
func New(log *logger.Logger) *Analyzer {
	return &Analyzer{
		logger: log.WithField("module", "analysis"),
	}
}

// Score runs every analysis category and aggregates the weighted total
func (a *Analyzer) Score(snap *marketdata.Snapshot) *Recommendation {
	if snap == nil {
		snap = &marketdata.Snapshot{}
	}

	price := a.analyzePricePerformance(snap)
	volatility := a.analyzeVolatility(snap)
	fundamentals := a.analyzeFundamentals(snap)
	fear := a.analyzeFearFactors(snap)
	opportunities := a.analyzeOpportunities(snap)
	news := a.analyzeNewsSentiment(snap)

	totalScore := fundamentals.Score*WeightFundamentals +
		fear.Score*WeightFear +
		opportunities.Score*WeightOpportunities +
		price.Score*WeightPrice +
		volatility.Score*WeightVolatility +
		news.Score*WeightNews

	action := actionForScore(totalScore)
	shortTerm, longTerm := horizonForAction(action)

	rec := &Recommendation{
		Ticker:      snap.Ticker,
		CompanyName: companyName(snap),
		Categories: map[string]CategoryResult{
			CategoryPrice:         price,
			CategoryVolatility:    volatility,
			CategoryFundamentals:  fundamentals,
			CategoryFear:          fear,
			CategoryOpportunities: opportunities,
			CategoryNews:          news,
			CategoryInsider:       a.analyzeInsiderActivity(snap),
			CategoryPeers:         a.analyzePeers(snap),
		},
		TotalScore: totalScore,
		Valuation:  a.determineValuation(snap),
		Action:     action,
		Verdict:    verdictForScore(totalScore),
		ShortTerm:  shortTerm,
		LongTerm:   longTerm,
		Potential:  a.analyzePotential(snap),
		Rebound:    a.analyzeRebound(snap),
	}

	a.logger.WithFields(map[string]interface{}{
		"ticker":      snap.Ticker,
		"total_score": totalScore,
		"action":      action,
		"valuation":   rec.Valuation,
	}).Debug("Scored instrument")

	return rec
}

// Verdict returns the one-line verdict for a snapshot
func (a *Analyzer) Verdict(snap *marketdata.Snapshot) string {
	return a.Score(snap).Verdict
}

func companyName(snap *marketdata.Snapshot) string {
	if snap.CompanyName != "" {
		return snap.CompanyName
	}
	return snap.Ticker
}
