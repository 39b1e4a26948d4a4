package riskscan

import (
	"context"
	"fmt"
	"math"

	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// DefaultMinOpportunityScore is the floor applied when the caller does not
// specify one.
const DefaultMinOpportunityScore = 40.0

// Universe of high-risk candidates: small-cap growth, volatile tech,
// speculative biotech, crypto-adjacent, EV/clean energy, emerging tech.
var scanUniverse = []string{
	"SOFI", "PLTR", "PATH", "HOOD", "UPST", "FRGT", "MSTR",
	"SMCI", "ARM", "AI", "CELH", "IONQ", "RKLB",
	"CRSP", "EDIT", "NTLA", "BEAM",
	"COIN", "MARA", "RIOT", "CLSK",
	"RIVN", "LCID", "PLUG", "FCEL", "ENPH",
	"U", "SNOW", "DDOG", "NET", "CRWD",
}

// Opportunity is one high-risk, high-reward candidate. Risk, reward and
// opportunity scores are all bounded to [0, 100].
type Opportunity struct {
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	RiskScore        float64  `json:"risk_score"`
	RewardScore      float64  `json:"reward_score"`
	OpportunityScore float64  `json:"opportunity_score"`
	Recommendation   string   `json:"recommendation"`
	Confidence       string   `json:"confidence"`
	Price            *float64 `json:"price"`
	MarketCap        *float64 `json:"market_cap"`
	Reasons          []string `json:"reasons"`
	Volatility       float64  `json:"volatility"`
	Growth           float64  `json:"growth"`
	UpsidePotential  *float64 `json:"upside_potential"`
}

// Scanner screens a speculative universe for asymmetric risk-reward setups
type Scanner struct {
	provider marketdata.Provider
	scanner  *discovery.Scanner
	logger   *logger.Logger
}

// New creates a new risk scanner
func New(provider marketdata.Provider, scanner *discovery.Scanner, log *logger.Logger) *Scanner {
	return &Scanner{
		provider: provider,
		scanner:  scanner,
		logger:   log.WithField("module", "riskscan"),
	}
}

// ScanOpportunities scans the universe in parallel and returns the top
// candidates above the minimum opportunity score, best first.
func (s *Scanner) ScanOpportunities(ctx context.Context, minScore float64) []Opportunity {
	if minScore <= 0 {
		minScore = DefaultMinOpportunityScore
	}

	return discovery.Run(ctx, s.scanner, discovery.Policy[Opportunity]{
		Name:     "risk_opportunities",
		Universe: scanUniverse,
		Fetch: func(ctx context.Context, symbol string) (*Opportunity, error) {
			snap, err := s.provider.Snapshot(ctx, symbol)
			if err != nil {
				return nil, err
			}
			opp := Score(snap)
			return &opp, nil
		},
		Filter:  func(o Opportunity) bool { return o.OpportunityScore >= minScore },
		RankKey: func(o Opportunity) float64 { return o.OpportunityScore },
		Limit:   10,
	})
}

// Score computes the risk, reward and opportunity scores for one snapshot.
// Pure function over the snapshot; safe for concurrent fan-out.
func Score(snap *marketdata.Snapshot) Opportunity {
	fund := snap.Fundamentals
	price := snap.Price
	vol := snap.Volatility

	riskScore := 0.0
	rewardScore := 0.0
	reasons := make([]string, 0, 8)

	volAnnual := floatOrZero(vol.VolatilityAnnual)
	if volAnnual > 60 {
		riskScore += 30
		reasons = append(reasons, fmt.Sprintf("Extreme volatility: %.1f%% annual", volAnnual))
	} else if volAnnual > 40 {
		riskScore += 20
		reasons = append(reasons, fmt.Sprintf("High volatility: %.1f%% annual", volAnnual))
	}

	marketCap := floatOrZero(fund.MarketCap)
	if marketCap < 1e9 {
		riskScore += 25
		reasons = append(reasons, "Micro-cap: High liquidity risk")
	} else if marketCap < 5e9 {
		riskScore += 15
		reasons = append(reasons, "Small-cap: Elevated risk")
	}

	if floatOrZero(fund.ProfitMargin) < 0 {
		riskScore += 20
		reasons = append(reasons, "Unprofitable: Burning cash")
	}

	debtEquity := floatOrZero(fund.DebtToEquity)
	if debtEquity > 150 {
		riskScore += 15
		reasons = append(reasons, fmt.Sprintf("High debt: %.0f%% D/E ratio", debtEquity))
	}

	revGrowth := floatOrZero(fund.RevenueGrowth)
	if revGrowth > 0.40 {
		rewardScore += 35
		reasons = append(reasons, fmt.Sprintf("Explosive growth: %.1f%% revenue", revGrowth*100))
	} else if revGrowth > 0.20 {
		rewardScore += 25
		reasons = append(reasons, fmt.Sprintf("Strong growth: %.1f%% revenue", revGrowth*100))
	}

	fromHigh := floatOrZero(price.From52WHigh)
	if fromHigh < -40 {
		rewardScore += 25
		reasons = append(reasons, fmt.Sprintf("Deeply oversold: %.1f%% from 52W high", fromHigh))
	} else if fromHigh < -25 {
		rewardScore += 15
		reasons = append(reasons, fmt.Sprintf("Oversold: %.1f%% from 52W high", fromHigh))
	}

	var upside *float64
	if price.CurrentPrice != nil && snap.Analyst.TargetMean != nil && *price.CurrentPrice > 0 {
		u := (*snap.Analyst.TargetMean / *price.CurrentPrice - 1) * 100
		upside = &u
		if u > 50 {
			rewardScore += 20
			reasons = append(reasons, fmt.Sprintf("Massive analyst upside: +%.0f%%", u))
		} else if u > 25 {
			rewardScore += 10
			reasons = append(reasons, fmt.Sprintf("Strong analyst upside: +%.0f%%", u))
		}
	}

	if fromHigh < -20 && floatOrZero(price.Change1M) > 5 {
		rewardScore += 15
		reasons = append(reasons, "Reversal signal: Recent bounce from lows")
	}

	riskScore = math.Min(100, riskScore)
	rewardScore = math.Min(100, rewardScore)

	// Low-risk names are out of scope here; the whole point is asymmetric
	// speculative setups.
	opportunityScore := 0.0
	if riskScore >= 30 {
		opportunityScore = rewardScore*0.7 + riskScore*0.3
	}

	recommendation := "PASS - Insufficient upside for risk"
	confidence := "N/A"
	switch {
	case opportunityScore > 70 && rewardScore > 60:
		recommendation = "STRONG BUY - High conviction speculative play"
		confidence = "High"
	case opportunityScore > 55 && rewardScore > 45:
		recommendation = "BUY - Attractive risk-reward setup"
		confidence = "Moderate"
	case opportunityScore > 40:
		recommendation = "WATCH - Potential developing"
		confidence = "Low"
	}

	if len(reasons) > 5 {
		reasons = reasons[:5]
	}

	return Opportunity{
		Ticker:           snap.Ticker,
		Name:             snap.CompanyName,
		RiskScore:        round1(riskScore),
		RewardScore:      round1(rewardScore),
		OpportunityScore: round1(opportunityScore),
		Recommendation:   recommendation,
		Confidence:       confidence,
		Price:            price.CurrentPrice,
		MarketCap:        fund.MarketCap,
		Reasons:          reasons,
		Volatility:       volAnnual,
		Growth:           revGrowth * 100,
		UpsidePotential:  upside,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
