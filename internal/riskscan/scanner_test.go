package riskscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

func TestScore_BlueChipIsOutOfScope(t *testing.T) {
	// A stable mega-cap never clears the risk floor, so its opportunity
	// score collapses to zero no matter how big the reward side is.
	snap := &marketdata.Snapshot{
		Ticker: "SAFE",
		Fundamentals: marketdata.Fundamentals{
			MarketCap:     marketdata.Float(2e12),
			ProfitMargin:  marketdata.Float(0.25),
			RevenueGrowth: marketdata.Float(0.50),
			DebtToEquity:  marketdata.Float(40),
		},
		Volatility: marketdata.VolatilityData{
			VolatilityAnnual: marketdata.Float(18),
		},
	}

	opp := Score(snap)

	assert.Equal(t, 0.0, opp.RiskScore)
	assert.Equal(t, 35.0, opp.RewardScore)
	assert.Equal(t, 0.0, opp.OpportunityScore)
	assert.Equal(t, "PASS - Insufficient upside for risk", opp.Recommendation)
	assert.Equal(t, "N/A", opp.Confidence)
}

func TestScore_HighConvictionSetup(t *testing.T) {
	snap := &marketdata.Snapshot{
		Ticker:      "MOON",
		CompanyName: "Moonshot Inc",
		Price: marketdata.PriceData{
			CurrentPrice: marketdata.Float(10),
			From52WHigh:  marketdata.Float(-55),
		},
		Analyst: marketdata.AnalystData{
			TargetMean: marketdata.Float(18),
		},
		Fundamentals: marketdata.Fundamentals{
			MarketCap:     marketdata.Float(800e6),
			ProfitMargin:  marketdata.Float(-0.10),
			RevenueGrowth: marketdata.Float(0.55),
		},
		Volatility: marketdata.VolatilityData{
			VolatilityAnnual: marketdata.Float(75),
		},
	}

	opp := Score(snap)

	// Risk: 30 volatility + 25 micro-cap + 20 unprofitable = 75
	assert.Equal(t, 75.0, opp.RiskScore)
	// Reward: 35 growth + 25 oversold + 20 upside = 80
	assert.Equal(t, 80.0, opp.RewardScore)
	// 80*0.7 + 75*0.3 = 78.5
	assert.Equal(t, 78.5, opp.OpportunityScore)
	assert.Equal(t, "STRONG BUY - High conviction speculative play", opp.Recommendation)
	assert.Equal(t, "High", opp.Confidence)

	require.NotNil(t, opp.UpsidePotential)
	assert.InDelta(t, 80.0, *opp.UpsidePotential, 1e-9)
	assert.Equal(t, "Moonshot Inc", opp.Name)
}

func TestScore_ReversalSignal(t *testing.T) {
	snap := &marketdata.Snapshot{
		Ticker: "BNCE",
		Price: marketdata.PriceData{
			From52WHigh: marketdata.Float(-22),
			Change1M:    marketdata.Float(8),
		},
		Volatility: marketdata.VolatilityData{
			VolatilityAnnual: marketdata.Float(45),
		},
		Fundamentals: marketdata.Fundamentals{
			MarketCap: marketdata.Float(3e9),
		},
	}

	opp := Score(snap)

	// Risk: 20 volatility + 15 small-cap = 35; reward: 15 reversal only
	assert.Equal(t, 35.0, opp.RiskScore)
	assert.Equal(t, 15.0, opp.RewardScore)
	assert.Contains(t, opp.Reasons, "Reversal signal: Recent bounce from lows")
}

func TestScore_BoundsAndReasonCap(t *testing.T) {
	snap := &marketdata.Snapshot{
		Ticker: "WILD",
		Price: marketdata.PriceData{
			CurrentPrice: marketdata.Float(5),
			From52WHigh:  marketdata.Float(-70),
			Change1M:     marketdata.Float(12),
		},
		Analyst: marketdata.AnalystData{
			TargetMean: marketdata.Float(15),
		},
		Fundamentals: marketdata.Fundamentals{
			MarketCap:     marketdata.Float(400e6),
			ProfitMargin:  marketdata.Float(-0.40),
			DebtToEquity:  marketdata.Float(300),
			RevenueGrowth: marketdata.Float(0.80),
		},
		Volatility: marketdata.VolatilityData{
			VolatilityAnnual: marketdata.Float(95),
		},
	}

	opp := Score(snap)

	assert.LessOrEqual(t, opp.RiskScore, 100.0)
	assert.LessOrEqual(t, opp.RewardScore, 100.0)
	assert.LessOrEqual(t, opp.OpportunityScore, 100.0)
	assert.Len(t, opp.Reasons, 5, "reasons are capped at five")
}

func TestScore_EmptySnapshot(t *testing.T) {
	opp := Score(&marketdata.Snapshot{Ticker: "NONE"})

	// Missing market cap reads as zero, which still counts as micro-cap risk
	assert.Equal(t, 25.0, opp.RiskScore)
	assert.Equal(t, 0.0, opp.RewardScore)
	assert.Equal(t, 0.0, opp.OpportunityScore)
	assert.Nil(t, opp.UpsidePotential)
	assert.Equal(t, "PASS - Insufficient upside for risk", opp.Recommendation)
}

func TestScore_WatchTier(t *testing.T) {
	snap := &marketdata.Snapshot{
		Ticker: "MID",
		Fundamentals: marketdata.Fundamentals{
			MarketCap:     marketdata.Float(600e6),
			RevenueGrowth: marketdata.Float(0.45),
		},
		Price: marketdata.PriceData{
			From52WHigh: marketdata.Float(-30),
		},
		Volatility: marketdata.VolatilityData{
			VolatilityAnnual: marketdata.Float(45),
		},
	}
	opp := Score(snap)

	// Risk 25 + 20 = 45; reward 35 + 15 = 50
	// Opportunity 50*0.7 + 45*0.3 = 48.5 -> WATCH
	assert.Equal(t, 48.5, opp.OpportunityScore)
	assert.Equal(t, "WATCH - Potential developing", opp.Recommendation)
	assert.Equal(t, "Low", opp.Confidence)
}
