package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

func newTestAnalyzer() *Analyzer {
	return New(logger.NewNop())
}

func TestScore_EmptySnapshot(t *testing.T) {
	a := newTestAnalyzer()

	rec := a.Score(&marketdata.Snapshot{Ticker: "TEST"})
	require.NotNil(t, rec)

	assert.Equal(t, "TEST", rec.Ticker)
	assert.Equal(t, "TEST", rec.CompanyName, "company name falls back to ticker")
	assert.Equal(t, 0.0, rec.TotalScore)
	assert.Equal(t, ActionHold, rec.Action)
	assert.Equal(t, FairlyValued, rec.Valuation)

	for _, key := range []string{
		CategoryPrice, CategoryVolatility, CategoryFundamentals,
		CategoryFear, CategoryOpportunities, CategoryNews,
		CategoryInsider, CategoryPeers,
	} {
		_, ok := rec.Categories[key]
		assert.True(t, ok, "category %s missing", key)
	}

	assert.Equal(t, 0.0, rec.Potential.Score)
	assert.Equal(t, 0.0, rec.Rebound.Score)
}

func TestScore_NilSnapshot(t *testing.T) {
	a := newTestAnalyzer()

	rec := a.Score(nil)
	require.NotNil(t, rec)
	assert.Equal(t, 0.0, rec.TotalScore)
	assert.Equal(t, ActionHold, rec.Action)
}

func TestScore_StrongCompany(t *testing.T) {
	a := newTestAnalyzer()

	snap := &marketdata.Snapshot{
		Ticker:      "QLTY",
		CompanyName: "Quality Corp",
		Fundamentals: marketdata.Fundamentals{
			PERatio:       marketdata.Float(12),
			ProfitMargin:  marketdata.Float(0.22),
			RevenueGrowth: marketdata.Float(0.30),
			DebtToEquity:  marketdata.Float(20),
			FreeCashflow:  marketdata.Float(5e9),
			MarketCap:     marketdata.Float(100e9),
		},
	}

	rec := a.Score(snap)

	fund := rec.Categories[CategoryFundamentals]
	assert.Equal(t, 65.0, fund.Score)
	assert.Equal(t, "Strong fundamentals - quality company at reasonable valuation", fund.Summary)

	fear := rec.Categories[CategoryFear]
	assert.Equal(t, 0.0, fear.Score)
	assert.Equal(t, "Identified 0 significant risk factors", fear.Summary)

	assert.Greater(t, rec.TotalScore, breakpointBuy)
	assert.Equal(t, ActionBuy, rec.Action)
	assert.Equal(t, "Quality Corp", rec.CompanyName)
}

func TestScore_DistressedCompany(t *testing.T) {
	a := newTestAnalyzer()

	snap := &marketdata.Snapshot{
		Ticker: "DIST",
		Fundamentals: marketdata.Fundamentals{
			PERatio:       marketdata.Float(-4),
			RevenueGrowth: marketdata.Float(-0.25),
			DebtToEquity:  marketdata.Float(320),
			FreeCashflow:  marketdata.Float(-800e6),
		},
		ShortInterest: marketdata.ShortInterest{
			ShortPercentFloat: marketdata.Float(0.28),
		},
	}

	rec := a.Score(snap)

	assert.Less(t, rec.TotalScore, breakpointReduce)
	assert.Equal(t, ActionSellAvoid, rec.Action)
	assert.Equal(t, "Kritisches Risikoprofil – Vorsicht geboten.", rec.Verdict)
}

func TestScore_ErroredSubRecordsDegrade(t *testing.T) {
	a := newTestAnalyzer()

	snap := &marketdata.Snapshot{
		Ticker:       "ERR",
		Price:        marketdata.PriceData{Err: "fetch failed"},
		Volatility:   marketdata.VolatilityData{Err: "fetch failed"},
		Fundamentals: marketdata.Fundamentals{Err: "fetch failed"},
	}

	rec := a.Score(snap)

	for _, key := range []string{CategoryPrice, CategoryVolatility, CategoryFundamentals} {
		result := rec.Categories[key]
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, "No data available", result.Summary)
		require.Len(t, result.Findings, 1)
		assert.Equal(t, "No Data", result.Findings[0].Metric)
	}
	assert.Equal(t, 0.0, rec.TotalScore)
}

func TestCategoryWeightsSumToOne(t *testing.T) {
	sum := WeightFundamentals + WeightFear + WeightOpportunities +
		WeightPrice + WeightVolatility + WeightNews
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestActionForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Action
	}{
		{26, ActionBuy},
		{25.01, ActionBuy},
		{25, ActionHoldAccumulate}, // strict boundary
		{11, ActionHoldAccumulate},
		{10, ActionHold},
		{0, ActionHold},
		{-10, ActionReduceAvoid},
		{-25, ActionSellAvoid},
		{-26, ActionSellAvoid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, actionForScore(tt.score), "score %.2f", tt.score)
	}
}

func TestVerdictMatchesActionTier(t *testing.T) {
	// A BUY must never pair with the critical-risk sentence
	for _, score := range []float64{40, 26, 20, 11, 0, -15, -24, -30} {
		action := actionForScore(score)
		verdict := verdictForScore(score)

		if action == ActionBuy {
			assert.Equal(t, "Außergewöhnliches Wachstumspotenzial mit starken Fundamentaldaten.", verdict)
		}
		if action == ActionSellAvoid {
			assert.Equal(t, "Kritisches Risikoprofil – Vorsicht geboten.", verdict)
		}
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 100.0, clampScore(150))
	assert.Equal(t, -100.0, clampScore(-150))
	assert.Equal(t, 42.0, clampScore(42))
}

func TestClampPositive(t *testing.T) {
	assert.Equal(t, 100.0, clampPositive(120))
	assert.Equal(t, 0.0, clampPositive(-10))
	assert.Equal(t, 55.0, clampPositive(55))
}

func TestInsiderAndPeersAreInformational(t *testing.T) {
	a := newTestAnalyzer()

	// Moving only the informational categories must not move the total
	base := a.Score(&marketdata.Snapshot{Ticker: "A"})

	insider := base.Categories[CategoryInsider]
	peers := base.Categories[CategoryPeers]
	assert.NotZero(t, insider.Score)
	assert.NotZero(t, peers.Score)
	assert.Equal(t, 0.0, base.TotalScore)
}
