package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

func TestAnalyzeRebound(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name        string
		snap        *marketdata.Snapshot
		wantScore   float64
		wantSummary string
	}{
		{
			name:        "no sell-off",
			snap:        &marketdata.Snapshot{},
			wantScore:   0,
			wantSummary: "No rebound setup detected",
		},
		{
			name: "weekly sell-off without quality",
			snap: &marketdata.Snapshot{
				Price: marketdata.PriceData{Change1W: marketdata.Float(-12)},
			},
			wantScore:   60,
			wantSummary: "Speculative rebound",
		},
		{
			name: "monthly sell-off in a quality business",
			snap: &marketdata.Snapshot{
				Price: marketdata.PriceData{Change1M: marketdata.Float(-25)},
				Fundamentals: marketdata.Fundamentals{
					ProfitMargin: marketdata.Float(0.18),
				},
			},
			wantScore:   90,
			wantSummary: "High probability rebound candidate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.analyzeRebound(tt.snap)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantSummary, result.Summary)
		})
	}
}

func TestAnalyzeRebound_ScoreStaysPositive(t *testing.T) {
	a := newTestAnalyzer()

	// A sell-off finding never drags the rebound score below zero
	result := a.analyzeRebound(&marketdata.Snapshot{
		Price: marketdata.PriceData{
			Change1W: marketdata.Float(-40),
			Change1M: marketdata.Float(-60),
		},
	})
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}

func TestAnalyzePotential(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name        string
		snap        *marketdata.Snapshot
		wantScore   float64
		wantSummary string
	}{
		{
			name:        "nothing going on",
			snap:        &marketdata.Snapshot{},
			wantScore:   0,
			wantSummary: "Limited growth catalysts",
		},
		{
			name: "hyper growth with big analyst upside",
			snap: &marketdata.Snapshot{
				Price:   marketdata.PriceData{CurrentPrice: marketdata.Float(100)},
				Analyst: marketdata.AnalystData{TargetMean: marketdata.Float(140)},
				Fundamentals: marketdata.Fundamentals{
					RevenueGrowth: marketdata.Float(0.30),
				},
			},
			wantScore:   60,
			wantSummary: "Exceptional growth potential identified",
		},
		{
			name: "moderate growth and cheap PEG",
			snap: &marketdata.Snapshot{
				Fundamentals: marketdata.Fundamentals{
					RevenueGrowth: marketdata.Float(0.18),
					PEGRatio:      marketdata.Float(0.9),
				},
			},
			wantScore:   25,
			wantSummary: "Moderate growth potential",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.analyzePotential(tt.snap)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantSummary, result.Summary)
		})
	}
}
