package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

func TestAnalyzeFundamentals_PERatioBoundaries(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name       string
		pe         float64
		wantRating Rating
		wantScore  float64
	}{
		{"negative earnings", -5, VeryNegative, -20},
		{"just below cheap boundary", 14.99, Positive, 15},
		{"exactly at cheap boundary", 15, Neutral, 0},
		{"just below fair boundary", 24.99, Neutral, 0},
		{"exactly at fair boundary", 25, Negative, -10},
		{"expensive", 39.99, Negative, -10},
		{"very expensive", 40, VeryNegative, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &marketdata.Snapshot{
				Fundamentals: marketdata.Fundamentals{PERatio: marketdata.Float(tt.pe)},
			}
			result := a.analyzeFundamentals(snap)

			require.Len(t, result.Findings, 1)
			assert.Equal(t, "P/E Ratio", result.Findings[0].Metric)
			assert.Equal(t, tt.wantRating, result.Findings[0].Rating)
			assert.Equal(t, tt.wantScore, result.Score)
		})
	}
}

func TestAnalyzeFundamentals_ForwardPE(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name      string
		pe        float64
		fwdPE     float64
		wantDelta float64
	}{
		{"earnings growing", 20, 16, 10},    // 16 < 20*0.85
		{"earnings declining", 20, 23, -10}, // 23 > 20*1.1
		{"roughly flat", 20, 20, 0},         // inside the band, no finding
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := a.analyzeFundamentals(&marketdata.Snapshot{
				Fundamentals: marketdata.Fundamentals{PERatio: marketdata.Float(tt.pe)},
			})
			with := a.analyzeFundamentals(&marketdata.Snapshot{
				Fundamentals: marketdata.Fundamentals{
					PERatio:   marketdata.Float(tt.pe),
					ForwardPE: marketdata.Float(tt.fwdPE),
				},
			})
			assert.Equal(t, tt.wantDelta, with.Score-base.Score)
		})
	}
}

func TestAnalyzeFundamentals_DebtToEquity(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		de         float64
		wantRating Rating
		wantScore  float64
	}{
		{20, VeryPositive, 10},
		{50, Positive, 5},
		{100, Neutral, 0},
		{200, Negative, -15},
		{300, VeryNegative, -25},
	}

	for _, tt := range tests {
		snap := &marketdata.Snapshot{
			Fundamentals: marketdata.Fundamentals{DebtToEquity: marketdata.Float(tt.de)},
		}
		result := a.analyzeFundamentals(snap)

		require.Len(t, result.Findings, 1)
		assert.Equal(t, tt.wantRating, result.Findings[0].Rating, "D/E %.0f", tt.de)
		assert.Equal(t, tt.wantScore, result.Score, "D/E %.0f", tt.de)
	}
}

func TestAnalyzeFundamentals_ErrorMarker(t *testing.T) {
	a := newTestAnalyzer()

	result := a.analyzeFundamentals(&marketdata.Snapshot{
		Fundamentals: marketdata.Fundamentals{Err: "rate limited"},
	})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "No data available", result.Summary)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "rate limited", result.Findings[0].Interpretation)
}

func TestAnalyzeFundamentals_SummaryTiers(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name string
		fund marketdata.Fundamentals
		want string
	}{
		{
			name: "strong",
			fund: marketdata.Fundamentals{
				PERatio:      marketdata.Float(12),
				ProfitMargin: marketdata.Float(0.25),
				FreeCashflow: marketdata.Float(1e9),
			},
			want: "Strong fundamentals - quality company at reasonable valuation",
		},
		{
			name: "mixed",
			fund: marketdata.Fundamentals{PERatio: marketdata.Float(20)},
			want: "Mixed fundamentals - neither clearly cheap nor expensive",
		},
		{
			name: "poor",
			fund: marketdata.Fundamentals{
				PERatio:      marketdata.Float(-2),
				DebtToEquity: marketdata.Float(400),
			},
			want: "Poor fundamentals - significant risks present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.analyzeFundamentals(&marketdata.Snapshot{Fundamentals: tt.fund})
			assert.Equal(t, tt.want, result.Summary)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$2.50B", formatMoney(2.5e9))
	assert.Equal(t, "$800.0M", formatMoney(800e6))
	assert.Equal(t, "-$1.20B", formatMoney(-1.2e9))
	assert.Equal(t, "-$50.0M", formatMoney(-50e6))
}

func TestFormatMarketCap(t *testing.T) {
	assert.Equal(t, "$3000B (Mega Cap)", formatMarketCap(3e12))
	assert.Equal(t, "$50.0B (Large Cap)", formatMarketCap(50e9))
	assert.Equal(t, "$5.0B (Mid Cap)", formatMarketCap(5e9))
	assert.Equal(t, "$500M (Small Cap)", formatMarketCap(500e6))
	assert.Equal(t, "$100M (Micro Cap)", formatMarketCap(100e6))
}
