package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

func TestAnalyzeNewsSentiment(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name        string
		news        []marketdata.NewsItem
		wantScore   float64
		wantSummary string
	}{
		{
			name: "positive headline from unknown blog",
			news: []marketdata.NewsItem{
				{Title: "Company beats estimates on strong growth", Publisher: "Random Blog"},
			},
			wantScore:   50,
			wantSummary: "Positive news sentiment identified",
		},
		{
			name: "positive headline from trusted source counts more",
			news: []marketdata.NewsItem{
				{Title: "Analysts upgrade after record quarter", Publisher: "Bloomberg"},
			},
			wantScore:   75,
			wantSummary: "Generally positive news flow from verified sources",
		},
		{
			name: "negative headline from trusted source",
			news: []marketdata.NewsItem{
				{Title: "Revenue miss sparks downgrade", Publisher: "Reuters"},
			},
			wantScore:   -75,
			wantSummary: "Negative news sentiment - monitor closely (Verified alerts present)",
		},
		{
			name: "neutral headline",
			news: []marketdata.NewsItem{
				{Title: "Company announces annual shareholder meeting", Publisher: "PR Newswire"},
			},
			wantScore:   0,
			wantSummary: "Mixed or neutral news sentiment",
		},
		{
			name: "keywords on both sides cancel out",
			news: []marketdata.NewsItem{
				{Title: "Strong growth but lawsuit risk weighs", Publisher: "Random Blog"},
			},
			wantScore:   0,
			wantSummary: "Mixed or neutral news sentiment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.analyzeNewsSentiment(&marketdata.Snapshot{News: tt.news})
			assert.InDelta(t, tt.wantScore, result.Score, 1e-9)
			assert.Equal(t, tt.wantSummary, result.Summary)
		})
	}
}

func TestAnalyzeNewsSentiment_NoNews(t *testing.T) {
	a := newTestAnalyzer()

	result := a.analyzeNewsSentiment(&marketdata.Snapshot{})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "Unable to assess news sentiment", result.Summary)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "No Recent News", result.Findings[0].Metric)
}

func TestAnalyzeNewsSentiment_CapsHeadlineCount(t *testing.T) {
	a := newTestAnalyzer()

	news := make([]marketdata.NewsItem, 0, 25)
	for i := 0; i < 25; i++ {
		news = append(news, marketdata.NewsItem{
			Title:     fmt.Sprintf("Quarterly report number %d", i),
			Publisher: "Newswire",
		})
	}

	result := a.analyzeNewsSentiment(&marketdata.Snapshot{News: news})
	assert.Len(t, result.Findings, maxScoredHeadlines)
}

func TestIsTrustedSource(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"Bloomberg", true},
		{"bloomberg.com", true},
		{"The Wall Street Journal", true},
		{"Yahoo Finance Video", true},
		{"Some Random Blog", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isTrustedSource(tt.source), tt.source)
	}
}
