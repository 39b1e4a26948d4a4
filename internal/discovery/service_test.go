package discovery

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/config"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
	rediscache "github.com/Playwithbroken/stock-analysis-tool/pkg/redis"
)

// fakeProvider serves canned quotes and snapshots; symbols without an entry
// fall back to makeQuote/makeSnap when set, otherwise error.
type fakeProvider struct {
	mu         sync.Mutex
	quoteCalls int
	snapCalls  int

	quotes    map[string]*marketdata.Quote
	snaps     map[string]*marketdata.Snapshot
	makeQuote func(symbol string) *marketdata.Quote
	makeSnap  func(symbol string) *marketdata.Snapshot
}

func (f *fakeProvider) Quote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	f.mu.Lock()
	f.quoteCalls++
	f.mu.Unlock()

	if q, ok := f.quotes[symbol]; ok {
		return q, nil
	}
	if f.makeQuote != nil {
		return f.makeQuote(symbol), nil
	}
	return nil, fmt.Errorf("no quote for %s", symbol)
}

func (f *fakeProvider) Snapshot(ctx context.Context, symbol string) (*marketdata.Snapshot, error) {
	f.mu.Lock()
	f.snapCalls++
	f.mu.Unlock()

	if s, ok := f.snaps[symbol]; ok {
		return s, nil
	}
	if f.makeSnap != nil {
		return f.makeSnap(symbol), nil
	}
	return nil, fmt.Errorf("no snapshot for %s", symbol)
}

func (f *fakeProvider) Search(ctx context.Context, query string) ([]marketdata.SearchResult, error) {
	return []marketdata.SearchResult{{Ticker: "AAPL", Name: "Apple Inc"}}, nil
}

func (f *fakeProvider) calls() (quotes, snaps int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quoteCalls, f.snapCalls
}

func newTestService(provider marketdata.Provider) *Service {
	cfg := config.CacheConfig{TTL: 300 * time.Second, MoversTTL: 600 * time.Second}
	return NewService(provider, NewScanner(4, logger.NewNop()), nil, cfg, logger.NewNop())
}

func TestMarketMovers_RankedByDirection(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			change := float64(len(symbol)) - 3.5
			return &marketdata.Quote{
				Ticker:   symbol,
				Name:     symbol + " Inc",
				Price:    marketdata.Float(100),
				Change1W: marketdata.Float(change),
			}
		},
	}

	t.Run("gainers descend", func(t *testing.T) {
		svc := newTestService(provider)
		gainers := svc.MarketMovers(context.Background(), "gainers")

		require.NotEmpty(t, gainers)
		assert.LessOrEqual(t, len(gainers), 8)
		for i := 1; i < len(gainers); i++ {
			assert.GreaterOrEqual(t, *gainers[i-1].Change, *gainers[i].Change)
		}
	})

	t.Run("losers ascend", func(t *testing.T) {
		svc := newTestService(provider)
		losers := svc.MarketMovers(context.Background(), "losers")

		require.NotEmpty(t, losers)
		for i := 1; i < len(losers); i++ {
			assert.LessOrEqual(t, *losers[i-1].Change, *losers[i].Change)
		}
	})
}

func TestMarketMovers_CachedPerDirection(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{Ticker: symbol, Change1W: marketdata.Float(1)}
		},
	}
	svc := newTestService(provider)
	ctx := context.Background()

	first := svc.MarketMovers(ctx, "gainers")
	callsAfterFirst, _ := provider.calls()

	second := svc.MarketMovers(ctx, "gainers")
	callsAfterSecond, _ := provider.calls()

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, callsAfterSecond, "second read must come from cache")

	svc.MarketMovers(ctx, "losers")
	callsAfterLosers, _ := provider.calls()
	assert.Greater(t, callsAfterLosers, callsAfterSecond, "directions are cached separately")
}

func TestRefreshMovers_BypassesCache(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{Ticker: symbol, Change1W: marketdata.Float(1)}
		},
	}
	svc := newTestService(provider)
	ctx := context.Background()

	svc.MarketMovers(ctx, "gainers")
	callsWarm, _ := provider.calls()

	svc.RefreshMovers(ctx, "gainers")
	callsRefreshed, _ := provider.calls()

	assert.Greater(t, callsRefreshed, callsWarm, "refresh must re-run the scan")
}

func TestRebounds_FiltersOnDrawdownAndQuality(t *testing.T) {
	provider := &fakeProvider{
		makeSnap: func(symbol string) *marketdata.Snapshot {
			return &marketdata.Snapshot{
				Ticker:      symbol,
				CompanyName: symbol + " Inc",
				Price: marketdata.PriceData{
					Change1W: marketdata.Float(-9),
				},
				Fundamentals: marketdata.Fundamentals{
					ProfitMargin: marketdata.Float(0.20),
				},
			}
		},
	}
	svc := newTestService(provider)

	results := svc.Rebounds(context.Background())

	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "Oversold Quality Stock", r.Reason)
		assert.InDelta(t, 70+9*1.5, r.Score, 1e-9)
	}
}

func TestRebounds_RejectsHealthyAndUnprofitable(t *testing.T) {
	provider := &fakeProvider{
		makeSnap: func(symbol string) *marketdata.Snapshot {
			// Half the pool is healthy, half sold off but unprofitable;
			// nothing qualifies either way.
			if len(symbol)%2 == 0 {
				return &marketdata.Snapshot{
					Ticker:       symbol,
					Price:        marketdata.PriceData{Change1W: marketdata.Float(2)},
					Fundamentals: marketdata.Fundamentals{ProfitMargin: marketdata.Float(0.3)},
				}
			}
			return &marketdata.Snapshot{
				Ticker:       symbol,
				Price:        marketdata.PriceData{Change1W: marketdata.Float(-15)},
				Fundamentals: marketdata.Fundamentals{ProfitMargin: marketdata.Float(0.01)},
			}
		},
	}
	svc := newTestService(provider)

	assert.Empty(t, svc.Rebounds(context.Background()))
}

func TestSmallCaps_ScreensSizeAndGrowth(t *testing.T) {
	provider := &fakeProvider{
		snaps: map[string]*marketdata.Snapshot{
			"SOFI": {
				Ticker:      "SOFI",
				CompanyName: "SoFi Technologies",
				Fundamentals: marketdata.Fundamentals{
					MarketCap:     marketdata.Float(8e9),
					RevenueGrowth: marketdata.Float(0.35),
				},
			},
			"PATH": {
				Ticker:      "PATH",
				CompanyName: "UiPath",
				Fundamentals: marketdata.Fundamentals{
					MarketCap:     marketdata.Float(6e9),
					RevenueGrowth: marketdata.Float(0.15),
				},
			},
			// Too big
			"MSTR": {
				Ticker: "MSTR",
				Fundamentals: marketdata.Fundamentals{
					MarketCap:     marketdata.Float(50e9),
					RevenueGrowth: marketdata.Float(0.40),
				},
			},
			// Not growing
			"HOOD": {
				Ticker: "HOOD",
				Fundamentals: marketdata.Fundamentals{
					MarketCap:     marketdata.Float(9e9),
					RevenueGrowth: marketdata.Float(0.05),
				},
			},
		},
	}
	svc := newTestService(provider)

	results := svc.SmallCaps(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, "SOFI", results[0].Ticker, "ranked by growth")
	assert.Equal(t, 35.0, results[0].Growth)
	assert.Equal(t, 90.0, results[0].Score)
	assert.Equal(t, "PATH", results[1].Ticker)
}

func TestDividendPayers_RankedByYield(t *testing.T) {
	provider := &fakeProvider{
		snaps: map[string]*marketdata.Snapshot{
			"KO": {
				Ticker: "KO",
				Fundamentals: marketdata.Fundamentals{
					DividendYield: marketdata.Float(0.031),
					PayoutRatio:   marketdata.Float(0.70),
				},
			},
			"XOM": {
				Ticker: "XOM",
				Fundamentals: marketdata.Fundamentals{
					DividendYield: marketdata.Float(0.025),
				},
			},
			// Below the 2% floor
			"PG": {
				Ticker: "PG",
				Fundamentals: marketdata.Fundamentals{
					DividendYield: marketdata.Float(0.012),
				},
			},
		},
	}
	svc := newTestService(provider)

	results := svc.DividendPayers(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, "KO", results[0].Ticker)
	assert.Equal(t, 95.0, results[0].Score, "yields above 3%% score higher")
	assert.InDelta(t, 70.0, results[0].PayoutRatio, 1e-9)
	assert.Equal(t, "XOM", results[1].Ticker)
	assert.Equal(t, 80.0, results[1].Score)
}

func TestDiversification_EmptyPortfolioFallsBackToTrending(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{
				Ticker:   symbol,
				Name:     symbol + " Inc",
				Change1W: marketdata.Float(1),
			}
		},
	}
	svc := newTestService(provider)

	suggestions := svc.Diversification(context.Background(), nil)

	require.NotEmpty(t, suggestions)
	for _, s := range suggestions {
		assert.Equal(t, "Aktueller Markt-Trend", s.Reason)
	}
}

func TestDiversification_TechHeavyPortfolio(t *testing.T) {
	provider := &fakeProvider{
		snaps: map[string]*marketdata.Snapshot{
			"AAPL": {
				Ticker:       "AAPL",
				Fundamentals: marketdata.Fundamentals{Sector: "Technology"},
			},
		},
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{Ticker: symbol, Name: symbol + " Corp"}
		},
	}
	svc := newTestService(provider)

	suggestions := svc.Diversification(context.Background(), []string{"AAPL"})

	require.Len(t, suggestions, 4, "suggestion list is capped at four")
	for _, s := range suggestions {
		assert.NotEqual(t, "AAPL", s.Ticker, "held tickers are never suggested")
		assert.Equal(t, "Sektor-Diversifizierung", s.Reason)
	}
	assert.Equal(t, "KO", suggestions[0].Ticker, "defensive names come first")
}

func TestStarAssets(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			change := float64(len(symbol)) - 3.5
			return &marketdata.Quote{Ticker: symbol, Change1W: marketdata.Float(change)}
		},
	}
	svc := newTestService(provider)

	stars := svc.StarAssets(context.Background())

	require.NotNil(t, stars.DayWinner)
	require.NotNil(t, stars.DayLoser)
	assert.Equal(t, stars.DayWinner, stars.WeekWinner)
	assert.GreaterOrEqual(t, *stars.DayWinner.Change, *stars.DayLoser.Change)
	assert.LessOrEqual(t, len(stars.ForYou), 2)
}

func TestHeatmap_AllBullish(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{
				Ticker:   symbol,
				Name:     symbol + " Inc",
				Price:    marketdata.Float(50),
				Change1W: marketdata.Float(2.5),
			}
		},
	}
	svc := newTestService(provider)

	heatmap := svc.Heatmap(context.Background())

	require.Len(t, heatmap, len(sectorBaskets))
	for _, sector := range heatmap {
		assert.Equal(t, StatusBullish, sector.Status)
		assert.Equal(t, 1.0, sector.SentimentScore)
		assert.Equal(t, 70.0, sector.Strength)
		assert.Len(t, sector.HotStocks, 4)
	}
}

func TestHeatmap_MixedAndBearish(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{Ticker: symbol, Change1W: marketdata.Float(-1)}
		},
		quotes: map[string]*marketdata.Quote{
			// Two of four AI names up: sentiment 0 -> NEUTRAL
			"NVDA": {Ticker: "NVDA", Change1W: marketdata.Float(4)},
			"PLTR": {Ticker: "PLTR", Change1W: marketdata.Float(2)},
		},
	}
	svc := newTestService(provider)

	heatmap := svc.Heatmap(context.Background())
	require.NotEmpty(t, heatmap)

	byName := make(map[string]SectorSentiment, len(heatmap))
	for _, sector := range heatmap {
		byName[sector.Sector] = sector
	}

	ai := byName["Artificial Intelligence"]
	assert.Equal(t, StatusNeutral, ai.Status)
	assert.Equal(t, 0.0, ai.SentimentScore)

	energy := byName["Energy"]
	assert.Equal(t, StatusBearish, energy.Status)
	assert.Equal(t, -1.0, energy.SentimentScore)
}

func TestTrending_AssignsContext(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{Ticker: symbol, Change1W: marketdata.Float(3)}
		},
	}
	svc := newTestService(provider)

	trending := svc.Trending(context.Background())

	require.NotEmpty(t, trending)
	assert.LessOrEqual(t, len(trending), 8)
	for _, m := range trending {
		assert.Contains(t, trendContexts, m.TrendContext)
	}
}

func TestTrending_DisabledSharedTierRescans(t *testing.T) {
	provider := &fakeProvider{
		makeQuote: func(symbol string) *marketdata.Quote {
			return &marketdata.Quote{Ticker: symbol, Change1W: marketdata.Float(3)}
		},
	}
	cfg := config.CacheConfig{TTL: 300 * time.Second, MoversTTL: 600 * time.Second}
	shared := rediscache.NewCache(&rediscache.Client{}, "test")
	svc := NewService(provider, NewScanner(4, logger.NewNop()), shared, cfg, logger.NewNop())
	ctx := context.Background()

	first := svc.Trending(ctx)
	require.NotEmpty(t, first)
	callsAfterFirst, _ := provider.calls()

	second := svc.Trending(ctx)
	require.NotEmpty(t, second)
	callsAfterSecond, _ := provider.calls()

	// A disabled shared tier stores nothing, so every call scans fresh
	assert.Greater(t, callsAfterSecond, callsAfterFirst)
}
