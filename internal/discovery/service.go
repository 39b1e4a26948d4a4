package discovery

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/Playwithbroken/stock-analysis-tool/internal/fetchcache"
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/config"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
	rediscache "github.com/Playwithbroken/stock-analysis-tool/pkg/redis"
)

var trendContexts = []string{
	"Institutional Accumulation", "High Social Volume", "Technical Breakout",
}

var moonshotContexts = []string{
	"Disruptive Tech", "Hyper-Growth", "Market Expansion",
}

// Service runs the discovery scans: trending, movers, rebounds, small caps,
// moonshots, dividend screens, ETFs and the sector heatmap. Mover results
// are cached per direction in-process, and optionally in Redis so multiple
// instances share one scan window.
type Service struct {
	provider marketdata.Provider
	scanner  *Scanner
	movers   *fetchcache.Cache
	shared   *rediscache.Cache
	cfg      config.CacheConfig
	logger   *logger.Logger
}

// NewService creates a new discovery service
func NewService(provider marketdata.Provider, scanner *Scanner, shared *rediscache.Cache, cfg config.CacheConfig, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		scanner:  scanner,
		movers:   fetchcache.New(cfg.MoversTTL),
		shared:   shared,
		cfg:      cfg,
		logger:   log.WithField("module", "discovery"),
	}
}

// fetchBasic builds the lightweight mover view for one symbol
func (s *Service) fetchBasic(ctx context.Context, symbol, trendContext string) (*Mover, error) {
	quote, err := s.provider.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &Mover{
		Ticker:       quote.Ticker,
		Name:         quote.Name,
		Price:        quote.Price,
		Change:       quote.Change1W,
		TrendContext: trendContext,
	}, nil
}

func changeOrZero(m Mover) float64 {
	if m.Change == nil {
		return 0
	}
	return *m.Change
}

// Trending returns a random slice of the tech universe sorted by momentum.
// Results land in the shared tier so warmed instances serve the same slice.
func (s *Service) Trending(ctx context.Context) []Mover {
	if s.shared != nil {
		var cached []Mover
		if hit, err := s.shared.Get(ctx, rediscache.ScanKey("trending"), &cached); err == nil && hit {
			return cached
		}
	}

	results := Run(ctx, s.scanner, Policy[Mover]{
		Name:       "trending",
		Universe:   techUniverse,
		SampleSize: 8,
		Fetch: func(ctx context.Context, symbol string) (*Mover, error) {
			return s.fetchBasic(ctx, symbol, "")
		},
		RankKey: changeOrZero,
		Limit:   8,
	})
	for i := range results {
		results[i].TrendContext = trendContexts[rand.Intn(len(trendContexts))]
	}

	if s.shared != nil {
		if err := s.shared.Set(ctx, rediscache.ScanKey("trending"), results, s.cfg.TTL); err != nil {
			s.logger.WithError(err).Warn("Shared trending cache write failed")
		}
	}
	return results
}

// MarketMovers returns the top gainers or losers from the movers universe.
// Direction is "gainers" or "losers"; each direction is cached separately.
func (s *Service) MarketMovers(ctx context.Context, direction string) []Mover {
	cacheKey := fmt.Sprintf("movers_%s", direction)
	if cached, ok := s.movers.Get(cacheKey); ok {
		if movers, ok := cached.([]Mover); ok {
			return movers
		}
	}

	if s.shared != nil {
		var movers []Mover
		if hit, err := s.shared.Get(ctx, rediscache.MoversKey(direction), &movers); err == nil && hit {
			s.movers.Set(cacheKey, movers)
			return movers
		}
	}

	results := Run(ctx, s.scanner, Policy[Mover]{
		Name:       "market_movers",
		Universe:   marketMoversUniverse,
		SampleSize: 15,
		Fetch: func(ctx context.Context, symbol string) (*Mover, error) {
			return s.fetchBasic(ctx, symbol, "Market momentum")
		},
		RankKey:   changeOrZero,
		Ascending: direction == "losers",
		Limit:     8,
	})

	s.movers.Set(cacheKey, results)
	if s.shared != nil {
		if err := s.shared.Set(ctx, rediscache.MoversKey(direction), results, s.cfg.MoversTTL); err != nil {
			s.logger.WithError(err).Warn("Shared movers cache write failed")
		}
	}
	return results
}

// RefreshMovers re-runs the movers scan for one direction and overwrites
// both cache tiers, regardless of freshness. Used by the warm job.
func (s *Service) RefreshMovers(ctx context.Context, direction string) []Mover {
	s.movers.Delete(fmt.Sprintf("movers_%s", direction))
	if s.shared != nil {
		if err := s.shared.Delete(ctx, rediscache.MoversKey(direction)); err != nil {
			s.logger.WithError(err).Warn("Shared movers cache invalidation failed")
		}
	}
	return s.MarketMovers(ctx, direction)
}

// Rebounds finds quality stocks after a sharp sell-off: meaningful drawdown
// with the business still profitable.
func (s *Service) Rebounds(ctx context.Context) []ReboundCandidate {
	return Run(ctx, s.scanner, Policy[ReboundCandidate]{
		Name:       "rebounds",
		Universe:   reboundPool,
		SampleSize: 8,
		Fetch: func(ctx context.Context, symbol string) (*ReboundCandidate, error) {
			snap, err := s.provider.Snapshot(ctx, symbol)
			if err != nil {
				return nil, err
			}
			change1W := floatOrZero(snap.Price.Change1W)
			change1Y := floatOrZero(snap.Price.Change1Y)
			if change1W >= -7 && change1Y >= -20 {
				return nil, nil
			}
			if floatOrZero(snap.Fundamentals.ProfitMargin) <= 0.05 {
				return nil, nil
			}
			return &ReboundCandidate{
				Ticker:   snap.Ticker,
				Name:     snap.CompanyName,
				Drawdown: snap.Price.Change1W,
				Reason:   "Oversold Quality Stock",
				Score:    70 + math.Abs(change1W)*1.5,
			}, nil
		},
		RankKey: func(r ReboundCandidate) float64 { return r.Score },
		Limit:   8,
	})
}

// SmallCaps screens the small-cap watchlist for growing companies under
// a $10B market cap.
func (s *Service) SmallCaps(ctx context.Context) []SmallCap {
	fetch := func(ctx context.Context, symbol string) (*SmallCap, error) {
		snap, err := s.provider.Snapshot(ctx, symbol)
		if err != nil {
			return nil, err
		}
		mcap := floatOrZero(snap.Fundamentals.MarketCap)
		if mcap <= 0 || mcap >= 10e9 {
			return nil, nil
		}
		growth := floatOrZero(snap.Fundamentals.RevenueGrowth)
		if growth <= 0.10 {
			return nil, nil
		}
		return &SmallCap{
			Ticker:    snap.Ticker,
			Name:      snap.CompanyName,
			MarketCap: mcap,
			Growth:    growth * 100,
			Score:     90,
		}, nil
	}

	return Run(ctx, s.scanner, Policy[SmallCap]{
		Name:     "small_caps",
		Universe: smallCapWatch,
		Fetch:    fetch,
		RankKey:  func(c SmallCap) float64 { return c.Growth },
		Limit:    len(smallCapWatch),
		Fallback: smallCapFallback,
	})
}

// Moonshots screens for speculative candidates: either growing fast under
// $20B, or micro caps under $2B regardless of growth.
func (s *Service) Moonshots(ctx context.Context) []Moonshot {
	fetch := func(ctx context.Context, symbol string) (*Moonshot, error) {
		snap, err := s.provider.Snapshot(ctx, symbol)
		if err != nil {
			return nil, err
		}
		mcap := floatOrZero(snap.Fundamentals.MarketCap)
		growth := floatOrZero(snap.Fundamentals.RevenueGrowth)
		if mcap <= 0 || mcap >= 20e9 {
			return nil, nil
		}
		if growth <= 0.10 && mcap >= 2e9 {
			return nil, nil
		}
		return &Moonshot{
			Ticker:       snap.Ticker,
			Name:         snap.CompanyName,
			Growth:       growth * 100,
			MarketCap:    mcap,
			TrendContext: moonshotContexts[rand.Intn(len(moonshotContexts))],
			Score:        80 + growth*60,
		}, nil
	}

	return Run(ctx, s.scanner, Policy[Moonshot]{
		Name:       "moonshots",
		Universe:   moonshotWatch,
		SampleSize: 6,
		Fetch:      fetch,
		RankKey:    func(m Moonshot) float64 { return m.Growth },
		Limit:      6,
		Fallback:   moonshotFallback,
	})
}

// DividendPayers screens the dividend watchlist for yields above 2%
func (s *Service) DividendPayers(ctx context.Context) []DividendPayer {
	return Run(ctx, s.scanner, Policy[DividendPayer]{
		Name:     "dividends",
		Universe: dividendWatch,
		Fetch: func(ctx context.Context, symbol string) (*DividendPayer, error) {
			snap, err := s.provider.Snapshot(ctx, symbol)
			if err != nil {
				return nil, err
			}
			yield := floatOrZero(snap.Fundamentals.DividendYield)
			if yield <= 0.02 {
				return nil, nil
			}
			score := 80.0
			if yield > 0.03 {
				score = 95
			}
			return &DividendPayer{
				Ticker:      snap.Ticker,
				Name:        snap.CompanyName,
				Yield:       yield * 100,
				PayoutRatio: floatOrZero(snap.Fundamentals.PayoutRatio) * 100,
				Score:       score,
			}, nil
		},
		RankKey: func(d DividendPayer) float64 { return d.Yield },
		Limit:   len(dividendWatch),
	})
}

// ETFs returns popular funds with cost and size metadata
func (s *Service) ETFs(ctx context.Context) []ETFItem {
	return Run(ctx, s.scanner, Policy[ETFItem]{
		Name:       "etfs",
		Universe:   etfUniverse,
		SampleSize: 12,
		Fetch: func(ctx context.Context, symbol string) (*ETFItem, error) {
			snap, err := s.provider.Snapshot(ctx, symbol)
			if err != nil {
				return nil, err
			}
			category := snap.Fundamentals.Category
			if category == "" {
				category = "Global"
			}
			return &ETFItem{
				Ticker:       snap.Ticker,
				Name:         snap.CompanyName,
				Price:        snap.Price.CurrentPrice,
				Change:       snap.Price.Change1W,
				TER:          snap.Fundamentals.ExpenseRatio,
				TotalAssets:  snap.Fundamentals.TotalAssets,
				Category:     snap.Fundamentals.Category,
				TrendContext: fmt.Sprintf("Kategorie: %s", category),
			}, nil
		},
		RankKey: func(e ETFItem) float64 {
			if e.Change == nil {
				return 0
			}
			return *e.Change
		},
		Limit: 12,
	})
}

// Cryptos returns the crypto universe with current momentum
func (s *Service) Cryptos(ctx context.Context) []Mover {
	return Run(ctx, s.scanner, Policy[Mover]{
		Name:     "cryptos",
		Universe: cryptoUniverse,
		Fetch: func(ctx context.Context, symbol string) (*Mover, error) {
			return s.fetchBasic(ctx, symbol, "High volatility")
		},
		RankKey: changeOrZero,
		Limit:   len(cryptoUniverse),
	})
}

// Commodities returns the commodity futures watchlist
func (s *Service) Commodities(ctx context.Context) []Mover {
	return Run(ctx, s.scanner, Policy[Mover]{
		Name:     "commodities",
		Universe: commodityWatch,
		Fetch: func(ctx context.Context, symbol string) (*Mover, error) {
			return s.fetchBasic(ctx, symbol, "Macro hedge")
		},
		RankKey: changeOrZero,
		Limit:   len(commodityWatch),
	})
}

// StarAssets highlights the standout winners and losers from the movers scans
func (s *Service) StarAssets(ctx context.Context) StarAssets {
	gainers := s.MarketMovers(ctx, "gainers")
	losers := s.MarketMovers(ctx, "losers")

	stars := StarAssets{ForYou: []Mover{}}
	if len(gainers) > 0 {
		stars.DayWinner = &gainers[0]
		stars.WeekWinner = &gainers[0]
	}
	if len(losers) > 0 {
		stars.DayLoser = &losers[0]
		stars.WeekLoser = &losers[0]
	}

	combined := append(append([]Mover{}, gainers...), losers...)
	rand.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})
	if len(combined) > 2 {
		combined = combined[:2]
	}
	stars.ForYou = combined

	return stars
}

// Diversification suggests assets to balance a portfolio's sector mix.
// An empty portfolio falls through to the trending scan.
func (s *Service) Diversification(ctx context.Context, currentTickers []string) []Suggestion {
	if len(currentTickers) == 0 {
		trending := s.Trending(ctx)
		suggestions := make([]Suggestion, 0, len(trending))
		for _, t := range trending {
			suggestions = append(suggestions, Suggestion{
				Ticker: t.Ticker,
				Name:   t.Name,
				Reason: "Aktueller Markt-Trend",
			})
		}
		return suggestions
	}

	held := make(map[string]bool, len(currentTickers))
	sectors := make(map[string]bool)
	for _, ticker := range currentTickers {
		held[ticker] = true
		snap, err := s.provider.Snapshot(ctx, ticker)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", ticker).Debug("Sector lookup failed")
			continue
		}
		if snap.Fundamentals.Sector != "" {
			sectors[snap.Fundamentals.Sector] = true
		}
	}

	var candidates []string
	if sectors["Technology"] && !sectors["Consumer Defensive"] {
		candidates = append(candidates, "KO", "PEP", "PG")
	}
	if sectors["Technology"] && !sectors["Financial Services"] {
		candidates = append(candidates, "JPM", "V", "MA")
	}
	if len(sectors) < 2 {
		candidates = append(candidates, "O", "MAIN", "GOLD")
	}

	suggestions := make([]Suggestion, 0, 4)
	seen := make(map[string]bool)
	for _, ticker := range candidates {
		if len(suggestions) == 4 {
			break
		}
		if held[ticker] || seen[ticker] {
			continue
		}
		seen[ticker] = true

		quote, err := s.provider.Quote(ctx, ticker)
		if err != nil {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Ticker: ticker,
			Name:   quote.Name,
			Reason: "Sektor-Diversifizierung",
		})
	}
	return suggestions
}

// Search looks up tickers by company name or fragment
func (s *Service) Search(ctx context.Context, query string) ([]marketdata.SearchResult, error) {
	return s.provider.Search(ctx, query)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
