package discovery

import (
	"context"
	"math"
)

// Sector baskets for the sentiment heatmap, versioned as data
var sectorBaskets = []struct {
	Sector  string
	Tickers []string
}{
	{"Artificial Intelligence", []string{"NVDA", "PLTR", "ARM", "AI"}},
	{"Semiconductors", []string{"AMD", "TSM", "AVGO", "SMCI"}},
	{"USA", []string{"AAPL", "MSFT", "AMZN", "TSLA"}},
	{"Europe", []string{"SAP", "ASML", "MC.PA", "SIE.DE"}},
	{"Asia", []string{"TSM", "BABA", "JD", "PDD"}},
	{"Germany", []string{"SAP.DE", "SIE.DE", "ALV.DE", "MBG.DE"}},
	{"Technology", []string{"MSFT", "AAPL", "GOOGL", "ORCL"}},
	{"Energy", []string{"XOM", "CVX", "BP", "SHEL"}},
	{"Financials", []string{"JPM", "GS", "V", "MA"}},
	{"Healthcare", []string{"JNJ", "PFE", "UNH", "ABBV"}},
	{"Industrials", []string{"CAT", "HON", "BA", "GE"}},
}

// Heatmap computes per-sector sentiment from the sign of each basket
// constituent's weekly change, bucketed BULLISH/NEUTRAL/BEARISH at ±0.5
// on the mean of the {+1,-1} signals.
func (s *Service) Heatmap(ctx context.Context) []SectorSentiment {
	heatmap := make([]SectorSentiment, 0, len(sectorBaskets))

	for _, basket := range sectorBaskets {
		stocks := Run(ctx, s.scanner, Policy[HotStock]{
			Name:     "heatmap",
			Universe: basket.Tickers,
			Fetch: func(ctx context.Context, symbol string) (*HotStock, error) {
				quote, err := s.provider.Quote(ctx, symbol)
				if err != nil {
					return nil, err
				}
				return &HotStock{
					Ticker:   quote.Ticker,
					Name:     quote.Name,
					Price:    quote.Price,
					Change1W: quote.Change1W,
				}, nil
			},
			Limit: len(basket.Tickers),
		})

		if len(stocks) == 0 {
			continue
		}

		sum := 0.0
		for _, stock := range stocks {
			if floatOrZero(stock.Change1W) > 0 {
				sum++
			} else {
				sum--
			}
		}
		avg := sum / float64(len(stocks))

		status := StatusBearish
		if avg > 0.5 {
			status = StatusBullish
		} else if avg > -0.5 {
			status = StatusNeutral
		}

		heatmap = append(heatmap, SectorSentiment{
			Sector:         basket.Sector,
			SentimentScore: avg,
			Status:         status,
			Strength:       math.Min(100, (math.Abs(avg)+1)*35),
			HotStocks:      stocks,
		})
	}

	return heatmap
}
