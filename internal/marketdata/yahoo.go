package marketdata

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Playwithbroken/stock-analysis-tool/internal/fetchcache"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/config"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/httputil"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

const tradingDaysPerYear = 252

// Client fetches market data from Yahoo-style quote endpoints.
// Raw payloads are cached in the shared fetch cache keyed
// "<category>_<symbol>" so concurrent scans do not repeat upstream calls
// within the TTL window.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.ProviderConfig
	cache      *fetchcache.Cache
	limiter    *rate.Limiter
}

// NewClient creates a new market data client
func NewClient(cfg config.ProviderConfig, httpClient *httputil.Client, cache *fetchcache.Cache, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "marketdata"),
		cfg:        cfg,
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

// quoteSummary response shapes. Yahoo wraps every number as {"raw": x}.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type summaryPayload struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	Price struct {
		LongName           string   `json:"longName"`
		ShortName          string   `json:"shortName"`
		Currency           string   `json:"currency"`
		QuoteType          string   `json:"quoteType"`
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
		MarketCap          rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE          rawValue `json:"trailingPE"`
		ForwardPE           rawValue `json:"forwardPE"`
		PriceToSales        rawValue `json:"priceToSalesTrailing12Months"`
		Beta                rawValue `json:"beta"`
		DividendYield       rawValue `json:"dividendYield"`
		PayoutRatio         rawValue `json:"payoutRatio"`
		FiftyTwoWeekHigh    rawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow     rawValue `json:"fiftyTwoWeekLow"`
		TotalAssets         rawValue `json:"totalAssets"`
		AnnualReportExpense rawValue `json:"annualReportExpenseRatio"`
	} `json:"summaryDetail"`
	FinancialData struct {
		TargetHighPrice    rawValue `json:"targetHighPrice"`
		TargetLowPrice     rawValue `json:"targetLowPrice"`
		TargetMeanPrice    rawValue `json:"targetMeanPrice"`
		TargetMedianPrice  rawValue `json:"targetMedianPrice"`
		RecommendationKey  string   `json:"recommendationKey"`
		RecommendationMean rawValue `json:"recommendationMean"`
		NumberOfAnalysts   rawValue `json:"numberOfAnalystOpinions"`
		TotalCash          rawValue `json:"totalCash"`
		TotalDebt          rawValue `json:"totalDebt"`
		DebtToEquity       rawValue `json:"debtToEquity"`
		CurrentRatio       rawValue `json:"currentRatio"`
		RevenueGrowth      rawValue `json:"revenueGrowth"`
		EarningsGrowth     rawValue `json:"earningsGrowth"`
		GrossMargins       rawValue `json:"grossMargins"`
		OperatingMargins   rawValue `json:"operatingMargins"`
		ProfitMargins      rawValue `json:"profitMargins"`
		ReturnOnEquity     rawValue `json:"returnOnEquity"`
		ReturnOnAssets     rawValue `json:"returnOnAssets"`
		FreeCashflow       rawValue `json:"freeCashflow"`
		TotalRevenue       rawValue `json:"totalRevenue"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		EnterpriseValue     rawValue `json:"enterpriseValue"`
		PriceToBook         rawValue `json:"priceToBook"`
		PegRatio            rawValue `json:"pegRatio"`
		EnterpriseToEbitda  rawValue `json:"enterpriseToEbitda"`
		TrailingEps         rawValue `json:"trailingEps"`
		ShortRatio          rawValue `json:"shortRatio"`
		ShortPercentOfFloat rawValue `json:"shortPercentOfFloat"`
		SharesShort         rawValue `json:"sharesShort"`
		SharesShortPrior    rawValue `json:"sharesShortPriorMonth"`
	} `json:"defaultKeyStatistics"`
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
		Country  string `json:"country"`
	} `json:"assetProfile"`
	FundProfile struct {
		CategoryName string `json:"categoryName"`
		Family       string `json:"family"`
	} `json:"fundProfile"`
	TopHoldings struct {
		Holdings []struct {
			Symbol         string   `json:"symbol"`
			HoldingName    string   `json:"holdingName"`
			HoldingPercent rawValue `json:"holdingPercent"`
		} `json:"holdings"`
	} `json:"topHoldings"`
}

type chartPayload struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type searchPayload struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longname"`
		ShortName string `json:"shortname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// history is the derived daily series used for price and volatility metrics
type history struct {
	Closes  []float64
	Volumes []float64
}

// fetchSummary fetches (or reads from cache) the quote summary for a symbol
func (c *Client) fetchSummary(ctx context.Context, symbol string) (*summaryResult, error) {
	cacheKey := fmt.Sprintf("info_%s", symbol)
	if cached, ok := c.cache.Get(cacheKey); ok {
		if res, ok := cached.(*summaryResult); ok {
			return res, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	modules := "price,summaryDetail,financialData,defaultKeyStatistics,assetProfile,fundProfile,topHoldings"
	fullURL := fmt.Sprintf("%s/%s?modules=%s", c.cfg.QuoteBaseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	var payload summaryPayload
	if err := c.httpClient.GetJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("quote summary fetch failed: %w", err)
	}

	if payload.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary error: %s", payload.QuoteSummary.Error.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary for %s", symbol)
	}

	result := &payload.QuoteSummary.Result[0]
	c.cache.Set(cacheKey, result)
	return result, nil
}

// fetchHistory fetches (or reads from cache) one year of daily closes
func (c *Client) fetchHistory(ctx context.Context, symbol string) (*history, error) {
	cacheKey := fmt.Sprintf("chart_%s", symbol)
	if cached, ok := c.cache.Get(cacheKey); ok {
		if h, ok := cached.(*history); ok {
			return h, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s/%s?range=1y&interval=1d", c.cfg.ChartBaseURL, url.PathEscape(symbol))

	var payload chartPayload
	if err := c.httpClient.GetJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("chart fetch failed: %w", err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart error: %s", payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	quote := payload.Chart.Result[0].Indicators.Quote[0]
	h := &history{}
	for i, close := range quote.Close {
		if close == nil {
			continue
		}
		h.Closes = append(h.Closes, *close)
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			h.Volumes = append(h.Volumes, *quote.Volume[i])
		} else {
			h.Volumes = append(h.Volumes, 0)
		}
	}

	if len(h.Closes) == 0 {
		return nil, fmt.Errorf("empty price history for %s", symbol)
	}

	c.cache.Set(cacheKey, h)
	return h, nil
}

// Snapshot assembles the full per-symbol view. Category failures are recorded
// as Err markers; only a completely unknown symbol returns an error.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	snap := &Snapshot{
		Ticker:    symbol,
		FetchedAt: time.Now(),
	}

	summary, sumErr := c.fetchSummary(ctx, symbol)
	hist, histErr := c.fetchHistory(ctx, symbol)

	if sumErr != nil && histErr != nil {
		return nil, fmt.Errorf("no data available for %s: %w", symbol, sumErr)
	}

	if sumErr != nil {
		snap.CompanyName = symbol
		snap.Fundamentals.Err = sumErr.Error()
		snap.Analyst.Err = sumErr.Error()
		snap.ShortInterest.Err = sumErr.Error()
	} else {
		snap.CompanyName = companyName(summary, symbol)
		snap.Fundamentals = buildFundamentals(summary)
		snap.Analyst = buildAnalyst(summary)
		snap.ShortInterest = buildShortInterest(summary)
	}

	if histErr != nil {
		snap.Price.Err = histErr.Error()
		snap.Volatility.Err = histErr.Error()
		snap.Comparison.Err = histErr.Error()
	} else {
		snap.Price = buildPriceData(hist, summary)
		snap.Volatility = buildVolatility(hist, summary)
		snap.Comparison = buildComparison(hist)
	}

	news, newsErr := c.News(ctx, symbol)
	if newsErr != nil {
		c.logger.WithError(newsErr).WithField("symbol", symbol).Debug("News fetch failed")
	}
	snap.News = news

	if summary != nil && summary.Price.QuoteType == "ETF" {
		snap.ETFHoldings = buildHoldings(summary)
	}

	return snap, nil
}

// Quote returns the lightweight view used by discovery scans
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	summary, err := c.fetchSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Ticker:    symbol,
		Name:      companyName(summary, symbol),
		Price:     summary.Price.RegularMarketPrice.Raw,
		MarketCap: summary.Price.MarketCap.Raw,
		QuoteType: summary.Price.QuoteType,
	}

	if hist, err := c.fetchHistory(ctx, symbol); err == nil {
		q.Change1W = pctChange(hist.Closes, 6)
		q.Change1Y = pctChange(hist.Closes, len(hist.Closes)-1)
	}

	return q, nil
}

// Search looks up tickers by company name or fragment
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s?q=%s&quotesCount=5", c.cfg.SearchBaseURL, url.QueryEscape(query))

	var payload searchPayload
	if err := c.httpClient.GetJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("ticker search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Quotes))
	for _, q := range payload.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		if name == "" {
			name = q.Symbol
		}
		results = append(results, SearchResult{
			Ticker:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
	}

	return results, nil
}

func companyName(summary *summaryResult, fallback string) string {
	if summary.Price.LongName != "" {
		return summary.Price.LongName
	}
	if summary.Price.ShortName != "" {
		return summary.Price.ShortName
	}
	return fallback
}

// pctChange computes the percent change from daysBack trading days ago to now
func pctChange(closes []float64, daysBack int) *float64 {
	if daysBack <= 0 || len(closes) <= daysBack {
		return nil
	}
	current := closes[len(closes)-1]
	start := closes[len(closes)-1-daysBack]
	if start == 0 {
		return Float(0)
	}
	return Float((current/start - 1) * 100)
}

func buildPriceData(hist *history, summary *summaryResult) PriceData {
	current := hist.Closes[len(hist.Closes)-1]

	p := PriceData{
		CurrentPrice: Float(current),
		Currency:     "USD",
		Change1W:     pctChange(hist.Closes, 6),
		Change1M:     pctChange(hist.Closes, 22),
		Change6M:     pctChange(hist.Closes, 127),
		Change1Y:     pctChange(hist.Closes, len(hist.Closes)-1),
	}

	if summary != nil {
		if summary.Price.Currency != "" {
			p.Currency = summary.Price.Currency
		}
		p.High52W = summary.SummaryDetail.FiftyTwoWeekHigh.Raw
		p.Low52W = summary.SummaryDetail.FiftyTwoWeekLow.Raw
		if p.High52W != nil && *p.High52W > 0 {
			p.From52WHigh = Float((current / *p.High52W - 1) * 100)
		}
		if p.Low52W != nil && *p.Low52W > 0 {
			p.From52WLow = Float((current / *p.Low52W - 1) * 100)
		}
	}

	return p
}

func buildVolatility(hist *history, summary *summaryResult) VolatilityData {
	v := VolatilityData{}

	if len(hist.Closes) > 1 {
		returns := make([]float64, 0, len(hist.Closes)-1)
		for i := 1; i < len(hist.Closes); i++ {
			if hist.Closes[i-1] != 0 {
				returns = append(returns, hist.Closes[i]/hist.Closes[i-1]-1)
			}
		}
		daily := stddev(returns)
		v.VolatilityDaily = Float(daily * 100)
		v.VolatilityAnnual = Float(daily * math.Sqrt(tradingDaysPerYear) * 100)
	}

	if len(hist.Volumes) > 0 {
		var sum float64
		for _, vol := range hist.Volumes {
			sum += vol
		}
		avg := sum / float64(len(hist.Volumes))
		current := hist.Volumes[len(hist.Volumes)-1]
		v.AvgVolume = Float(avg)
		v.CurrentVolume = Float(current)
		if avg > 0 {
			v.VolumeRatio = Float(current / avg)
		} else {
			v.VolumeRatio = Float(1)
		}
	}

	if summary != nil {
		v.Beta = summary.SummaryDetail.Beta.Raw
	}

	return v
}

func buildComparison(hist *history) ComparisonData {
	// Mock benchmark return of 10% in place of a second index fetch
	const benchmarkReturn = 10.0

	if len(hist.Closes) < 2 || hist.Closes[0] == 0 {
		return ComparisonData{Err: "no comparison data available"}
	}

	stockReturn := (hist.Closes[len(hist.Closes)-1]/hist.Closes[0] - 1) * 100
	return ComparisonData{
		StockReturn1Y:       Float(stockReturn),
		RelativePerformance: Float(stockReturn - benchmarkReturn),
		IndexName:           "S&P 500 (Est.)",
		Outperforming:       stockReturn > benchmarkReturn,
	}
}

func buildFundamentals(s *summaryResult) Fundamentals {
	return Fundamentals{
		MarketCap:       s.Price.MarketCap.Raw,
		EnterpriseValue: s.DefaultKeyStatistics.EnterpriseValue.Raw,
		PERatio:         s.SummaryDetail.TrailingPE.Raw,
		ForwardPE:       s.SummaryDetail.ForwardPE.Raw,
		PEGRatio:        s.DefaultKeyStatistics.PegRatio.Raw,
		PBRatio:         s.DefaultKeyStatistics.PriceToBook.Raw,
		PSRatio:         s.SummaryDetail.PriceToSales.Raw,
		EVEBITDA:        s.DefaultKeyStatistics.EnterpriseToEbitda.Raw,
		Revenue:         s.FinancialData.TotalRevenue.Raw,
		RevenueGrowth:   s.FinancialData.RevenueGrowth.Raw,
		GrossMargin:     s.FinancialData.GrossMargins.Raw,
		OperatingMargin: s.FinancialData.OperatingMargins.Raw,
		ProfitMargin:    s.FinancialData.ProfitMargins.Raw,
		ROE:             s.FinancialData.ReturnOnEquity.Raw,
		ROA:             s.FinancialData.ReturnOnAssets.Raw,
		EPS:             s.DefaultKeyStatistics.TrailingEps.Raw,
		EarningsGrowth:  s.FinancialData.EarningsGrowth.Raw,
		TotalCash:       s.FinancialData.TotalCash.Raw,
		TotalDebt:       s.FinancialData.TotalDebt.Raw,
		DebtToEquity:    s.FinancialData.DebtToEquity.Raw,
		CurrentRatio:    s.FinancialData.CurrentRatio.Raw,
		FreeCashflow:    s.FinancialData.FreeCashflow.Raw,
		DividendYield:   s.SummaryDetail.DividendYield.Raw,
		PayoutRatio:     s.SummaryDetail.PayoutRatio.Raw,
		Sector:          s.AssetProfile.Sector,
		Industry:        s.AssetProfile.Industry,
		Country:         s.AssetProfile.Country,
		QuoteType:       s.Price.QuoteType,
		ExpenseRatio:    s.SummaryDetail.AnnualReportExpense.Raw,
		TotalAssets:     s.SummaryDetail.TotalAssets.Raw,
		Category:        s.FundProfile.CategoryName,
		FundFamily:      s.FundProfile.Family,
	}
}

func buildAnalyst(s *summaryResult) AnalystData {
	a := AnalystData{
		TargetHigh:         s.FinancialData.TargetHighPrice.Raw,
		TargetLow:          s.FinancialData.TargetLowPrice.Raw,
		TargetMean:         s.FinancialData.TargetMeanPrice.Raw,
		TargetMedian:       s.FinancialData.TargetMedianPrice.Raw,
		Recommendation:     s.FinancialData.RecommendationKey,
		RecommendationMean: s.FinancialData.RecommendationMean.Raw,
	}
	if n := s.FinancialData.NumberOfAnalysts.Raw; n != nil {
		count := int(*n)
		a.NumAnalysts = &count
	}
	return a
}

func buildShortInterest(s *summaryResult) ShortInterest {
	return ShortInterest{
		ShortRatio:        s.DefaultKeyStatistics.ShortRatio.Raw,
		ShortPercentFloat: s.DefaultKeyStatistics.ShortPercentOfFloat.Raw,
		SharesShort:       s.DefaultKeyStatistics.SharesShort.Raw,
		SharesShortPrior:  s.DefaultKeyStatistics.SharesShortPrior.Raw,
	}
}

func buildHoldings(s *summaryResult) []Holding {
	holdings := make([]Holding, 0, len(s.TopHoldings.Holdings))
	for i, h := range s.TopHoldings.Holdings {
		if i >= 10 {
			break
		}
		weight := 0.0
		if h.HoldingPercent.Raw != nil {
			weight = *h.HoldingPercent.Raw * 100
		}
		holdings = append(holdings, Holding{
			Symbol: h.Symbol,
			Name:   h.HoldingName,
			Weight: weight,
		})
	}
	return holdings
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
