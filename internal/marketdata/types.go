package marketdata

import "time"

// Snapshot is an immutable per-symbol view of everything the analysis engine
// consumes. Every sub-record is either populated or carries an Err marker;
// a failed category never fails the whole snapshot.
type Snapshot struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`

	Price         PriceData      `json:"price_data"`
	Volatility    VolatilityData `json:"volatility"`
	Fundamentals  Fundamentals   `json:"fundamentals"`
	Analyst       AnalystData    `json:"analyst_data"`
	ShortInterest ShortInterest  `json:"short_interest"`
	News          []NewsItem     `json:"news"`
	Comparison    ComparisonData `json:"comparison"`
	ETFHoldings   []Holding      `json:"etf_holdings,omitempty"`

	FetchedAt time.Time `json:"fetch_time"`
}

// PriceData holds current price and period changes
type PriceData struct {
	Err string `json:"error,omitempty"`

	CurrentPrice *float64 `json:"current_price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Change1W     *float64 `json:"change_1w,omitempty"`
	Change1M     *float64 `json:"change_1m,omitempty"`
	Change6M     *float64 `json:"change_6m,omitempty"`
	Change1Y     *float64 `json:"change_1y,omitempty"`
	High52W      *float64 `json:"high_52w,omitempty"`
	Low52W       *float64 `json:"low_52w,omitempty"`
	From52WHigh  *float64 `json:"from_52w_high,omitempty"`
	From52WLow   *float64 `json:"from_52w_low,omitempty"`
}

// VolatilityData holds volatility and volume metrics
type VolatilityData struct {
	Err string `json:"error,omitempty"`

	VolatilityDaily  *float64 `json:"volatility_daily,omitempty"`
	VolatilityAnnual *float64 `json:"volatility_annual,omitempty"`
	AvgVolume        *float64 `json:"avg_volume,omitempty"`
	CurrentVolume    *float64 `json:"current_volume,omitempty"`
	VolumeRatio      *float64 `json:"volume_ratio,omitempty"`
	Beta             *float64 `json:"beta,omitempty"`
}

// Fundamentals holds valuation, profitability and balance sheet metrics
type Fundamentals struct {
	Err string `json:"error,omitempty"`

	MarketCap       *float64 `json:"market_cap,omitempty"`
	EnterpriseValue *float64 `json:"enterprise_value,omitempty"`
	PERatio         *float64 `json:"pe_ratio,omitempty"`
	ForwardPE       *float64 `json:"forward_pe,omitempty"`
	PEGRatio        *float64 `json:"peg_ratio,omitempty"`
	PBRatio         *float64 `json:"pb_ratio,omitempty"`
	PSRatio         *float64 `json:"ps_ratio,omitempty"`
	EVEBITDA        *float64 `json:"ev_ebitda,omitempty"`
	Revenue         *float64 `json:"revenue,omitempty"`
	RevenueGrowth   *float64 `json:"revenue_growth,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	ProfitMargin    *float64 `json:"profit_margin,omitempty"`
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`
	EPS             *float64 `json:"eps,omitempty"`
	EarningsGrowth  *float64 `json:"earnings_growth,omitempty"`
	TotalCash       *float64 `json:"total_cash,omitempty"`
	TotalDebt       *float64 `json:"total_debt,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio    *float64 `json:"current_ratio,omitempty"`
	FreeCashflow    *float64 `json:"free_cashflow,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	PayoutRatio     *float64 `json:"payout_ratio,omitempty"`
	Sector          string   `json:"sector,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	Country         string   `json:"country,omitempty"`
	QuoteType       string   `json:"quote_type,omitempty"`

	// Fund-specific fields
	ExpenseRatio *float64 `json:"expense_ratio,omitempty"`
	TotalAssets  *float64 `json:"total_assets,omitempty"`
	Category     string   `json:"category,omitempty"`
	FundFamily   string   `json:"fund_family,omitempty"`
}

// AnalystData holds analyst recommendations and price targets
type AnalystData struct {
	Err string `json:"error,omitempty"`

	TargetHigh         *float64 `json:"target_high,omitempty"`
	TargetLow          *float64 `json:"target_low,omitempty"`
	TargetMean         *float64 `json:"target_mean,omitempty"`
	TargetMedian       *float64 `json:"target_median,omitempty"`
	Recommendation     string   `json:"recommendation,omitempty"`
	RecommendationMean *float64 `json:"recommendation_mean,omitempty"`
	NumAnalysts        *int     `json:"num_analysts,omitempty"`
}

// ShortInterest holds short selling metrics
type ShortInterest struct {
	Err string `json:"error,omitempty"`

	ShortRatio        *float64 `json:"short_ratio,omitempty"`
	ShortPercentFloat *float64 `json:"short_percent_float,omitempty"`
	SharesShort       *float64 `json:"shares_short,omitempty"`
	SharesShortPrior  *float64 `json:"shares_short_prior,omitempty"`
}

// NewsItem is a single news headline
type NewsItem struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ComparisonData compares the stock's return against a market index
type ComparisonData struct {
	Err string `json:"error,omitempty"`

	StockReturn1Y       *float64 `json:"stock_return_1y,omitempty"`
	RelativePerformance *float64 `json:"relative_performance,omitempty"`
	IndexName           string   `json:"index_name,omitempty"`
	Outperforming       bool     `json:"outperforming"`
}

// Holding is one position inside an ETF
type Holding struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Quote is the lightweight per-symbol fetch used by discovery scans
type Quote struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price,omitempty"`
	Change1W  *float64 `json:"change,omitempty"`
	Change1Y  *float64 `json:"change_1y,omitempty"`
	MarketCap *float64 `json:"market_cap,omitempty"`
	QuoteType string   `json:"quote_type,omitempty"`
}

// SearchResult is one ticker search suggestion
type SearchResult struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Float returns a pointer to v; convenience for building snapshots.
func Float(v float64) *float64 {
	return &v
}
