package discovery

// Mover is the lightweight scan item used by trending, movers, crypto and
// commodity scans
type Mover struct {
	Ticker       string   `json:"ticker"`
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	Change       *float64 `json:"change"`
	TrendContext string   `json:"trend_context"`
}

// ReboundCandidate is a quality stock that sold off sharply
type ReboundCandidate struct {
	Ticker   string   `json:"ticker"`
	Name     string   `json:"name"`
	Drawdown *float64 `json:"drawdown"`
	Reason   string   `json:"reason"`
	Score    float64  `json:"score"`
}

// SmallCap is a small company with meaningful revenue growth
type SmallCap struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	MarketCap float64 `json:"market_cap"`
	Growth    float64 `json:"growth"`
	Score     float64 `json:"score"`
}

// Moonshot is a speculative high-growth or micro-cap candidate
type Moonshot struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	Growth       float64 `json:"growth"`
	MarketCap    float64 `json:"market_cap"`
	TrendContext string  `json:"trend_context"`
	Score        float64 `json:"score"`
}

// DividendPayer is a stock clearing the minimum yield floor
type DividendPayer struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	Yield       float64 `json:"yield"`
	PayoutRatio float64 `json:"payout_ratio"`
	Score       float64 `json:"score"`
}

// ETFItem is a fund with cost and size metadata
type ETFItem struct {
	Ticker       string   `json:"ticker"`
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	Change       *float64 `json:"change"`
	TER          *float64 `json:"ter"`
	TotalAssets  *float64 `json:"total_assets"`
	Category     string   `json:"category"`
	TrendContext string   `json:"trend_context"`
}

// HotStock is one constituent of a sector basket
type HotStock struct {
	Ticker   string   `json:"ticker"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Change1W *float64 `json:"change_1w"`
}

// SectorSentiment is one row of the sector heatmap
type SectorSentiment struct {
	Sector         string     `json:"sector"`
	SentimentScore float64    `json:"sentiment_score"`
	Status         string     `json:"status"`
	Strength       float64    `json:"strength"`
	HotStocks      []HotStock `json:"hot_stocks"`
}

// Heatmap bucket labels
const (
	StatusBullish = "BULLISH"
	StatusNeutral = "NEUTRAL"
	StatusBearish = "BEARISH"
)

// StarAssets highlights the standout winners and losers of the day
type StarAssets struct {
	DayWinner  *Mover  `json:"day_winner"`
	WeekWinner *Mover  `json:"week_winner"`
	DayLoser   *Mover  `json:"day_loser"`
	WeekLoser  *Mover  `json:"week_loser"`
	ForYou     []Mover `json:"for_you"`
}

// Suggestion is one diversification recommendation
type Suggestion struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}
