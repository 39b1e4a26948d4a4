package discovery

import "context"

// Policy declares one scan type: where to look, how to fetch and filter
// each candidate, and how to rank the survivors. Fetch returning (nil, nil)
// rejects the symbol without counting as a failure.
type Policy[T any] struct {
	Name       string
	Universe   []string
	SampleSize int
	Fetch      func(ctx context.Context, symbol string) (*T, error)
	Filter     func(item T) bool
	RankKey    func(item T) float64
	Ascending  bool
	Limit      int
	Fallback   []string
}

// Scan universes. Versioned as data; tuning these lists does not touch
// any scan logic.
var (
	techUniverse = []string{
		"NVDA", "AMD", "TSLA", "PLTR", "SMCI", "ARM",
		"CELH", "MSFT", "AAPL", "GOOGL", "META", "NFLX",
	}

	smallCapWatch = []string{
		"FRGT", "SOFI", "PATH", "MSTR", "HOOD",
		"UPST", "OKLO", "S", "LUNR", "RKLB",
	}

	smallCapFallback = []string{"SOFI", "HOOD", "PATH", "PLTR", "MSTR"}

	dividendWatch = []string{
		"PEP", "KO", "PG", "JNJ", "MMM", "O", "MAIN",
		"XOM", "CVX", "ABBV", "T", "VZ", "MO", "PM",
	}

	moonshotWatch = []string{
		"FRGT", "SOFI", "PATH", "MSTR", "HOOD", "UPST",
		"AI", "PLTR", "ARM", "OKLO", "LUNR", "DNA",
	}

	moonshotFallback = []string{"PLTR", "ARM", "MSTR", "TSLA"}

	cryptoUniverse = []string{
		"BTC-USD", "ETH-USD", "SOL-USD", "AVAX-USD", "DOGE-USD", "DOT-USD",
	}

	// Gold, oil, copper, silver futures
	commodityWatch = []string{"GC=F", "CL=F", "HG=F", "SI=F"}

	etfUniverse = []string{
		"VOO", "QQQ", "VTI", "SCHD", "VYM", "VT", "VWO",
		"VTV", "VUG", "IWM", "EEM", "GLD", "VNQ",
	}

	reboundPool = []string{
		"AAPL", "GOOGL", "MSFT", "AMZN", "META", "NFLX", "TSLA",
		"PYPL", "INTC", "SBUX", "DIS", "BA", "NKE",
	}

	marketMoversUniverse = []string{
		"AAPL", "MSFT", "AMZN", "NVDA", "GOOGL", "META", "TSLA", "AVGO", "ADBE", "COST",
		"PEP", "NFLX", "AMD", "TMUS", "INTC", "CSCO", "CMCSA", "AMAT", "QCOM", "ISRG",
		"MU", "TXN", "AMGN", "HON", "INTU", "BKNG", "SBUX", "VRTX", "MDLZ", "REGN",
		"PANW", "SNPS", "ASML", "LRCX", "ADI", "MELI", "CDNS", "KLAC", "PDD", "PYPL",
	}
)
