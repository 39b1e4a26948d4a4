package analysis

// Finding is one discrete observation about a stock. Rating direction and
// the score delta of the rule that emitted it always agree in sign: a
// positive-rated finding never comes with a negative delta and vice versa.
type Finding struct {
	Metric         string `json:"metric"`
	Value          string `json:"value"`
	Rating         Rating `json:"rating"`
	Interpretation string `json:"interpretation,omitempty"`
	Category       string `json:"category,omitempty"`
}

// CategoryResult is the outcome of one analysis category for one run
type CategoryResult struct {
	Category string    `json:"category"`
	Findings []Finding `json:"findings"`
	Score    float64   `json:"score"` // clamped to [-100, 100]
	Summary  string    `json:"summary"`
}

// Recommendation is the final output of the scoring engine
type Recommendation struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`

	Categories map[string]CategoryResult `json:"analyses"`

	TotalScore float64   `json:"total_score"`
	Valuation  Valuation `json:"valuation"`
	Action     Action    `json:"action"`
	Verdict    string    `json:"verdict"`
	ShortTerm  string    `json:"short_term_traders"`
	LongTerm   string    `json:"long_term_investors"`

	// Informational side paths, not part of the weighted total
	Potential CategoryResult `json:"potential"`
	Rebound   CategoryResult `json:"rebound"`
}

// Category keys used in Recommendation.Categories
const (
	CategoryPrice         = "price_performance"
	CategoryVolatility    = "volatility"
	CategoryFundamentals  = "fundamentals"
	CategoryFear          = "fear_factors"
	CategoryOpportunities = "opportunities"
	CategoryNews          = "news"
	CategoryInsider       = "insider"
	CategoryPeers         = "peers"
)

// clampScore bounds a category score to [-100, 100]
func clampScore(score float64) float64 {
	if score > 100 {
		return 100
	}
	if score < -100 {
		return -100
	}
	return score
}

// clampPositive bounds a side-path score to [0, 100]
func clampPositive(score float64) float64 {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// noDataResult is the degraded result for a category whose sub-record
// carries an error marker
func noDataResult(category, errMsg string) CategoryResult {
	return CategoryResult{
		Category: category,
		Findings: []Finding{{
			Metric:         "No Data",
			Value:          "-",
			Rating:         Neutral,
			Interpretation: errMsg,
		}},
		Score:   0,
		Summary: "No data available",
	}
}
