package analysis

import (
	"encoding/json"
	"fmt"
)

// Rating is the ordinal judgement attached to a single finding
type Rating int

const (
	VeryNegative Rating = -2
	Negative     Rating = -1
	Neutral      Rating = 0
	Positive     Rating = 1
	VeryPositive Rating = 2
)

// String returns the wire representation of a rating
func (r Rating) String() string {
	switch r {
	case VeryNegative:
		return "very_negative"
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	case VeryPositive:
		return "very_positive"
	default:
		return "neutral"
	}
}

// MarshalJSON encodes the rating as its string form
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes the wire string back to its ordinal value
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "very_negative":
		*r = VeryNegative
	case "negative":
		*r = Negative
	case "neutral":
		*r = Neutral
	case "positive":
		*r = Positive
	case "very_positive":
		*r = VeryPositive
	default:
		return fmt.Errorf("unknown rating %q", s)
	}
	return nil
}

// Valuation is the overall valuation tier derived from fundamental ratios
type Valuation string

const (
	HeavilyUndervalued Valuation = "Heavily Undervalued"
	Undervalued        Valuation = "Undervalued"
	FairlyValued       Valuation = "Fairly Valued"
	Overvalued         Valuation = "Overvalued"
	HeavilyOvervalued  Valuation = "Heavily Overvalued"
)

// Action is the categorical recommendation derived from the total score
type Action string

const (
	ActionBuy            Action = "BUY"
	ActionHoldAccumulate Action = "HOLD / ACCUMULATE"
	ActionHold           Action = "HOLD"
	ActionReduceAvoid    Action = "REDUCE / AVOID"
	ActionSellAvoid      Action = "SELL / AVOID"
)

// Category weights for the total score. Insider activity and peer
// benchmarking are informational only and carry no weight.
const (
	WeightFundamentals  = 0.35
	WeightFear          = 0.25
	WeightOpportunities = 0.20
	WeightPrice         = 0.10
	WeightVolatility    = 0.05
	WeightNews          = 0.05
)

// Total score breakpoints shared by action and verdict. Strict `>` at every
// boundary: 26 is a BUY, 25 is not.
const (
	breakpointBuy        = 25.0
	breakpointAccumulate = 10.0
	breakpointHold       = -10.0
	breakpointReduce     = -25.0
)

// actionForScore maps a total score to a categorical action
func actionForScore(score float64) Action {
	switch {
	case score > breakpointBuy:
		return ActionBuy
	case score > breakpointAccumulate:
		return ActionHoldAccumulate
	case score > breakpointHold:
		return ActionHold
	case score > breakpointReduce:
		return ActionReduceAvoid
	default:
		return ActionSellAvoid
	}
}

// verdictForScore maps a total score to the one-line verdict. It uses the
// same breakpoints as actionForScore so a BUY can never pair with the
// critical-risk sentence.
func verdictForScore(score float64) string {
	switch {
	case score > breakpointBuy:
		return "Außergewöhnliches Wachstumspotenzial mit starken Fundamentaldaten."
	case score > breakpointAccumulate:
		return "Solider Wachstumswert mit moderatem Aufwärtspotenzial."
	case score > breakpointHold:
		return "Neutrale Marktstellung mit Fokus auf Stabilität."
	case score > breakpointReduce:
		return "Erhöhtes Risiko, Fundamentaldaten weisen Schwächen auf."
	default:
		return "Kritisches Risikoprofil – Vorsicht geboten."
	}
}

// horizonForAction returns the short-term and long-term guidance strings
func horizonForAction(action Action) (shortTerm, longTerm string) {
	switch action {
	case ActionBuy:
		return "Potentially attractive for momentum trades",
			"Strong candidate for long-term investment"
	case ActionHoldAccumulate:
		return "Neutral - wait for better entry",
			"Consider for long-term if fundamentals align with thesis"
	case ActionHold:
		return "No clear trading opportunity",
			"Hold if owned, wait for better value to buy"
	case ActionReduceAvoid:
		return "Avoid - risk/reward unfavorable",
			"Caution advised - address concerns before investing"
	default:
		return "Avoid - high risk",
			"Not recommended - significant concerns"
	}
}
