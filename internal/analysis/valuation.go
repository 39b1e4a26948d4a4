package analysis

import "github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"

// determineValuation buckets the average of per-multiple votes (-2..+2)
// from P/E, P/B and EV/EBITDA. No data means fairly valued.
func (a *Analyzer) determineValuation(snap *marketdata.Snapshot) Valuation {
	fund := snap.Fundamentals

	votes := make([]int, 0, 3)

	if fund.PERatio != nil {
		pe := *fund.PERatio
		switch {
		case pe < 0:
			votes = append(votes, 0) // unprofitable, multiple not meaningful
		case pe < 12:
			votes = append(votes, 2)
		case pe < 20:
			votes = append(votes, 1)
		case pe < 30:
			votes = append(votes, 0)
		case pe < 45:
			votes = append(votes, -1)
		default:
			votes = append(votes, -2)
		}
	}

	if fund.PBRatio != nil {
		pb := *fund.PBRatio
		switch {
		case pb < 1:
			votes = append(votes, 2)
		case pb < 2:
			votes = append(votes, 1)
		case pb < 4:
			votes = append(votes, 0)
		default:
			votes = append(votes, -1)
		}
	}

	if fund.EVEBITDA != nil {
		ev := *fund.EVEBITDA
		switch {
		case ev < 8:
			votes = append(votes, 2)
		case ev < 12:
			votes = append(votes, 1)
		case ev < 18:
			votes = append(votes, 0)
		default:
			votes = append(votes, -1)
		}
	}

	if len(votes) == 0 {
		return FairlyValued
	}

	sum := 0
	for _, v := range votes {
		sum += v
	}
	avg := float64(sum) / float64(len(votes))

	switch {
	case avg >= 1.5:
		return HeavilyUndervalued
	case avg >= 0.5:
		return Undervalued
	case avg >= -0.5:
		return FairlyValued
	case avg >= -1.5:
		return Overvalued
	default:
		return HeavilyOvervalued
	}
}
