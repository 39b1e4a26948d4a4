package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
)

func TestDetermineValuation(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name string
		fund marketdata.Fundamentals
		want Valuation
	}{
		{
			name: "no multiples available",
			fund: marketdata.Fundamentals{},
			want: FairlyValued,
		},
		{
			name: "deep value on every multiple",
			fund: marketdata.Fundamentals{
				PERatio:  marketdata.Float(10),
				PBRatio:  marketdata.Float(0.8),
				EVEBITDA: marketdata.Float(6),
			},
			want: HeavilyUndervalued,
		},
		{
			name: "moderately cheap",
			fund: marketdata.Fundamentals{
				PERatio:  marketdata.Float(15),
				PBRatio:  marketdata.Float(1.5),
				EVEBITDA: marketdata.Float(10),
			},
			want: Undervalued,
		},
		{
			name: "expensive across the board",
			fund: marketdata.Fundamentals{
				PERatio:  marketdata.Float(40),
				PBRatio:  marketdata.Float(6),
				EVEBITDA: marketdata.Float(22),
			},
			want: Overvalued,
		},
		{
			name: "extreme multiple",
			fund: marketdata.Fundamentals{
				PERatio: marketdata.Float(60),
			},
			want: HeavilyOvervalued,
		},
		{
			name: "negative earnings vote neutral",
			fund: marketdata.Fundamentals{
				PERatio: marketdata.Float(-10),
			},
			want: FairlyValued,
		},
		{
			name: "mixed votes average out",
			fund: marketdata.Fundamentals{
				PERatio: marketdata.Float(10), // +2
				PBRatio: marketdata.Float(6),  // -1
			},
			want: Undervalued, // avg 0.5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.determineValuation(&marketdata.Snapshot{Fundamentals: tt.fund})
			assert.Equal(t, tt.want, got)
		})
	}
}
