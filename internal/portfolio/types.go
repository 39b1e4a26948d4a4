package portfolio

import "time"

// Portfolio is a named collection of holdings
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Holdings  []Holding `json:"holdings"`
}

// Holding is one position in a portfolio. Adding shares of a ticker that
// is already held merges into the existing row.
type Holding struct {
	Ticker   string   `json:"ticker"`
	Shares   float64  `json:"shares"`
	BuyPrice *float64 `json:"buyPrice"`
}
