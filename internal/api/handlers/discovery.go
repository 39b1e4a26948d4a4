package handlers

import (
	"net/http"
	"strconv"

	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
	"github.com/Playwithbroken/stock-analysis-tool/internal/riskscan"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// DiscoveryHandler handles the discovery scan endpoints
type DiscoveryHandler struct {
	discovery *discovery.Service
	riskscan  *riskscan.Scanner
	logger    *logger.Logger
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(svc *discovery.Service, risk *riskscan.Scanner, log *logger.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discovery: svc,
		riskscan:  risk,
		logger:    log,
	}
}

// Trending returns the current trending scan
// GET /api/discovery/trending
func (h *DiscoveryHandler) Trending(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.Trending(r.Context()))
}

// Gainers returns the top gainers
// GET /api/discovery/gainers
func (h *DiscoveryHandler) Gainers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.MarketMovers(r.Context(), "gainers"))
}

// Losers returns the top losers
// GET /api/discovery/losers
func (h *DiscoveryHandler) Losers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.MarketMovers(r.Context(), "losers"))
}

// Rebounds returns oversold quality stocks
// GET /api/discovery/rebounds
func (h *DiscoveryHandler) Rebounds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.Rebounds(r.Context()))
}

// SmallCaps returns growing companies under the market cap ceiling
// GET /api/discovery/small-caps
func (h *DiscoveryHandler) SmallCaps(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.SmallCaps(r.Context()))
}

// Moonshots returns speculative high-growth candidates
// GET /api/discovery/moonshots
func (h *DiscoveryHandler) Moonshots(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.Moonshots(r.Context()))
}

// Dividends returns stocks above the yield floor
// GET /api/discovery/dividends
func (h *DiscoveryHandler) Dividends(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.DividendPayers(r.Context()))
}

// ETFs returns popular funds
// GET /api/discovery/etfs
func (h *DiscoveryHandler) ETFs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.ETFs(r.Context()))
}

// Cryptos returns the crypto universe
// GET /api/discovery/cryptos
func (h *DiscoveryHandler) Cryptos(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.Cryptos(r.Context()))
}

// Commodities returns the commodity futures watchlist
// GET /api/discovery/commodities
func (h *DiscoveryHandler) Commodities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.Commodities(r.Context()))
}

// Stars returns the standout winners and losers
// GET /api/discovery/stars
func (h *DiscoveryHandler) Stars(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.StarAssets(r.Context()))
}

// Heatmap returns per-sector sentiment
// GET /api/discovery/sentiment-heatmap
func (h *DiscoveryHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.discovery.Heatmap(r.Context()))
}

// HighRisk returns high-risk, high-reward opportunities
// GET /api/discovery/high-risk-opportunities?min_score=40
func (h *DiscoveryHandler) HighRisk(w http.ResponseWriter, r *http.Request) {
	minScore := riskscan.DefaultMinOpportunityScore
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			minScore = parsed
		}
	}
	respondJSON(w, http.StatusOK, h.riskscan.ScanOpportunities(r.Context(), minScore))
}
