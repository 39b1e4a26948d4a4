package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Playwithbroken/stock-analysis-tool/internal/analysis"
	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/internal/portfolio"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// PortfolioHandler handles portfolio CRUD and portfolio-level analysis
type PortfolioHandler struct {
	repo      *portfolio.Repository
	provider  marketdata.Provider
	analyzer  *analysis.Analyzer
	discovery *discovery.Service
	logger    *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(
	repo *portfolio.Repository,
	provider marketdata.Provider,
	analyzer *analysis.Analyzer,
	svc *discovery.Service,
	log *logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		repo:      repo,
		provider:  provider,
		analyzer:  analyzer,
		discovery: svc,
		logger:    log,
	}
}

// List returns all portfolios
// GET /api/portfolios
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list portfolios")
		respondError(w, http.StatusInternalServerError, "Failed to list portfolios")
		return
	}
	respondJSON(w, http.StatusOK, portfolios)
}

// CreateRequest is the body for portfolio creation
type CreateRequest struct {
	Name string `json:"name"`
}

// Create adds a new empty portfolio
// POST /api/portfolios
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "Portfolio name is required")
		return
	}

	p, err := h.repo.Create(r.Context(), req.Name)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to create portfolio")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// Delete removes a portfolio
// DELETE /api/portfolios/{id}
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to delete portfolio")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddHoldingRequest is the body for adding a holding
type AddHoldingRequest struct {
	Ticker   string   `json:"ticker"`
	Shares   float64  `json:"shares"`
	BuyPrice *float64 `json:"buyPrice"`
}

// AddHolding adds shares to a portfolio, merging with an existing position
// POST /api/portfolios/{id}/holdings
func (h *PortfolioHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req AddHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ticker == "" || req.Shares <= 0 {
		respondError(w, http.StatusBadRequest, "Ticker and a positive share count are required")
		return
	}

	if err := h.repo.AddHolding(r.Context(), id, req.Ticker, req.Shares, req.BuyPrice); err != nil {
		h.logger.WithError(err).Error("Failed to add holding")
		respondError(w, http.StatusInternalServerError, "Failed to add holding")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveHolding removes a ticker from a portfolio
// DELETE /api/portfolios/{id}/holdings/{ticker}
func (h *PortfolioHandler) RemoveHolding(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.repo.RemoveHolding(r.Context(), vars["id"], vars["ticker"]); err != nil {
		h.logger.WithError(err).Error("Failed to remove holding")
		respondError(w, http.StatusInternalServerError, "Failed to remove holding")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// HoldingVerdict is one per-position verdict line
type HoldingVerdict struct {
	Ticker  string  `json:"ticker"`
	Verdict string  `json:"verdict"`
	Score   float64 `json:"score"`
}

// Verdict scores every holding of a portfolio
// GET /api/portfolio/{id}/verdict
func (h *PortfolioHandler) Verdict(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Portfolio not found")
		return
	}

	verdicts := make([]HoldingVerdict, 0, len(p.Holdings))
	for _, holding := range p.Holdings {
		snap, err := h.provider.Snapshot(r.Context(), holding.Ticker)
		if err != nil {
			h.logger.WithError(err).WithField("ticker", holding.Ticker).Debug("Verdict fetch failed")
			continue
		}
		rec := h.analyzer.Score(snap)
		verdicts = append(verdicts, HoldingVerdict{
			Ticker:  holding.Ticker,
			Verdict: rec.Verdict,
			Score:   rec.TotalScore,
		})
	}
	respondJSON(w, http.StatusOK, verdicts)
}

// Suggestions returns diversification suggestions for a portfolio
// GET /api/portfolio/{id}/suggestions
func (h *PortfolioHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Portfolio not found")
		return
	}

	tickers := make([]string, 0, len(p.Holdings))
	for _, holding := range p.Holdings {
		tickers = append(tickers, strings.ToUpper(holding.Ticker))
	}
	respondJSON(w, http.StatusOK, h.discovery.Diversification(r.Context(), tickers))
}
