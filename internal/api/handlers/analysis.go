package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Playwithbroken/stock-analysis-tool/internal/analysis"
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// AnalysisHandler handles per-ticker analysis endpoints
type AnalysisHandler struct {
	provider marketdata.Provider
	analyzer *analysis.Analyzer
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(provider marketdata.Provider, analyzer *analysis.Analyzer, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		provider: provider,
		analyzer: analyzer,
		logger:   log,
	}
}

// AnalyzeResponse bundles the recommendation with the raw snapshot and,
// for funds, the cost analysis
type AnalyzeResponse struct {
	Recommendation *analysis.Recommendation `json:"recommendation"`
	Snapshot       *marketdata.Snapshot     `json:"data"`
	ETF            *analysis.ETFReport      `json:"etf_analysis,omitempty"`
}

// Analyze runs the full scoring engine for one ticker
// GET /api/analyze/{ticker}
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	snap, err := h.provider.Snapshot(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Warn("Snapshot fetch failed")
		respondError(w, http.StatusNotFound, "No data available for "+ticker)
		return
	}

	resp := AnalyzeResponse{
		Recommendation: h.analyzer.Score(snap),
		Snapshot:       snap,
	}
	if snap.Fundamentals.QuoteType == "ETF" {
		report := h.analyzer.AnalyzeETF(snap)
		resp.ETF = &report
	}

	respondJSON(w, http.StatusOK, resp)
}

// Quick returns the lightweight quote view for one ticker
// GET /api/quick/{ticker}
func (h *AnalysisHandler) Quick(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	quote, err := h.provider.Quote(r.Context(), ticker)
	if err != nil {
		respondError(w, http.StatusNotFound, "No data available for "+ticker)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Search looks up tickers by company name or fragment
// GET /api/search?q=...
func (h *AnalysisHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'")
		return
	}

	results, err := h.provider.Search(r.Context(), query)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Warn("Ticker search failed")
		respondJSON(w, http.StatusOK, []marketdata.SearchResult{})
		return
	}

	respondJSON(w, http.StatusOK, results)
}
