package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Playwithbroken/stock-analysis-tool/internal/api/handlers"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	analysisHandler *handlers.AnalysisHandler,
	discoveryHandler *handlers.DiscoveryHandler,
	portfolioHandler *handlers.PortfolioHandler,
	streamHandler *handlers.StreamHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Analysis endpoints
	api.HandleFunc("/analyze/{ticker}", analysisHandler.Analyze).Methods("GET")
	api.HandleFunc("/quick/{ticker}", analysisHandler.Quick).Methods("GET")
	api.HandleFunc("/search", analysisHandler.Search).Methods("GET")

	// Discovery endpoints
	api.HandleFunc("/discovery/trending", discoveryHandler.Trending).Methods("GET")
	api.HandleFunc("/discovery/gainers", discoveryHandler.Gainers).Methods("GET")
	api.HandleFunc("/discovery/losers", discoveryHandler.Losers).Methods("GET")
	api.HandleFunc("/discovery/rebounds", discoveryHandler.Rebounds).Methods("GET")
	api.HandleFunc("/discovery/small-caps", discoveryHandler.SmallCaps).Methods("GET")
	api.HandleFunc("/discovery/moonshots", discoveryHandler.Moonshots).Methods("GET")
	api.HandleFunc("/discovery/dividends", discoveryHandler.Dividends).Methods("GET")
	api.HandleFunc("/discovery/etfs", discoveryHandler.ETFs).Methods("GET")
	api.HandleFunc("/discovery/cryptos", discoveryHandler.Cryptos).Methods("GET")
	api.HandleFunc("/discovery/commodities", discoveryHandler.Commodities).Methods("GET")
	api.HandleFunc("/discovery/stars", discoveryHandler.Stars).Methods("GET")
	api.HandleFunc("/discovery/sentiment-heatmap", discoveryHandler.Heatmap).Methods("GET")
	api.HandleFunc("/discovery/high-risk-opportunities", discoveryHandler.HighRisk).Methods("GET")

	// Live movers stream
	api.HandleFunc("/stream/movers", streamHandler.Movers).Methods("GET")

	// Portfolio endpoints
	api.HandleFunc("/portfolios", portfolioHandler.List).Methods("GET")
	api.HandleFunc("/portfolios", portfolioHandler.Create).Methods("POST")
	api.HandleFunc("/portfolios/{id}", portfolioHandler.Delete).Methods("DELETE")
	api.HandleFunc("/portfolios/{id}/holdings", portfolioHandler.AddHolding).Methods("POST")
	api.HandleFunc("/portfolios/{id}/holdings/{ticker}", portfolioHandler.RemoveHolding).Methods("DELETE")
	api.HandleFunc("/portfolio/{id}/verdict", portfolioHandler.Verdict).Methods("GET")
	api.HandleFunc("/portfolio/{id}/suggestions", portfolioHandler.Suggestions).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "stock-analysis-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
