package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Playwithbroken/stock-analysis-tool/internal/analysis"
	"github.com/Playwithbroken/stock-analysis-tool/internal/api"
	"github.com/Playwithbroken/stock-analysis-tool/internal/api/handlers"
	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
	"github.com/Playwithbroken/stock-analysis-tool/internal/fetchcache"
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/internal/portfolio"
	"github.com/Playwithbroken/stock-analysis-tool/internal/riskscan"
	"github.com/Playwithbroken/stock-analysis-tool/internal/scheduler"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/config"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/database"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/httputil"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the REST API server.

This command:
- serves ticker analysis and quick-quote endpoints
- serves discovery scans (movers, trending, rebounds, ...)
- serves portfolio CRUD plus verdicts and suggestions
- streams market movers over websocket

Endpoints:
  GET  /health
  GET  /api/analyze/{ticker}
  GET  /api/quick/{ticker}
  GET  /api/discovery/gainers
  GET  /api/stream/movers
  GET  /api/portfolios

Example:
  go run ./cmd/stockd api
  go run ./cmd/stockd api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
	apiWarm bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().BoolVar(&apiWarm, "warm", true, "run the movers cache warm job in-process")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== stockd API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (optional shared cache tier)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	sharedCache := redis.NewCache(redisClient, "stockd")

	// 5. Create HTTP client and fetch cache
	httpClient := httputil.New(log, cfg.Provider.Timeout)
	cache := fetchcache.New(cfg.Cache.TTL)

	// 6. Create market data provider
	provider := marketdata.NewClient(cfg.Provider, httpClient, cache, log)

	// 7. Create analyzer and discovery services
	analyzer := analysis.New(log)
	scanner := discovery.NewScanner(cfg.Scan.Workers, log)
	discoverySvc := discovery.NewService(provider, scanner, sharedCache, cfg.Cache, log)
	riskScanner := riskscan.New(provider, scanner, log)

	// 8. Create portfolio repository
	portfolioRepo := portfolio.NewRepository(db.Pool)
	if err := portfolioRepo.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure portfolio schema: %w", err)
	}

	// 9. Create handlers
	analysisHandler := handlers.NewAnalysisHandler(provider, analyzer, log)
	discoveryHandler := handlers.NewDiscoveryHandler(discoverySvc, riskScanner, log)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo, provider, analyzer, discoverySvc, log)
	streamHandler := handlers.NewStreamHandler(discoverySvc, log)

	// 10. Create router and server
	router := api.NewRouter(analysisHandler, discoveryHandler, portfolioHandler, streamHandler, log)
	server := api.New(cfg, log, router)

	// 11. Start the cache warm scheduler
	var sched *scheduler.Scheduler
	if apiWarm {
		sched = scheduler.New(log)
		if err := sched.AddJob(scheduler.NewMoversWarmJob(discoverySvc, "")); err != nil {
			return fmt.Errorf("schedule warm job: %w", err)
		}
		sched.Start()
	}

	// 12. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
