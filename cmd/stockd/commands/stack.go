package commands

import (
	"fmt"

	"github.com/Playwithbroken/stock-analysis-tool/internal/analysis"
	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
	"github.com/Playwithbroken/stock-analysis-tool/internal/fetchcache"
	"github.com/Playwithbroken/stock-analysis-tool/internal/marketdata"
	"github.com/Playwithbroken/stock-analysis-tool/internal/riskscan"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/config"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/httputil"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
	"github.com/Playwithbroken/stock-analysis-tool/pkg/redis"
)

// stack holds the wired services shared by the one-shot CLI commands.
// The database stays out; only the api command needs it.
type stack struct {
	cfg       *config.Config
	log       *logger.Logger
	redis     *redis.Client
	provider  marketdata.Provider
	analyzer  *analysis.Analyzer
	discovery *discovery.Service
	riskscan  *riskscan.Scanner
}

func buildStack() (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(log, cfg.Provider.Timeout)
	cache := fetchcache.New(cfg.Cache.TTL)
	provider := marketdata.NewClient(cfg.Provider, httpClient, cache, log)

	scanner := discovery.NewScanner(cfg.Scan.Workers, log)
	discoverySvc := discovery.NewService(provider, scanner, redis.NewCache(redisClient, "stockd"), cfg.Cache, log)

	return &stack{
		cfg:       cfg,
		log:       log,
		redis:     redisClient,
		provider:  provider,
		analyzer:  analysis.New(log),
		discovery: discoverySvc,
		riskscan:  riskscan.New(provider, scanner, log),
	}, nil
}

func (s *stack) close() {
	_ = s.redis.Close()
}
