package discovery

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

const defaultWorkers = 8

// Scanner fans a per-symbol fetch out across a universe with bounded
// parallelism. Per-item failures are dropped; partial results are the
// success contract.
type Scanner struct {
	workers int
	logger  *logger.Logger
}

// NewScanner creates a new scanner
func NewScanner(workers int, log *logger.Logger) *Scanner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Scanner{
		workers: workers,
		logger:  log.WithField("module", "discovery"),
	}
}

// Run executes a scan policy: sample, fetch concurrently, filter, fall
// back once if everything was dropped, then rank and truncate. It never
// returns an error; the worst case is an empty slice.
func Run[T any](ctx context.Context, s *Scanner, p Policy[T]) []T {
	pool := p.Universe
	if p.SampleSize > 0 && p.SampleSize < len(pool) {
		pool = sample(pool, p.SampleSize)
	}

	results := collect(ctx, s, p, pool)

	// One sequential fallback pass, never recursive and never sampled
	if len(results) == 0 && len(p.Fallback) > 0 {
		s.logger.WithField("scan", p.Name).Debug("Primary universe empty, trying fallback")
		results = collect(ctx, s, p, p.Fallback)
	}

	if p.RankKey != nil {
		sort.SliceStable(results, func(i, j int) bool {
			if p.Ascending {
				return p.RankKey(results[i]) < p.RankKey(results[j])
			}
			return p.RankKey(results[i]) > p.RankKey(results[j])
		})
	}

	if p.Limit > 0 && len(results) > p.Limit {
		results = results[:p.Limit]
	}
	return results
}

// collect dispatches the fetch for every symbol and waits for all workers
// before returning. Ranking happens strictly after this barrier.
func collect[T any](ctx context.Context, s *Scanner, p Policy[T], pool []string) []T {
	if len(pool) == 0 {
		return nil
	}

	workers := s.workers
	if workers > len(pool) {
		workers = len(pool)
	}

	work := make(chan string)
	out := make(chan T, len(pool))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range work {
				item, err := p.Fetch(ctx, symbol)
				if err != nil {
					s.logger.WithError(err).WithFields(map[string]interface{}{
						"scan":   p.Name,
						"symbol": symbol,
					}).Debug("Scan item dropped")
					continue
				}
				if item == nil {
					continue
				}
				if p.Filter != nil && !p.Filter(*item) {
					continue
				}
				out <- *item
			}
		}()
	}

	for _, symbol := range pool {
		work <- symbol
	}
	close(work)
	wg.Wait()
	close(out)

	results := make([]T, 0, len(pool))
	for item := range out {
		results = append(results, item)
	}
	return results
}

// sample picks n distinct symbols uniformly at random
func sample(universe []string, n int) []string {
	idx := rand.Perm(len(universe))[:n]
	picked := make([]string, n)
	for i, j := range idx {
		picked[i] = universe[j]
	}
	return picked
}
