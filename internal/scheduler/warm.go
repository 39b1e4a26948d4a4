package scheduler

import (
	"context"

	"github.com/Playwithbroken/stock-analysis-tool/internal/discovery"
)

// MoversWarmJob refreshes the movers scan caches ahead of user traffic so
// dashboard requests never pay the full fan-out cost.
type MoversWarmJob struct {
	discovery *discovery.Service
	schedule  string
}

// NewMoversWarmJob creates a movers cache warm job
func NewMoversWarmJob(svc *discovery.Service, schedule string) *MoversWarmJob {
	if schedule == "" {
		// Slightly inside the movers cache TTL
		schedule = "0 */9 * * * *"
	}
	return &MoversWarmJob{discovery: svc, schedule: schedule}
}

// Name returns the job name
func (j *MoversWarmJob) Name() string { return "movers-warm" }

// Schedule returns the cron schedule expression
func (j *MoversWarmJob) Schedule() string { return j.schedule }

// Run refreshes both mover directions and the trending scan
func (j *MoversWarmJob) Run(ctx context.Context) error {
	j.discovery.RefreshMovers(ctx, "gainers")
	j.discovery.RefreshMovers(ctx, "losers")
	j.discovery.Trending(ctx)
	return nil
}
