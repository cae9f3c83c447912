package scheduler

import (
	"context"
	"time"

	"github.com/pmarket/parfume-desk/internal/core/service"
)

// StatsRefreshJob rebuilds broker stats on a schedule. The ledger already
// rebuilds after every deal; this job covers stats invalidated outside the
// ledger, such as price updates and archival runs.
type StatsRefreshJob struct {
	stats   *service.StatsService
	timeout time.Duration
}

func NewStatsRefreshJob(stats *service.StatsService) *StatsRefreshJob {
	return &StatsRefreshJob{
		stats:   stats,
		timeout: time.Minute,
	}
}

func (j *StatsRefreshJob) Name() string {
	return "stats_refresh"
}

func (j *StatsRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	return j.stats.Recalculate(ctx)
}
