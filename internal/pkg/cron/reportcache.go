package cron

import (
	"context"
	"time"

	"github.com/lumaclean/wfm-backend-go/internal/domain/billing"
)

type ReportCacheJobs struct {
	billingSvc billing.Service
}

func NewReportCacheJobs(billingSvc billing.Service) *ReportCacheJobs {
	return &ReportCacheJobs{billingSvc: billingSvc}
}

func (j *ReportCacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("evict_stale_annual_reports", 6*time.Hour, j.EvictStaleReports)
}

// EvictStaleReports sweeps annual report cache entries past the staleness
// window. The billing service also evicts opportunistically on generation;
// this keeps the cache bounded on idle instances.
func (j *ReportCacheJobs) EvictStaleReports(ctx context.Context) error {
	return j.billingSvc.EvictStaleCaches()
}
