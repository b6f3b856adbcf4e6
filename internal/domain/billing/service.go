package billing

import "context"

// Aggregator produces per-employee-per-site activity totals for one month.
type Aggregator interface {
	AggregateMonth(ctx context.Context, year, month int) (map[string]EmployeeMonth, error)
}

// Service builds the billing reports. BuildMonthlyReport is a pure function
// of catalogs, employee costs and the month's aggregation; the annual cache
// is a performance layer only and never a source of truth.
type Service interface {
	BuildMonthlyReport(ctx context.Context, year, month int) (MonthlyReport, error)

	// GenerateAnnualReport serves a cached report when it is fresher than
	// the staleness window, otherwise rebuilds all twelve months. A nil
	// report is never paired with a nil error: failures surface whole.
	GenerateAnnualReport(ctx context.Context, year int) (*AnnualReport, error)

	// ClearAnnualCache drops one year's cached report.
	ClearAnnualCache(year int) error

	// ClearAllAnnualCaches drops every cached annual report.
	ClearAllAnnualCaches() error

	// EvictStaleCaches removes cache entries older than the staleness
	// window. Run opportunistically and from the cron sweep.
	EvictStaleCaches() error
}
