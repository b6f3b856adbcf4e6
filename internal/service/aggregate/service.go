package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumaclean/wfm-backend-go/internal/domain/billing"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/domain/timesheet"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/slug"
)

// Sleeper pauses between employee batches. Injectable so tests record the
// pacing instead of waiting it out.
type Sleeper func(ctx context.Context, d time.Duration)

// DefaultSleeper honors context cancellation while pausing.
func DefaultSleeper(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

type AggregateServiceImpl struct {
	employees  employee.Service
	timesheets timesheet.Repository
	batchSize  int
	batchDelay time.Duration
	sleep      Sleeper
}

// NewAggregateService builds the monthly activity aggregator. batchSize
// bounds concurrent reads against the remote store; batchDelay is the pause
// between batches (rate limiting, not correctness).
func NewAggregateService(employees employee.Service, timesheets timesheet.Repository, batchSize int, batchDelay time.Duration, sleep Sleeper) billing.Aggregator {
	if batchSize < 1 {
		batchSize = 1
	}
	if sleep == nil {
		sleep = DefaultSleeper
	}
	return &AggregateServiceImpl{
		employees:  employees,
		timesheets: timesheets,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		sleep:      sleep,
	}
}

// AggregateMonth implements billing.Aggregator. Read failures are logged
// and substituted with nothing; the result is always well formed. Employees
// with no aggregated sites are omitted entirely.
func (s *AggregateServiceImpl) AggregateMonth(ctx context.Context, year, month int) (map[string]billing.EmployeeMonth, error) {
	result := make(map[string]billing.EmployeeMonth)

	roster, err := s.employees.List(ctx)
	if err != nil {
		slog.Warn("Roster read failed, aggregating nothing", "error", err)
		return result, nil
	}

	workers := make([]employee.Employee, 0, len(roster))
	for _, e := range roster {
		if e.IsFixture() {
			continue
		}
		workers = append(workers, e)
	}

	from, to := monthRange(year, month)

	for start := 0; start < len(workers); start += s.batchSize {
		end := start + s.batchSize
		if end > len(workers) {
			end = len(workers)
		}
		batch := workers[start:end]

		entries := make([][]timesheet.DailyEntry, len(batch))
		g, gCtx := errgroup.WithContext(ctx)
		for i, emp := range batch {
			g.Go(func() error {
				days, err := s.timesheets.Range(gCtx, emp.ID, from, to)
				if err != nil {
					slog.Warn("Daily entries read failed, skipping employee", "employee", emp.ID, "error", err)
					return nil
				}
				entries[i] = days
				return nil
			})
		}
		_ = g.Wait()

		for i, emp := range batch {
			s.accumulate(result, emp, entries[i])
		}

		if end < len(workers) && s.batchDelay > 0 {
			s.sleep(ctx, s.batchDelay)
		}
	}

	return result, nil
}

func (s *AggregateServiceImpl) accumulate(result map[string]billing.EmployeeMonth, emp employee.Employee, days []timesheet.DailyEntry) {
	for _, day := range days {
		for _, a := range day.Activities {
			// Activities without a catalog type or a name never reach a
			// bucket.
			if a.Type == "" || a.Name == "" {
				continue
			}

			em, ok := result[emp.ID]
			if !ok {
				em = billing.EmployeeMonth{
					Name:  emp.Name,
					Sites: make(map[string]billing.SiteTotals),
				}
			}

			effective := a.EffectiveMinutes()
			key := slug.SiteKey(a.Type, a.Name)

			totals := em.Sites[key]
			if totals.Name == "" {
				totals.Type = a.Type
				totals.Name = a.Name
			}
			totals.MinutesRaw += a.Minutes
			totals.MinutesEffective += effective
			totals.ActivityCount++
			em.Sites[key] = totals

			em.TotalMinutesRaw += a.Minutes
			em.TotalMinutesEffective += effective
			result[emp.ID] = em
		}
	}
}

// monthRange returns the inclusive ISO date bounds of a month.
func monthRange(year, month int) (string, string) {
	first := fmt.Sprintf("%04d-%02d-01", year, month)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return first, lastDay.Format("2006-01-02")
}
