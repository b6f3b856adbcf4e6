package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lumaclean/wfm-backend-go/internal/domain/billing"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
)

type BillingServiceImpl struct {
	catalogs   worksite.CatalogService
	employees  employee.Service
	aggregator billing.Aggregator
	store      cache.ReportStore
	clock      cache.Clock
	staleAfter time.Duration
}

// NewBillingService wires the cost joiner. store holds cached annual
// reports; staleAfter is the window after which a cached copy is rebuilt.
func NewBillingService(catalogs worksite.CatalogService, employees employee.Service, aggregator billing.Aggregator, store cache.ReportStore, staleAfter time.Duration, clock cache.Clock) billing.Service {
	if clock == nil {
		clock = time.Now
	}
	return &BillingServiceImpl{
		catalogs:   catalogs,
		employees:  employees,
		aggregator: aggregator,
		store:      store,
		clock:      clock,
		staleAfter: staleAfter,
	}
}

// BuildMonthlyReport implements billing.Service. Pure function of the
// catalogs, the cost table and the month's aggregation; recomputed on every
// call.
func (s *BillingServiceImpl) BuildMonthlyReport(ctx context.Context, year, month int) (billing.MonthlyReport, error) {
	req := billing.MonthlyReportRequest{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		return billing.MonthlyReport{}, err
	}

	var (
		catalogs worksite.Catalogs
		costs    map[string]float64
		agg      map[string]billing.EmployeeMonth
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalogs, err = s.catalogs.Catalogs(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = s.employees.HourlyCosts(gCtx)
		if err != nil {
			slog.Warn("Hourly cost read failed, labor costs default to zero", "error", err)
			costs = map[string]float64{}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		agg, err = s.aggregator.AggregateMonth(gCtx, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return billing.MonthlyReport{}, fmt.Errorf("failed to gather report inputs: %w", err)
	}

	// Union of declared and worked sites, first-seen name/type wins. Sites
	// worked but absent from every catalog appear with zero-valued catalog
	// fields.
	type siteCosts struct {
		row     billing.Row
		catalog worksite.Site
	}
	sites := make(map[string]*siteCosts)
	for _, t := range worksite.AllTypes {
		for _, site := range catalogs[t] {
			key := site.Key()
			if _, exists := sites[key]; exists {
				continue
			}
			sites[key] = &siteCosts{
				row:     billing.Row{Key: key, Type: string(site.Type), Name: site.Name},
				catalog: site,
			}
		}
	}
	for _, em := range agg {
		for key, totals := range em.Sites {
			if _, exists := sites[key]; !exists {
				sites[key] = &siteCosts{
					row: billing.Row{Key: key, Type: totals.Type, Name: totals.Name},
				}
			}
		}
	}

	for empID, em := range agg {
		hourly := costs[empID]
		for key, totals := range em.Sites {
			sc := sites[key]
			sc.row.TotalActivities += totals.ActivityCount
			sc.row.TotalEffectiveMinutes += totals.MinutesEffective
			sc.row.LaborCost += totals.MinutesEffective * hourly / 60
		}
	}

	rows := make([]billing.Row, 0, len(sites))
	for _, sc := range sites {
		if sc.row.TotalActivities == 0 {
			continue
		}
		activities := float64(sc.row.TotalActivities)
		sc.row.ConsumablesCost = sc.catalog.ConsumablesCostPerActivity * activities
		sc.row.ProductsCost = sc.catalog.ProductsCostPerActivity * activities
		sc.row.TotalRevenue = sc.catalog.FlatMonthlyRevenue + sc.catalog.PerInterventionRevenue*activities
		sc.row.Margin = sc.row.TotalRevenue - (sc.row.LaborCost + sc.row.ConsumablesCost + sc.row.ProductsCost)
		rows = append(rows, sc.row)
	}

	sortRows(rows)

	return billing.MonthlyReport{
		Year:        year,
		Month:       month,
		GeneratedAt: s.clock().Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

// GenerateAnnualReport implements billing.Service.
func (s *BillingServiceImpl) GenerateAnnualReport(ctx context.Context, year int) (*billing.AnnualReport, error) {
	req := billing.AnnualReportRequest{Year: year}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if cached := s.cachedReport(year); cached != nil {
		return cached, nil
	}

	if err := s.EvictStaleCaches(); err != nil {
		slog.Warn("Stale cache eviction failed", "error", err)
	}

	months := make([]billing.MonthlyReport, 12)
	g, gCtx := errgroup.WithContext(ctx)
	for month := 1; month <= 12; month++ {
		g.Go(func() error {
			report, err := s.BuildMonthlyReport(gCtx, year, month)
			if err != nil {
				return fmt.Errorf("month %d: %w", month, err)
			}
			months[month-1] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrReportGeneration, err)
	}

	report := s.fold(year, months)
	s.persist(year, report)
	return report, nil
}

// cachedReport returns the stored report for a year when it is fresher than
// the staleness window; corrupt entries are evicted on sight.
func (s *BillingServiceImpl) cachedReport(year int) *billing.AnnualReport {
	entry, err := s.store.Get(year)
	if err != nil {
		slog.Warn("Annual cache read failed", "year", year, "error", err)
		return nil
	}
	if entry == nil || s.clock().Sub(entry.Timestamp) >= s.staleAfter {
		return nil
	}

	var report billing.AnnualReport
	if err := json.Unmarshal(entry.Payload, &report); err != nil {
		slog.Warn("Annual cache entry corrupt, evicting", "year", year, "error", err)
		if delErr := s.store.Delete(year); delErr != nil {
			slog.Warn("Annual cache eviction failed", "year", year, "error", delErr)
		}
		return nil
	}
	return &report
}

func (s *BillingServiceImpl) fold(year int, months []billing.MonthlyReport) *billing.AnnualReport {
	report := &billing.AnnualReport{
		Year:        year,
		GeneratedAt: s.clock().Format(time.RFC3339),
		Months:      months,
	}

	siteIndex := make(map[string]*billing.AnnualSite)
	for _, month := range months {
		for _, row := range month.Rows {
			report.Summary.Revenue += row.TotalRevenue
			report.Summary.Labor += row.LaborCost
			report.Summary.Consumables += row.ConsumablesCost
			report.Summary.Products += row.ProductsCost
			report.Summary.Margin += row.Margin

			site, ok := siteIndex[row.Key]
			if !ok {
				site = &billing.AnnualSite{Key: row.Key, Type: row.Type, Name: row.Name}
				siteIndex[row.Key] = site
			}
			site.TotalActivities += row.TotalActivities
			site.TotalEffectiveMinutes += row.TotalEffectiveMinutes
			site.LaborCost += row.LaborCost
			site.ConsumablesCost += row.ConsumablesCost
			site.ProductsCost += row.ProductsCost
			site.TotalRevenue += row.TotalRevenue
			site.Margin += row.Margin
			site.Months = append(site.Months, billing.MonthContribution{
				Month:                 month.Month,
				TotalActivities:       row.TotalActivities,
				TotalEffectiveMinutes: row.TotalEffectiveMinutes,
				LaborCost:             row.LaborCost,
				ConsumablesCost:       row.ConsumablesCost,
				ProductsCost:          row.ProductsCost,
				TotalRevenue:          row.TotalRevenue,
				Margin:                row.Margin,
			})
		}
	}
	report.Summary.TotalCosts = report.Summary.Labor + report.Summary.Consumables + report.Summary.Products

	report.Sites = make([]billing.AnnualSite, 0, len(siteIndex))
	for _, site := range siteIndex {
		report.Sites = append(report.Sites, *site)
	}
	collator := collate.New(language.Italian)
	sort.Slice(report.Sites, func(i, j int) bool {
		a, b := report.Sites[i], report.Sites[j]
		if a.Type != b.Type {
			return collator.CompareString(a.Type, b.Type) < 0
		}
		return collator.CompareString(a.Name, b.Name) < 0
	})

	return report
}

// persist writes the report to the cache store; on a full store it evicts
// expired entries and retries once. Cache failures never fail generation.
func (s *BillingServiceImpl) persist(year int, report *billing.AnnualReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		slog.Warn("Annual report marshal failed, skipping cache", "year", year, "error", err)
		return
	}

	entry := cache.Entry{Timestamp: s.clock(), Payload: payload}
	err = s.store.Put(year, entry)
	if errors.Is(err, cache.ErrStoreFull) {
		if evictErr := s.EvictStaleCaches(); evictErr != nil {
			slog.Warn("Stale cache eviction failed", "error", evictErr)
		}
		err = s.store.Put(year, entry)
	}
	if err != nil {
		slog.Warn("Annual cache write failed", "year", year, "error", err)
	}
}

// ClearAnnualCache implements billing.Service.
func (s *BillingServiceImpl) ClearAnnualCache(year int) error {
	return s.store.Delete(year)
}

// ClearAllAnnualCaches implements billing.Service.
func (s *BillingServiceImpl) ClearAllAnnualCaches() error {
	return s.store.DeleteAll()
}

// EvictStaleCaches implements billing.Service.
func (s *BillingServiceImpl) EvictStaleCaches() error {
	years, err := s.store.Years()
	if err != nil {
		return err
	}
	for _, year := range years {
		entry, err := s.store.Get(year)
		if err != nil || entry == nil {
			continue
		}
		if s.clock().Sub(entry.Timestamp) >= s.staleAfter {
			if err := s.store.Delete(year); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortRows(rows []billing.Row) {
	collator := collate.New(language.Italian)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return collator.CompareString(rows[i].Type, rows[j].Type) < 0
		}
		return collator.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}
