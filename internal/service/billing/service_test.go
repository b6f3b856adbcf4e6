package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumaclean/wfm-backend-go/internal/domain/billing"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
)

type fakeCatalogs struct {
	catalogs worksite.Catalogs
}

func (f *fakeCatalogs) Catalogs(ctx context.Context) (worksite.Catalogs, error) {
	return f.catalogs, nil
}

func (f *fakeCatalogs) Refresh(ctx context.Context) (worksite.Catalogs, error) {
	return f.catalogs, nil
}

func (f *fakeCatalogs) Replace(ctx context.Context, req worksite.ReplaceCatalogRequest) error {
	return nil
}

type fakeCosts struct {
	employee.Service
	costs map[string]float64
	err   error
}

func (f *fakeCosts) HourlyCosts(ctx context.Context) (map[string]float64, error) {
	return f.costs, f.err
}

type fakeAggregator struct {
	byMonth map[int]map[string]billing.EmployeeMonth
	err     error
}

func (f *fakeAggregator) AggregateMonth(ctx context.Context, year, month int) (map[string]billing.EmployeeMonth, error) {
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.byMonth[month]; ok {
		return m, nil
	}
	return map[string]billing.EmployeeMonth{}, nil
}

func fixedClock(t time.Time) cache.Clock {
	return func() time.Time { return t }
}

func officeCatalog() worksite.Catalogs {
	return worksite.Catalogs{
		worksite.TypeUffici: {
			{
				Name:                       "Ufficio Centro",
				Type:                       worksite.TypeUffici,
				ConsumablesCostPerActivity: 2,
				FlatMonthlyRevenue:         100,
				PerInterventionRevenue:     20,
			},
			{
				Name:                   "Ufficio Nord",
				Type:                   worksite.TypeUffici,
				PerInterventionRevenue: 80,
			},
		},
	}
}

func mariaMarch() map[int]map[string]billing.EmployeeMonth {
	return map[int]map[string]billing.EmployeeMonth{
		3: {
			"Maria_Rossi": {
				Name:                  "Maria Rossi",
				TotalMinutesRaw:       120,
				TotalMinutesEffective: 60,
				Sites: map[string]billing.SiteTotals{
					"uffici__ufficio_centro": {
						Type:             "uffici",
						Name:             "Ufficio Centro",
						MinutesRaw:       120,
						MinutesEffective: 60,
						ActivityCount:    1,
					},
				},
			},
		},
	}
}

func TestBuildMonthlyReport(t *testing.T) {
	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		&fakeAggregator{byMonth: mariaMarch()},
		cache.NewMemoryStore(0),
		7*24*time.Hour,
		fixedClock(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)),
	)

	report, err := svc.BuildMonthlyReport(context.Background(), 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 3, report.Month)

	require.Len(t, report.Rows, 1, "sites with no activities are excluded")
	row := report.Rows[0]
	assert.Equal(t, "uffici__ufficio_centro", row.Key)
	assert.Equal(t, 1, row.TotalActivities)
	assert.Equal(t, 60.0, row.TotalEffectiveMinutes)
	assert.InDelta(t, 15.0, row.LaborCost, 1e-9)
	assert.InDelta(t, 2.0, row.ConsumablesCost, 1e-9)
	assert.Zero(t, row.ProductsCost)
	assert.InDelta(t, 120.0, row.TotalRevenue, 1e-9)
	assert.InDelta(t, 103.0, row.Margin, 1e-9)
}

func TestBuildMonthlyReportAdHocSite(t *testing.T) {
	agg := map[int]map[string]billing.EmployeeMonth{
		3: {
			"Maria_Rossi": {
				Name: "Maria Rossi",
				Sites: map[string]billing.SiteTotals{
					"pst__stazione": {
						Type:             "pst",
						Name:             "Stazione",
						MinutesEffective: 30,
						ActivityCount:    1,
					},
				},
			},
		},
	}
	svc := NewBillingService(
		&fakeCatalogs{catalogs: worksite.Catalogs{}},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 20}},
		&fakeAggregator{byMonth: agg},
		cache.NewMemoryStore(0),
		7*24*time.Hour,
		fixedClock(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)),
	)

	report, err := svc.BuildMonthlyReport(context.Background(), 2024, 3)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, "pst__stazione", row.Key)
	assert.InDelta(t, 10.0, row.LaborCost, 1e-9)
	assert.Zero(t, row.TotalRevenue, "a site in no catalog has zero revenue")
	assert.InDelta(t, -10.0, row.Margin, 1e-9, "margin of an uncatalogued site is minus its labor cost")
}

func TestBuildMonthlyReportMarginIdentity(t *testing.T) {
	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		&fakeAggregator{byMonth: mariaMarch()},
		cache.NewMemoryStore(0),
		7*24*time.Hour,
		nil,
	)

	report, err := svc.BuildMonthlyReport(context.Background(), 2024, 3)
	require.NoError(t, err)
	for _, row := range report.Rows {
		assert.InDelta(t, row.TotalRevenue-(row.LaborCost+row.ConsumablesCost+row.ProductsCost), row.Margin, 1e-9)
	}
}

func TestBuildMonthlyReportCostReadFailure(t *testing.T) {
	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{err: errors.New("remote unavailable")},
		&fakeAggregator{byMonth: mariaMarch()},
		cache.NewMemoryStore(0),
		7*24*time.Hour,
		nil,
	)

	report, err := svc.BuildMonthlyReport(context.Background(), 2024, 3)
	require.NoError(t, err, "a failed cost read degrades to zero labor, not an error")
	require.Len(t, report.Rows, 1)
	assert.Zero(t, report.Rows[0].LaborCost)
}

func TestBuildMonthlyReportRejectsInvalidMonth(t *testing.T) {
	svc := NewBillingService(&fakeCatalogs{}, &fakeCosts{}, &fakeAggregator{}, cache.NewMemoryStore(0), time.Hour, nil)
	_, err := svc.BuildMonthlyReport(context.Background(), 2024, 13)
	assert.Error(t, err)
	_, err = svc.BuildMonthlyReport(context.Background(), 1999, 1)
	assert.Error(t, err)
}

func TestGenerateAnnualReportSumsMonths(t *testing.T) {
	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		&fakeAggregator{byMonth: mariaMarch()},
		cache.NewMemoryStore(0),
		7*24*time.Hour,
		fixedClock(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)),
	)

	report, err := svc.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2024, report.Year)
	assert.Len(t, report.Months, 12)

	// Only March carries any work.
	assert.InDelta(t, 120.0, report.Summary.Revenue, 1e-9)
	assert.InDelta(t, 15.0, report.Summary.Labor, 1e-9)
	assert.InDelta(t, 2.0, report.Summary.Consumables, 1e-9)
	assert.Zero(t, report.Summary.Products)
	assert.InDelta(t, 17.0, report.Summary.TotalCosts, 1e-9)
	assert.InDelta(t, 103.0, report.Summary.Margin, 1e-9)

	require.Len(t, report.Sites, 1)
	site := report.Sites[0]
	assert.Equal(t, "uffici__ufficio_centro", site.Key)
	assert.Equal(t, 1, site.TotalActivities)
	require.Len(t, site.Months, 1)
	assert.Equal(t, 3, site.Months[0].Month)
}

func TestGenerateAnnualReportUsesFreshCache(t *testing.T) {
	store := cache.NewMemoryStore(0)
	clock := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	agg := &fakeAggregator{byMonth: mariaMarch()}
	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		agg,
		store,
		7*24*time.Hour,
		fixedClock(clock),
	)

	first, err := svc.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)

	// A second call with a now-failing aggregator must be served from cache.
	agg.err = errors.New("remote unavailable")
	second, err := svc.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateAnnualReportStaleCacheRebuilds(t *testing.T) {
	store := cache.NewMemoryStore(0)
	built := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		&fakeAggregator{byMonth: mariaMarch()},
		store,
		7*24*time.Hour,
		fixedClock(built),
	)
	_, err := svc.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)

	// Eight days later the cached copy is stale; the rebuild must not be
	// served from it, and the stale entry is evicted.
	later := built.Add(8 * 24 * time.Hour)
	agg := &fakeAggregator{err: errors.New("remote unavailable")}
	staleSvc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		agg,
		store,
		7*24*time.Hour,
		fixedClock(later),
	)
	_, err = staleSvc.GenerateAnnualReport(context.Background(), 2024)
	assert.ErrorIs(t, err, billing.ErrReportGeneration)

	years, err := store.Years()
	require.NoError(t, err)
	assert.Empty(t, years, "stale entries are evicted before rebuilding")
}

// The cache is a performance layer only: a report regenerated without it is
// identical to the cached copy.
func TestGenerateAnnualReportCacheIsNotSourceOfTruth(t *testing.T) {
	clock := fixedClock(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC))
	catalogs := &fakeCatalogs{catalogs: officeCatalog()}
	costs := &fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}}

	withCache := NewBillingService(catalogs, costs, &fakeAggregator{byMonth: mariaMarch()}, cache.NewMemoryStore(0), 7*24*time.Hour, clock)
	cached, err := withCache.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)
	again, err := withCache.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)

	fresh := NewBillingService(catalogs, costs, &fakeAggregator{byMonth: mariaMarch()}, cache.NewMemoryStore(0), 7*24*time.Hour, clock)
	rebuilt, err := fresh.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, cached, again)
	assert.Equal(t, cached, rebuilt)
}

func TestGenerateAnnualReportFullStoreRetries(t *testing.T) {
	// Capacity one, already holding a stale year: the write for the new
	// year hits ErrStoreFull, eviction frees the slot, the retry lands.
	store := cache.NewMemoryStore(1)
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(2023, cache.Entry{Timestamp: old, Payload: []byte("{}")}))

	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	svc := NewBillingService(
		&fakeCatalogs{catalogs: officeCatalog()},
		&fakeCosts{costs: map[string]float64{"Maria_Rossi": 15}},
		&fakeAggregator{byMonth: mariaMarch()},
		store,
		7*24*time.Hour,
		fixedClock(now),
	)

	_, err := svc.GenerateAnnualReport(context.Background(), 2024)
	require.NoError(t, err)

	entry, err := store.Get(2024)
	require.NoError(t, err)
	assert.NotNil(t, entry, "the new year is cached after evicting the stale one")
}

func TestClearAnnualCache(t *testing.T) {
	store := cache.NewMemoryStore(0)
	e := cache.Entry{Timestamp: time.Now(), Payload: []byte("{}")}
	require.NoError(t, store.Put(2023, e))
	require.NoError(t, store.Put(2024, e))

	svc := NewBillingService(&fakeCatalogs{}, &fakeCosts{}, &fakeAggregator{}, store, time.Hour, nil)

	require.NoError(t, svc.ClearAnnualCache(2023))
	entry, err := store.Get(2023)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, svc.ClearAllAnnualCaches())
	years, err := store.Years()
	require.NoError(t, err)
	assert.Empty(t, years)
}
