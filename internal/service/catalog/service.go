package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
)

type CatalogServiceImpl struct {
	repo worksite.Repository
	memo *cache.Memo[worksite.Catalogs]
}

// NewCatalogService wraps the catalog repository with a short TTL memo.
// The clock is injectable so staleness is testable without real delays.
func NewCatalogService(repo worksite.Repository, ttl time.Duration, clock cache.Clock) worksite.CatalogService {
	return &CatalogServiceImpl{
		repo: repo,
		memo: cache.NewMemo[worksite.Catalogs](ttl, clock),
	}
}

// Catalogs implements worksite.CatalogService.
func (s *CatalogServiceImpl) Catalogs(ctx context.Context) (worksite.Catalogs, error) {
	if catalogs, ok := s.memo.Get(); ok {
		return catalogs, nil
	}
	return s.load(ctx)
}

// Refresh implements worksite.CatalogService.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) (worksite.Catalogs, error) {
	s.memo.Invalidate()
	return s.load(ctx)
}

// Replace implements worksite.CatalogService.
func (s *CatalogServiceImpl) Replace(ctx context.Context, req worksite.ReplaceCatalogRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	t := worksite.SiteType(req.Type)
	sites := make([]worksite.Site, 0, len(req.Sites))
	for _, in := range req.Sites {
		sites = append(sites, worksite.Site{
			Name:                       in.Name,
			Type:                       t,
			DefaultMinutes:             in.DefaultMinutes,
			ConsumablesCostPerActivity: in.ConsumablesCostPerActivity,
			ProductsCostPerActivity:    in.ProductsCostPerActivity,
			FlatMonthlyRevenue:         in.FlatMonthlyRevenue,
			PerInterventionRevenue:     in.PerInterventionRevenue,
		})
	}

	if err := s.repo.ReplaceCatalog(ctx, t, sites); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	s.memo.Invalidate()
	return nil
}

// load fetches the four catalog documents in parallel. A failed read
// degrades to an empty list for that type and a warning; the caller always
// gets a well-formed structure.
func (s *CatalogServiceImpl) load(ctx context.Context) (worksite.Catalogs, error) {
	catalogs := make(worksite.Catalogs, len(worksite.AllTypes))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for _, t := range worksite.AllTypes {
		g.Go(func() error {
			sites, err := s.repo.Catalog(gCtx, t)
			if err != nil {
				slog.Warn("Catalog read failed, serving empty list", "type", t, "error", err)
				sites = nil
			}
			mu.Lock()
			catalogs[t] = sites
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.memo.Set(catalogs)
	return catalogs, nil
}
