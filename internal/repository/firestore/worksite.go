package firestore

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/database"
)

type worksiteRepository struct {
	db *database.DB
}

func NewWorksiteRepository(db *database.DB) worksite.Repository {
	return &worksiteRepository{db: db}
}

// Catalog implements worksite.Repository. The raw document holds an array
// under a field named after the catalog type; entries may be bare strings
// or structured maps, normalized here. Entries whose composite key repeats
// an earlier one are dropped with a warning, first entry wins.
func (r *worksiteRepository) Catalog(ctx context.Context, t worksite.SiteType) ([]worksite.Site, error) {
	snap, err := r.db.Collection("Data").Doc(string(t)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", t, err)
	}

	raw, ok := snap.Data()[string(t)].([]interface{})
	if !ok {
		return nil, nil
	}

	seen := make(map[string]bool, len(raw))
	sites := make([]worksite.Site, 0, len(raw))
	for _, entry := range raw {
		site, ok := worksite.ParseEntry(entry, t)
		if !ok {
			continue
		}
		key := site.Key()
		if seen[key] {
			slog.Warn("Duplicate catalog key, keeping first entry", "type", t, "key", key)
			continue
		}
		seen[key] = true
		sites = append(sites, site)
	}
	return sites, nil
}

// ReplaceCatalog implements worksite.Repository. Writes always use the
// structured record shape; legacy string entries only survive reads.
func (r *worksiteRepository) ReplaceCatalog(ctx context.Context, t worksite.SiteType, sites []worksite.Site) error {
	entries := make([]interface{}, 0, len(sites))
	for _, s := range sites {
		entries = append(entries, map[string]interface{}{
			"nome":                 s.Name,
			"minuti":               s.DefaultMinutes,
			"biancheria":           s.ConsumablesCostPerActivity,
			"prodotti":             s.ProductsCostPerActivity,
			"fatturato_mensile":    s.FlatMonthlyRevenue,
			"fatturato_intervento": s.PerInterventionRevenue,
		})
	}

	_, err := r.db.Collection("Data").Doc(string(t)).Set(ctx, map[string]interface{}{
		string(t): entries,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to replace catalog %s: %w", t, err)
	}
	return nil
}
