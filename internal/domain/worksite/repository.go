package worksite

import "context"

type Repository interface {
	// Catalog reads and normalizes one catalog document.
	Catalog(ctx context.Context, t SiteType) ([]Site, error)

	// ReplaceCatalog rewrites a catalog document's entry list.
	ReplaceCatalog(ctx context.Context, t SiteType, sites []Site) error
}
