package worksite

import "context"

// CatalogService serves the normalized catalogs behind a short in-process
// memo so report building does not hammer the remote store.
type CatalogService interface {
	// Catalogs returns all four catalog lists. Per-type read failures
	// degrade to an empty list for that type, never to an error.
	Catalogs(ctx context.Context) (Catalogs, error)

	// Refresh drops the memo and reloads from the store.
	Refresh(ctx context.Context) (Catalogs, error)

	// Replace rewrites one catalog type and invalidates the memo.
	Replace(ctx context.Context, req ReplaceCatalogRequest) error
}
