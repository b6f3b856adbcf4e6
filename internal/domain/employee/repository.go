package employee

import "context"

type Repository interface {
	// Roster reads the full employee list, normalized.
	Roster(ctx context.Context) ([]Employee, error)

	// SaveRoster rewrites the roster array (merge-set on the document).
	SaveRoster(ctx context.Context, roster []Employee) error
}
