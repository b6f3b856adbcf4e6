package employee

import "context"

type Service interface {
	// List returns the roster, fixtures included (the admin UI shows them).
	List(ctx context.Context) ([]Employee, error)

	// Upsert creates or updates one roster entry by normalized id.
	Upsert(ctx context.Context, req UpsertEmployeeRequest) (Employee, error)

	// Remove drops one entry from the roster.
	Remove(ctx context.Context, id string) error

	// GetByID looks an employee up by normalized id.
	GetByID(ctx context.Context, id string) (Employee, error)

	// HourlyCosts maps normalized employee id to hourly cost, fixtures
	// excluded. This is the cost table the billing joiner consumes.
	HourlyCosts(ctx context.Context) (map[string]float64, error)

	// Badge builds the printable ID-card payload for one employee.
	Badge(ctx context.Context, id string) (Badge, error)
}
