package ticket

import "context"

type Repository interface {
	// ForDate reads every site's ticket for one ISO date.
	ForDate(ctx context.Context, date string) (map[string]Ticket, error)

	// Upsert merges one site's ticket into the date document.
	Upsert(ctx context.Context, date string, t Ticket) error
}
