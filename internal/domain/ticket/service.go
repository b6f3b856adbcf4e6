package ticket

import "context"

type Service interface {
	ForDate(ctx context.Context, date string) ([]Ticket, error)
	Upsert(ctx context.Context, date, siteKey, updatedBy string, req UpsertTicketRequest) (Ticket, error)
}
