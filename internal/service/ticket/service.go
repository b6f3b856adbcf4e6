package ticket

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lumaclean/wfm-backend-go/internal/domain/ticket"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

type TicketServiceImpl struct {
	repo  ticket.Repository
	clock cache.Clock
}

func NewTicketService(repo ticket.Repository, clock cache.Clock) ticket.Service {
	if clock == nil {
		clock = time.Now
	}
	return &TicketServiceImpl{repo: repo, clock: clock}
}

// ForDate implements ticket.Service, sorted by site key for stable output.
func (s *TicketServiceImpl) ForDate(ctx context.Context, date string) ([]ticket.Ticket, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, fmt.Errorf("invalid ticket date %q", date)
	}

	byKey, err := s.repo.ForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	tickets := make([]ticket.Ticket, 0, len(byKey))
	for _, t := range byKey {
		tickets = append(tickets, t)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].SiteKey < tickets[j].SiteKey })
	return tickets, nil
}

// Upsert implements ticket.Service. A site's existing ticket for the day
// keeps its id; a new one is assigned a fresh id.
func (s *TicketServiceImpl) Upsert(ctx context.Context, date, siteKey, updatedBy string, req ticket.UpsertTicketRequest) (ticket.Ticket, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return ticket.Ticket{}, fmt.Errorf("invalid ticket date %q", date)
	}
	if err := req.Validate(); err != nil {
		return ticket.Ticket{}, err
	}

	existing, err := s.repo.ForDate(ctx, date)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to load tickets: %w", err)
	}

	t := ticket.Ticket{
		SiteKey:   siteKey,
		Notes:     req.Notes,
		Tasks:     req.Tasks,
		Done:      req.Done,
		UpdatedBy: updatedBy,
		UpdatedAt: s.clock(),
	}
	if prev, ok := existing[siteKey]; ok && prev.ID != "" {
		t.ID = prev.ID
	} else {
		t.ID = uuid.NewString()
	}

	if err := s.repo.Upsert(ctx, date, t); err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to save ticket: %w", err)
	}
	return t, nil
}
