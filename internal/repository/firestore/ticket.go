package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lumaclean/wfm-backend-go/internal/domain/ticket"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/database"
)

type ticketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.Repository {
	return &ticketRepository{db: db}
}

// ForDate implements ticket.Repository. One document per date, one field
// per site key.
func (r *ticketRepository) ForDate(ctx context.Context, date string) (map[string]ticket.Ticket, error) {
	snap, err := r.db.Collection("Bigliettini").Doc(date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return map[string]ticket.Ticket{}, nil
		}
		return nil, fmt.Errorf("failed to read tickets for %s: %w", date, err)
	}

	tickets := make(map[string]ticket.Ticket)
	for siteKey, raw := range snap.Data() {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		tickets[siteKey] = decodeTicket(siteKey, m)
	}
	return tickets, nil
}

// Upsert implements ticket.Repository.
func (r *ticketRepository) Upsert(ctx context.Context, date string, t ticket.Ticket) error {
	tasks := make([]interface{}, 0, len(t.Tasks))
	for _, task := range t.Tasks {
		tasks = append(tasks, task)
	}

	_, err := r.db.Collection("Bigliettini").Doc(date).Set(ctx, map[string]interface{}{
		t.SiteKey: map[string]interface{}{
			"id":        t.ID,
			"notes":     t.Notes,
			"tasks":     tasks,
			"done":      t.Done,
			"updatedBy": t.UpdatedBy,
			"updatedAt": t.UpdatedAt,
		},
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to upsert ticket %s/%s: %w", date, t.SiteKey, err)
	}
	return nil
}

func decodeTicket(siteKey string, m map[string]interface{}) ticket.Ticket {
	t := ticket.Ticket{SiteKey: siteKey}
	t.ID, _ = m["id"].(string)
	t.Notes, _ = m["notes"].(string)
	t.Done, _ = m["done"].(bool)
	t.UpdatedBy, _ = m["updatedBy"].(string)
	if at, ok := m["updatedAt"].(time.Time); ok {
		t.UpdatedAt = at
	}
	if rawTasks, ok := m["tasks"].([]interface{}); ok {
		for _, rt := range rawTasks {
			if task, ok := rt.(string); ok {
				t.Tasks = append(t.Tasks, task)
			}
		}
	}
	return t
}
