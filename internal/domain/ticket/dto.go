package ticket

import (
	"fmt"
	"time"

	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

type UpsertTicketRequest struct {
	Notes string   `json:"notes"`
	Tasks []string `json:"tasks"`
	Done  bool     `json:"done"`
}

func (r *UpsertTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	for i, task := range r.Tasks {
		if validator.IsEmpty(task) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("tasks[%d]", i),
				Message: "task is empty",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TicketResponse struct {
	ID        string   `json:"id"`
	SiteKey   string   `json:"site_key"`
	Notes     string   `json:"notes"`
	Tasks     []string `json:"tasks"`
	Done      bool     `json:"done"`
	UpdatedBy string   `json:"updated_by"`
	UpdatedAt string   `json:"updated_at"`
}

func ToResponse(t Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID,
		SiteKey:   t.SiteKey,
		Notes:     t.Notes,
		Tasks:     t.Tasks,
		Done:      t.Done,
		UpdatedBy: t.UpdatedBy,
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}
