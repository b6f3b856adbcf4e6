package ticket

import "time"

// Ticket is one per-site "bigliettino": the daily cleaning checklist left
// at a B&B or apartment. Stored under Bigliettini/{date}, keyed by site.
type Ticket struct {
	ID        string
	SiteKey   string
	Notes     string
	Tasks     []string
	Done      bool
	UpdatedBy string
	UpdatedAt time.Time
}
