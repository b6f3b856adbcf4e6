package timesheet

import "context"

type Repository interface {
	// Day reads one daily entry; ok is false when no document exists.
	Day(ctx context.Context, employeeID, date string) (entry DailyEntry, ok bool, err error)

	// Range reads all daily entries whose date key falls in [from, to],
	// both inclusive ISO dates.
	Range(ctx context.Context, employeeID, from, to string) ([]DailyEntry, error)

	// SaveDay upserts one daily entry with merge semantics: concurrent
	// writers resolve last-write-wins at the field level.
	SaveDay(ctx context.Context, employeeID string, entry DailyEntry) error
}
