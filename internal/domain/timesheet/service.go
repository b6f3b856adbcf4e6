package timesheet

import "context"

type Service interface {
	// SubmitDay merges the submitted activities into any existing entry for
	// that day (keyed by name|type), so resubmission updates rather than
	// duplicates, then writes the whole entry.
	SubmitDay(ctx context.Context, employeeID, date string, req SubmitDayRequest) (DailyEntry, error)

	// Day returns one day's entry; an absent document yields an empty entry.
	Day(ctx context.Context, employeeID, date string) (DailyEntry, error)

	// Range returns all entries between two inclusive ISO dates.
	Range(ctx context.Context, employeeID, from, to string) ([]DailyEntry, error)
}
