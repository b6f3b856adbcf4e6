package timesheet

import (
	"context"
	"fmt"

	"github.com/lumaclean/wfm-backend-go/internal/domain/timesheet"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	repo timesheet.Repository
}

func NewTimesheetService(repo timesheet.Repository) timesheet.Service {
	return &TimesheetServiceImpl{repo: repo}
}

// SubmitDay implements timesheet.Service. Incoming activities merge into
// the existing day keyed by name|type, so a resubmission updates its
// previous version instead of duplicating it.
func (s *TimesheetServiceImpl) SubmitDay(ctx context.Context, employeeID, date string, req timesheet.SubmitDayRequest) (timesheet.DailyEntry, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return timesheet.DailyEntry{}, timesheet.ErrInvalidDate
	}
	if err := req.Validate(); err != nil {
		return timesheet.DailyEntry{}, err
	}

	existing, found, err := s.repo.Day(ctx, employeeID, date)
	if err != nil {
		return timesheet.DailyEntry{}, fmt.Errorf("failed to read existing entry: %w", err)
	}

	entry := timesheet.DailyEntry{
		Date:   date,
		Status: timesheet.Status(req.Status),
	}
	incoming := req.ToActivities()
	if found {
		entry.Activities = timesheet.MergeActivities(existing.Activities, incoming)
	} else {
		entry.Activities = timesheet.MergeActivities(nil, incoming)
	}

	if err := s.repo.SaveDay(ctx, employeeID, entry); err != nil {
		return timesheet.DailyEntry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	return entry, nil
}

// Day implements timesheet.Service.
func (s *TimesheetServiceImpl) Day(ctx context.Context, employeeID, date string) (timesheet.DailyEntry, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return timesheet.DailyEntry{}, timesheet.ErrInvalidDate
	}

	entry, found, err := s.repo.Day(ctx, employeeID, date)
	if err != nil {
		return timesheet.DailyEntry{}, fmt.Errorf("failed to read entry: %w", err)
	}
	if !found {
		return timesheet.DailyEntry{Date: date}, nil
	}
	return entry, nil
}

// Range implements timesheet.Service.
func (s *TimesheetServiceImpl) Range(ctx context.Context, employeeID, from, to string) ([]timesheet.DailyEntry, error) {
	fromDate, okFrom := validator.IsValidDate(from)
	toDate, okTo := validator.IsValidDate(to)
	if !okFrom || !okTo || fromDate.After(toDate) {
		return nil, timesheet.ErrInvalidDate
	}

	entries, err := s.repo.Range(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}
