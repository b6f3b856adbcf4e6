package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lumaclean/wfm-backend-go/internal/domain/timesheet"
	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) days(employeeID string) *firestore.CollectionRef {
	return r.db.Collection("dipendenti").Doc(employeeID).Collection("ore")
}

// Day implements timesheet.Repository.
func (r *timesheetRepository) Day(ctx context.Context, employeeID, date string) (timesheet.DailyEntry, bool, error) {
	snap, err := r.days(employeeID).Doc(date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return timesheet.DailyEntry{}, false, nil
		}
		return timesheet.DailyEntry{}, false, fmt.Errorf("failed to read daily entry %s/%s: %w", employeeID, date, err)
	}
	return decodeDailyEntry(date, snap.Data()), true, nil
}

// Range implements timesheet.Repository. Daily documents are keyed by ISO
// date, so an inclusive document-id range scan covers the period.
func (r *timesheetRepository) Range(ctx context.Context, employeeID, from, to string) ([]timesheet.DailyEntry, error) {
	iter := r.days(employeeID).
		OrderBy(firestore.DocumentID, firestore.Asc).
		StartAt(from).
		EndAt(to).
		Documents(ctx)
	defer iter.Stop()

	var entries []timesheet.DailyEntry
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily entries for %s: %w", employeeID, err)
		}
		entries = append(entries, decodeDailyEntry(snap.Ref.ID, snap.Data()))
	}
	return entries, nil
}

// SaveDay implements timesheet.Repository.
func (r *timesheetRepository) SaveDay(ctx context.Context, employeeID string, entry timesheet.DailyEntry) error {
	activities := make([]interface{}, 0, len(entry.Activities))
	for _, a := range entry.Activities {
		activities = append(activities, map[string]interface{}{
			"type":       a.Type,
			"name":       a.Name,
			"minutes":    a.Minutes,
			"people":     a.People,
			"multiplier": a.Multiplier,
		})
	}

	data := map[string]interface{}{
		"status":     string(entry.Status),
		"activities": activities,
	}
	_, err := r.days(employeeID).Doc(entry.Date).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to save daily entry %s/%s: %w", employeeID, entry.Date, err)
	}
	return nil
}

func decodeDailyEntry(date string, data map[string]interface{}) timesheet.DailyEntry {
	entry := timesheet.DailyEntry{Date: date}

	if s, ok := data["status"].(string); ok && timesheet.IsValidStatus(s) {
		entry.Status = timesheet.Status(s)
	}

	raw, ok := data["activities"].([]interface{})
	if !ok {
		return entry
	}
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		actType, _ := m["type"].(string)
		people := int(worksite.CoerceFloat(m["people"]))
		if people < 1 {
			people = 1
		}
		multiplier := worksite.CoerceFloat(m["multiplier"])
		if multiplier < 1 {
			multiplier = 1
		}
		entry.Activities = append(entry.Activities, timesheet.Activity{
			Type:       actType,
			Name:       name,
			Minutes:    worksite.CoerceFloat(m["minutes"]),
			People:     people,
			Multiplier: multiplier,
		})
	}
	return entry
}
