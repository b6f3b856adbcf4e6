package timesheet

import (
	"fmt"

	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

type ActivityInput struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Minutes    float64 `json:"minutes"`
	People     int     `json:"people"`
	Multiplier float64 `json:"multiplier"`
}

type SubmitDayRequest struct {
	Status     string          `json:"status,omitempty"`
	Activities []ActivityInput `json:"activities"`
}

func (r *SubmitDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be empty, restDay, vacation, or sick",
		})
	}

	for i, a := range r.Activities {
		if validator.IsEmpty(a.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("activities[%d].name", i),
				Message: "name is required",
			})
		}
		if a.Type != "" && !worksite.IsValidType(a.Type) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("activities[%d].type", i),
				Message: "type must be one of uffici, appartamenti, bnb, pst",
			})
		}
		if a.Minutes < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("activities[%d].minutes", i),
				Message: "minutes must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Activities converts the inputs to domain activities, applying the
// historical defaults: people 1, multiplier 1.
func (r *SubmitDayRequest) ToActivities() []Activity {
	activities := make([]Activity, 0, len(r.Activities))
	for _, a := range r.Activities {
		people := a.People
		if people < 1 {
			people = 1
		}
		multiplier := a.Multiplier
		if multiplier < 1 {
			multiplier = 1
		}
		activities = append(activities, Activity{
			Type:       a.Type,
			Name:       a.Name,
			Minutes:    a.Minutes,
			People:     people,
			Multiplier: multiplier,
		})
	}
	return activities
}

type ActivityResponse struct {
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	Minutes          float64 `json:"minutes"`
	People           int     `json:"people"`
	Multiplier       float64 `json:"multiplier"`
	EffectiveMinutes float64 `json:"effective_minutes"`
}

type DailyEntryResponse struct {
	Date       string             `json:"date"`
	Status     string             `json:"status,omitempty"`
	Activities []ActivityResponse `json:"activities"`
}

func ToResponse(e DailyEntry) DailyEntryResponse {
	resp := DailyEntryResponse{
		Date:       e.Date,
		Status:     string(e.Status),
		Activities: make([]ActivityResponse, 0, len(e.Activities)),
	}
	for _, a := range e.Activities {
		resp.Activities = append(resp.Activities, ActivityResponse{
			Type:             a.Type,
			Name:             a.Name,
			Minutes:          a.Minutes,
			People:           a.People,
			Multiplier:       a.Multiplier,
			EffectiveMinutes: a.EffectiveMinutes(),
		})
	}
	return resp
}
