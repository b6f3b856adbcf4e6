package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/timesheet"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/middleware"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetDay(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	SubmitDay(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
}

func NewTimesheetHandler(timesheetService timesheet.Service) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// GetDay implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	date := chi.URLParam(r, "date")

	entry, err := h.timesheetService.Day(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToResponse(entry))
}

// GetRange implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	entries, err := h.timesheetService.Range(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]timesheet.DailyEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, timesheet.ToResponse(e))
	}
	response.Success(w, result)
}

// SubmitDay implements TimesheetHandler.
func (h *timesheetHandlerImpl) SubmitDay(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	date := chi.URLParam(r, "date")

	var req timesheet.SubmitDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.timesheetService.SubmitDay(r.Context(), employeeID, date, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day saved", timesheet.ToResponse(entry))
}
