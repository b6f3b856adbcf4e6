package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/middleware"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
	Badge(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	roster, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]employee.EmployeeResponse, 0, len(roster))
	for _, e := range roster {
		result = append(result, employee.ToResponse(e))
	}
	response.Success(w, result)
}

// Upsert implements EmployeeHandler.
func (h *employeeHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req employee.UpsertEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.employeeService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee saved", employee.ToResponse(saved))
}

// Remove implements EmployeeHandler.
func (h *employeeHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.Remove(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee removed", nil)
}

// Badge implements EmployeeHandler. Admins can print any badge; employees
// only their own.
func (h *employeeHandlerImpl) Badge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	callerID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if callerID != id && !middleware.IsAdmin(r) {
		response.HandleError(w, auth.ErrForbidden)
		return
	}

	badge, err := h.employeeService.Badge(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, badge)
}
