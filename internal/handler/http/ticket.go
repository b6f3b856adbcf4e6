package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/ticket"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/middleware"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
)

type TicketHandler interface {
	ListForDate(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type ticketHandlerImpl struct {
	ticketService ticket.Service
}

func NewTicketHandler(ticketService ticket.Service) TicketHandler {
	return &ticketHandlerImpl{ticketService: ticketService}
}

// ListForDate implements TicketHandler.
func (h *ticketHandlerImpl) ListForDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	tickets, err := h.ticketService.ForDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]ticket.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, ticket.ToResponse(t))
	}
	response.Success(w, result)
}

// Upsert implements TicketHandler.
func (h *ticketHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	date := chi.URLParam(r, "date")
	siteKey := chi.URLParam(r, "siteKey")

	var req ticket.UpsertTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.ticketService.Upsert(r.Context(), date, siteKey, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket saved", ticket.ToResponse(saved))
}
