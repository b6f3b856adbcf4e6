package response

import (
	"errors"
	"net/http"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/domain/product"
	"github.com/lumaclean/wfm-backend-go/internal/domain/ticket"
	"github.com/lumaclean/wfm-backend-go/internal/domain/timesheet"
	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Not allowed to access this resource")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNameRequired):
		BadRequest(w, "Employee name is required", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrInvalidDate):
		BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, timesheet.ErrInvalidStatus):
		BadRequest(w, "Invalid day status", nil)

	// Catalog domain errors
	case errors.Is(err, worksite.ErrUnknownCatalogType):
		BadRequest(w, "Unknown catalog type", nil)

	// Ticket / product domain errors
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
