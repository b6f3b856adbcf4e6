package employee

import (
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

type UpsertEmployeeRequest struct {
	Name       string   `json:"name"`
	Password   string   `json:"password,omitempty"`
	HourlyCost *float64 `json:"hourly_cost,omitempty"`
}

func (r *UpsertEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.HourlyCost != nil && *r.HourlyCost < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_cost",
			Message: "hourly cost must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyCost float64 `json:"hourly_cost"`
	IsFixture  bool    `json:"is_fixture"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		HourlyCost: e.HourlyCost,
		IsFixture:  e.IsFixture(),
	}
}

// Badge is the printable ID-card payload. The front-end renders it; the QR
// content encodes the employee id so site supervisors can scan it.
type Badge struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	IssuedAt   string `json:"issued_at"`
	QRContent  string `json:"qr_content"`
}
