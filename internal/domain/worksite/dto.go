package worksite

import (
	"fmt"

	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

// SiteInput is one structured catalog entry as submitted by the admin UI.
// Writes always use the structured form; legacy string entries only ever
// appear on reads.
type SiteInput struct {
	Name                       string  `json:"name"`
	DefaultMinutes             float64 `json:"default_minutes"`
	ConsumablesCostPerActivity float64 `json:"consumables_cost_per_activity"`
	ProductsCostPerActivity    float64 `json:"products_cost_per_activity"`
	FlatMonthlyRevenue         float64 `json:"flat_monthly_revenue"`
	PerInterventionRevenue     float64 `json:"per_intervention_revenue"`
}

type ReplaceCatalogRequest struct {
	Type  string      `json:"type"`
	Sites []SiteInput `json:"sites"`
}

func (r *ReplaceCatalogRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidType(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of uffici, appartamenti, bnb, pst",
		})
	}

	for i, s := range r.Sites {
		if validator.IsEmpty(s.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("sites[%d].name", i),
				Message: "name is required",
			})
		}
		if s.ConsumablesCostPerActivity < 0 || s.ProductsCostPerActivity < 0 ||
			s.FlatMonthlyRevenue < 0 || s.PerInterventionRevenue < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("sites[%d]", i),
				Message: "cost and revenue fields must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CatalogResponse is the JSON shape served to the front-end.
type CatalogResponse struct {
	Key                        string  `json:"key"`
	Name                       string  `json:"name"`
	Type                       string  `json:"type"`
	DefaultMinutes             float64 `json:"default_minutes"`
	ConsumablesCostPerActivity float64 `json:"consumables_cost_per_activity"`
	ProductsCostPerActivity    float64 `json:"products_cost_per_activity"`
	FlatMonthlyRevenue         float64 `json:"flat_monthly_revenue"`
	PerInterventionRevenue     float64 `json:"per_intervention_revenue"`
}

func ToResponse(s Site) CatalogResponse {
	return CatalogResponse{
		Key:                        s.Key(),
		Name:                       s.Name,
		Type:                       string(s.Type),
		DefaultMinutes:             s.DefaultMinutes,
		ConsumablesCostPerActivity: s.ConsumablesCostPerActivity,
		ProductsCostPerActivity:    s.ProductsCostPerActivity,
		FlatMonthlyRevenue:         s.FlatMonthlyRevenue,
		PerInterventionRevenue:     s.PerInterventionRevenue,
	}
}
