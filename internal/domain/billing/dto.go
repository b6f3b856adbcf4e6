package billing

import (
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY BILLING REPORT
// ========================================

type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Row is one job-site line of the monthly report. Only sites with at least
// one logged activity appear.
type Row struct {
	Key                   string  `json:"key"`
	Type                  string  `json:"type"`
	Name                  string  `json:"name"`
	TotalActivities       int     `json:"total_activities"`
	TotalEffectiveMinutes float64 `json:"total_effective_minutes"`
	LaborCost             float64 `json:"labor_cost"`
	ConsumablesCost       float64 `json:"consumables_cost"`
	ProductsCost          float64 `json:"products_cost"`
	TotalRevenue          float64 `json:"total_revenue"`
	Margin                float64 `json:"margin"`
}

type MonthlyReport struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	GeneratedAt string `json:"generated_at"`
	Rows        []Row  `json:"rows"`
}

// ========================================
// ANNUAL ROLL-UP
// ========================================

type AnnualReportRequest struct {
	Year int `json:"year"`
}

func (r *AnnualReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AnnualSummary struct {
	Revenue     float64 `json:"revenue"`
	Labor       float64 `json:"labor"`
	Consumables float64 `json:"consumables"`
	Products    float64 `json:"products"`
	TotalCosts  float64 `json:"total_costs"`
	Margin      float64 `json:"margin"`
}

// MonthContribution is one month's share of a site's annual totals.
type MonthContribution struct {
	Month                 int     `json:"month"`
	TotalActivities       int     `json:"total_activities"`
	TotalEffectiveMinutes float64 `json:"total_effective_minutes"`
	LaborCost             float64 `json:"labor_cost"`
	ConsumablesCost       float64 `json:"consumables_cost"`
	ProductsCost          float64 `json:"products_cost"`
	TotalRevenue          float64 `json:"total_revenue"`
	Margin                float64 `json:"margin"`
}

type AnnualSite struct {
	Key                   string              `json:"key"`
	Type                  string              `json:"type"`
	Name                  string              `json:"name"`
	TotalActivities       int                 `json:"total_activities"`
	TotalEffectiveMinutes float64             `json:"total_effective_minutes"`
	LaborCost             float64             `json:"labor_cost"`
	ConsumablesCost       float64             `json:"consumables_cost"`
	ProductsCost          float64             `json:"products_cost"`
	TotalRevenue          float64             `json:"total_revenue"`
	Margin                float64             `json:"margin"`
	Months                []MonthContribution `json:"months"`
}

type AnnualReport struct {
	Year        int             `json:"year"`
	GeneratedAt string          `json:"generated_at"`
	Summary     AnnualSummary   `json:"summary"`
	Sites       []AnnualSite    `json:"sites"`
	Months      []MonthlyReport `json:"months"`
}
