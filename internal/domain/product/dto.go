package product

import (
	"github.com/lumaclean/wfm-backend-go/internal/pkg/validator"
)

type SubmitRatingRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

func (r *SubmitRatingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Stars < 1 || r.Stars > 5 {
		errs = append(errs, validator.ValidationError{
			Field:   "stars",
			Message: "stars must be between 1 and 5",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RatingRow struct {
	EmployeeID string `json:"employee_id"`
	Stars      int    `json:"stars"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// RatingSummary aggregates all ratings of one product.
type RatingSummary struct {
	ProductID    string      `json:"product_id"`
	RatingCount  int         `json:"rating_count"`
	AverageStars float64     `json:"average_stars"`
	Ratings      []RatingRow `json:"ratings"`
}
