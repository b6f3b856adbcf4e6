package product

import "context"

type Service interface {
	List(ctx context.Context) ([]Product, error)
	SubmitRating(ctx context.Context, productID, employeeID string, req SubmitRatingRequest) (Rating, error)
	Summary(ctx context.Context, productID string) (RatingSummary, error)
}
