package product

import "context"

type Repository interface {
	Products(ctx context.Context) ([]Product, error)
	Ratings(ctx context.Context, productID string) ([]Rating, error)
	SaveRating(ctx context.Context, productID string, r Rating) error
}
