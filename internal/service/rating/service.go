package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumaclean/wfm-backend-go/internal/domain/product"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
)

type RatingServiceImpl struct {
	repo  product.Repository
	clock cache.Clock
}

func NewRatingService(repo product.Repository, clock cache.Clock) product.Service {
	if clock == nil {
		clock = time.Now
	}
	return &RatingServiceImpl{repo: repo, clock: clock}
}

// List implements product.Service.
func (s *RatingServiceImpl) List(ctx context.Context) ([]product.Product, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// SubmitRating implements product.Service. One rating per employee per
// product; resubmission overwrites.
func (s *RatingServiceImpl) SubmitRating(ctx context.Context, productID, employeeID string, req product.SubmitRatingRequest) (product.Rating, error) {
	if err := req.Validate(); err != nil {
		return product.Rating{}, err
	}

	if _, err := s.findProduct(ctx, productID); err != nil {
		return product.Rating{}, err
	}

	r := product.Rating{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Stars:      req.Stars,
		Comment:    req.Comment,
		CreatedAt:  s.clock(),
	}
	if err := s.repo.SaveRating(ctx, productID, r); err != nil {
		return product.Rating{}, fmt.Errorf("failed to save rating: %w", err)
	}
	return r, nil
}

// Summary implements product.Service.
func (s *RatingServiceImpl) Summary(ctx context.Context, productID string) (product.RatingSummary, error) {
	if _, err := s.findProduct(ctx, productID); err != nil {
		return product.RatingSummary{}, err
	}

	ratings, err := s.repo.Ratings(ctx, productID)
	if err != nil {
		return product.RatingSummary{}, fmt.Errorf("failed to load ratings: %w", err)
	}

	summary := product.RatingSummary{
		ProductID:   productID,
		RatingCount: len(ratings),
		Ratings:     make([]product.RatingRow, 0, len(ratings)),
	}
	var totalStars int
	for _, r := range ratings {
		totalStars += r.Stars
		summary.Ratings = append(summary.Ratings, product.RatingRow{
			EmployeeID: r.EmployeeID,
			Stars:      r.Stars,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	if len(ratings) > 0 {
		summary.AverageStars = float64(totalStars) / float64(len(ratings))
	}
	return summary, nil
}

func (s *RatingServiceImpl) findProduct(ctx context.Context, productID string) (product.Product, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to list products: %w", err)
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return product.Product{}, product.ErrProductNotFound
}
