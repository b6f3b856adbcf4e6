package firestore

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"

	"github.com/lumaclean/wfm-backend-go/internal/domain/product"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/database"
)

type productRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.Repository {
	return &productRepository{db: db}
}

// Products implements product.Repository.
func (r *productRepository) Products(ctx context.Context) ([]product.Product, error) {
	iter := r.db.Collection("Products").Documents(ctx)
	defer iter.Stop()

	var products []product.Product
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		data := snap.Data()
		p := product.Product{ID: snap.Ref.ID}
		p.Name, _ = data["name"].(string)
		p.Description, _ = data["description"].(string)
		products = append(products, p)
	}
	return products, nil
}

// Ratings implements product.Repository.
func (r *productRepository) Ratings(ctx context.Context, productID string) ([]product.Rating, error) {
	iter := r.db.Collection("ProductRatings").Doc(productID).Collection("ratings").Documents(ctx)
	defer iter.Stop()

	var ratings []product.Rating
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list ratings for %s: %w", productID, err)
		}

		var stored struct {
			ID        string `firestore:"id"`
			Stars     int    `firestore:"stars"`
			Comment   string `firestore:"comment"`
			CreatedAt int64  `firestore:"createdAt"`
		}
		if err := snap.DataTo(&stored); err != nil {
			continue
		}
		ratings = append(ratings, product.Rating{
			ID:         stored.ID,
			EmployeeID: snap.Ref.ID,
			Stars:      stored.Stars,
			Comment:    stored.Comment,
			CreatedAt:  unixMilliOrZero(stored.CreatedAt),
		})
	}
	return ratings, nil
}

// SaveRating implements product.Repository. One document per employee per
// product; a resubmission overwrites the previous rating.
func (r *productRepository) SaveRating(ctx context.Context, productID string, rating product.Rating) error {
	doc := r.db.Collection("ProductRatings").Doc(productID).Collection("ratings").Doc(rating.EmployeeID)
	_, err := doc.Set(ctx, map[string]interface{}{
		"id":        rating.ID,
		"stars":     rating.Stars,
		"comment":   rating.Comment,
		"createdAt": rating.CreatedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to save rating %s/%s: %w", productID, rating.EmployeeID, err)
	}
	return nil
}
