package postgres

import (
	"context"
	"fmt"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/repository"
	"github.com/bloodwraith8851/gocart/pkg/database"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db repository.DB
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(db repository.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// ListByProductIDs returns all ratings whose product id is in the given set,
// each joined with its author and rated product for display. Ratings carry no
// store id, so this membership filter is how a store's ratings are selected.
func (r *RatingRepository) ListByProductIDs(ctx context.Context, productIDs []string) (ratings []domain.RatingWithRefs, err error) {
	if len(productIDs) == 0 {
		return []domain.RatingWithRefs{}, nil
	}

	query := `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.review, r.created_at,
		       u.id, u.name, u.email,
		       p.id, p.name, p.category
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN products p ON p.id = r.product_id
		WHERE r.product_id = ANY($1)
		ORDER BY r.created_at DESC`

	ctx, end := database.TraceQuery(ctx, "ListRatingsByProducts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rr domain.RatingWithRefs
		if err = rows.Scan(
			&rr.ID,
			&rr.ProductID,
			&rr.UserID,
			&rr.Rating.Rating,
			&rr.Review,
			&rr.CreatedAt,
			&rr.User.ID,
			&rr.User.Name,
			&rr.User.Email,
			&rr.Product.ID,
			&rr.Product.Name,
			&rr.Product.Category,
		); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	if ratings == nil {
		ratings = []domain.RatingWithRefs{}
	}

	return ratings, nil
}
