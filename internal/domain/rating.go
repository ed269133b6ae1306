package domain

import (
	"time"
)

// Rating is a buyer's review of a product. Ratings carry no store reference;
// they are related to a store only through the rated product.
type Rating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the rating author as shown on the seller dashboard.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductSummary is the rated product as shown on the seller dashboard.
type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// RatingWithRefs is a rating enriched with its author and rated product.
type RatingWithRefs struct {
	Rating
	User    UserSummary    `json:"user"`
	Product ProductSummary `json:"product"`
}
