package domain

import (
	"time"
)

// Product represents a catalog item owned by a store. Prices are integer
// minor currency units. Images holds derived URLs in upload order; the first
// entry is the primary image.
type Product struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MRP         int64     `json:"mrp"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
