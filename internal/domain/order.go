package domain

import (
	"time"
)

// Order is a completed purchase against a store. Only the total matters to
// this service; orders are read for aggregation and never mutated here.
type Order struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
