package postgres

import (
	"context"
	"fmt"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/repository"
	"github.com/bloodwraith8851/gocart/pkg/database"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Orders are written by the checkout pipeline; this service only reads them.
type OrderRepository struct {
	db repository.DB
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db repository.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListByStore returns all orders placed against the given store.
func (r *OrderRepository) ListByStore(ctx context.Context, storeID string) (orders []domain.Order, err error) {
	query := `
		SELECT id, store_id, total, created_at
		FROM orders
		WHERE store_id = $1
		ORDER BY created_at DESC`

	ctx, end := database.TraceQuery(ctx, "ListOrdersByStore", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o domain.Order
		if err = rows.Scan(&o.ID, &o.StoreID, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, nil
}
