package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/repository"
)

// DashboardService computes the aggregated store dashboard. Always computed
// fresh from current state; nothing here is cached.
type DashboardService struct {
	resolver StoreResolver
	products repository.ProductRepository
	orders   repository.OrderRepository
	ratings  repository.RatingRepository
	logger   *slog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	resolver StoreResolver,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	ratings repository.RatingRepository,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		resolver: resolver,
		products: products,
		orders:   orders,
		ratings:  ratings,
		logger:   logger,
	}
}

// Compute aggregates orders, products, and ratings for the caller's store.
// Ratings carry no store reference, so they are selected by membership in
// the store's product id set. Earnings are summed exactly in integer minor
// units and rounded to whole units once, at the end, so the result does not
// depend on summation order.
func (s *DashboardService) Compute(ctx context.Context, userID string) (*domain.Dashboard, error) {
	storeID, err := s.resolver.ResolveStoreID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	productIDs := make([]string, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	ratings, err := s.ratings.ListByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	var earningsMinor int64
	for _, o := range orders {
		earningsMinor += o.Total
	}

	s.logger.DebugContext(ctx, "dashboard computed",
		slog.String("store_id", storeID),
		slog.Int("orders", len(orders)),
		slog.Int("products", len(products)),
		slog.Int("ratings", len(ratings)),
	)

	return &domain.Dashboard{
		TotalOrders:   len(orders),
		TotalEarnings: domain.RoundToUnit(earningsMinor),
		TotalProducts: len(products),
		Ratings:       ratings,
	}, nil
}
