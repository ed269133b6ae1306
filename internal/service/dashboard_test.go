package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bloodwraith8851/gocart/internal/domain"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

// --- Mock Order and Rating Repositories ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) ListByStore(ctx context.Context, storeID string) ([]domain.Order, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) ListByProductIDs(ctx context.Context, productIDs []string) ([]domain.RatingWithRefs, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingWithRefs), args.Error(1)
}

func newDashboardService(resolver StoreResolver, products *mockProductRepository, orders *mockOrderRepository, ratings *mockRatingRepository) *DashboardService {
	return NewDashboardService(resolver, products, orders, ratings, newTestLogger())
}

func TestComputeDashboard(t *testing.T) {
	products := new(mockProductRepository)
	orders := new(mockOrderRepository)
	ratings := new(mockRatingRepository)
	svc := newDashboardService(&stubResolver{storeID: "store-1"}, products, orders, ratings)
	ctx := context.Background()

	// 100.50 + 49.50 in minor units; rounds to exactly 150.
	orders.On("ListByStore", ctx, "store-1").Return([]domain.Order{
		{ID: "o1", StoreID: "store-1", Total: 10050},
		{ID: "o2", StoreID: "store-1", Total: 4950},
	}, nil)
	products.On("ListByStore", ctx, "store-1").Return([]domain.Product{
		{ID: "p1", StoreID: "store-1"},
		{ID: "p2", StoreID: "store-1"},
	}, nil)

	storeRatings := []domain.RatingWithRefs{
		{
			Rating:  domain.Rating{ID: "r1", ProductID: "p1", UserID: "buyer-1", Rating: 5},
			User:    domain.UserSummary{ID: "buyer-1", Name: "Ada"},
			Product: domain.ProductSummary{ID: "p1", Name: "Ceramic Mug"},
		},
	}
	ratings.On("ListByProductIDs", ctx, []string{"p1", "p2"}).Return(storeRatings, nil)

	dashboard, err := svc.Compute(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.TotalOrders)
	assert.Equal(t, int64(150), dashboard.TotalEarnings)
	assert.Equal(t, 2, dashboard.TotalProducts)
	assert.Equal(t, storeRatings, dashboard.Ratings)

	ratings.AssertExpectations(t)
}

func TestComputeDashboard_EarningsInvariantToOrder(t *testing.T) {
	totals := []int64{10050, 4950, 33, 1, 99999}

	sum := func(order []int) int64 {
		var s int64
		for _, i := range order {
			s += totals[i]
		}
		return s
	}

	forward := sum([]int{0, 1, 2, 3, 4})
	shuffled := sum([]int{4, 2, 0, 3, 1})

	assert.Equal(t, domain.RoundToUnit(forward), domain.RoundToUnit(shuffled))
}

func TestComputeDashboard_EmptyStore(t *testing.T) {
	products := new(mockProductRepository)
	orders := new(mockOrderRepository)
	ratings := new(mockRatingRepository)
	svc := newDashboardService(&stubResolver{storeID: "store-1"}, products, orders, ratings)
	ctx := context.Background()

	orders.On("ListByStore", ctx, "store-1").Return([]domain.Order{}, nil)
	products.On("ListByStore", ctx, "store-1").Return([]domain.Product{}, nil)
	ratings.On("ListByProductIDs", ctx, []string{}).Return([]domain.RatingWithRefs{}, nil)

	dashboard, err := svc.Compute(ctx, "user-1")

	require.NoError(t, err)
	assert.Zero(t, dashboard.TotalOrders)
	assert.Zero(t, dashboard.TotalEarnings)
	assert.Zero(t, dashboard.TotalProducts)
	assert.Empty(t, dashboard.Ratings)
}

func TestComputeDashboard_NotASeller(t *testing.T) {
	svc := newDashboardService(
		&stubResolver{err: apperrors.Unauthorized("not an approved seller")},
		new(mockProductRepository),
		new(mockOrderRepository),
		new(mockRatingRepository),
	)

	_, err := svc.Compute(context.Background(), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
