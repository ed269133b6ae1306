package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bloodwraith8851/gocart/internal/domain"
)

// DB is the subset of pgxpool.Pool used by the repositories. It is satisfied
// by both *pgxpool.Pool and pgxmock pools, so repositories can be unit tested
// without a live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	// Create inserts a new store. Uniqueness of the owning user id and of the
	// lowercased username is enforced by database constraints; violations are
	// reported as AlreadyExists errors.
	Create(ctx context.Context, store *domain.Store) error

	// GetByID retrieves a store by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Store, error)

	// GetByUserID retrieves the store owned by the given user.
	GetByUserID(ctx context.Context, userID string) (*domain.Store, error)

	// UsernameExists reports whether a store already claimed the username
	// (compared case-insensitively).
	UsernameExists(ctx context.Context, username string) (bool, error)

	// UpdateStatus moves a pending store to a decided status. The transition
	// is guarded in SQL so concurrent decisions cannot double-apply.
	UpdateStatus(ctx context.Context, id, status string) error
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create inserts a new product scoped to its owning store.
	Create(ctx context.Context, product *domain.Product) error

	// ListByStore returns all products owned by the given store.
	ListByStore(ctx context.Context, storeID string) ([]domain.Product, error)

	// ToggleStock atomically negates the in-stock flag of the product,
	// scoped to both product id and store id so a seller can never touch
	// another store's product. Returns the new in-stock value.
	ToggleStock(ctx context.Context, productID, storeID string) (bool, error)
}

// OrderRepository reads orders for aggregation. Orders are written elsewhere.
type OrderRepository interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Order, error)
}

// RatingRepository reads ratings for aggregation. Ratings have no store
// column; callers select them by membership in a set of product ids.
type RatingRepository interface {
	ListByProductIDs(ctx context.Context, productIDs []string) ([]domain.RatingWithRefs, error)
}
