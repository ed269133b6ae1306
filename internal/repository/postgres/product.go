package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/repository"
	"github.com/bloodwraith8851/gocart/pkg/database"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db repository.DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db repository.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product scoped to its owning store.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (err error) {
	query := `
		INSERT INTO products (id, store_id, name, description, mrp, price, category, images, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.StoreID,
		p.Name,
		p.Description,
		p.MRP,
		p.Price,
		p.Category,
		p.Images,
		p.InStock,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// ListByStore returns all products owned by the given store, newest first.
func (r *ProductRepository) ListByStore(ctx context.Context, storeID string) (products []domain.Product, err error) {
	query := `
		SELECT id, store_id, name, description, mrp, price, category, images, in_stock, created_at, updated_at
		FROM products
		WHERE store_id = $1
		ORDER BY created_at DESC`

	ctx, end := database.TraceQuery(ctx, "ListProductsByStore", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err = rows.Scan(
			&p.ID,
			&p.StoreID,
			&p.Name,
			&p.Description,
			&p.MRP,
			&p.Price,
			&p.Category,
			&p.Images,
			&p.InStock,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// ToggleStock negates in_stock in a single conditional UPDATE, so concurrent
// toggles serialize at the row and each call flips exactly once. Scoping the
// WHERE clause to the store id makes cross-store access indistinguishable
// from a missing product.
func (r *ProductRepository) ToggleStock(ctx context.Context, productID, storeID string) (inStock bool, err error) {
	query := `
		UPDATE products
		SET in_stock = NOT in_stock, updated_at = NOW()
		WHERE id = $1 AND store_id = $2
		RETURNING in_stock`

	ctx, end := database.TraceQuery(ctx, "ToggleProductStock", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, productID, storeID).Scan(&inStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NotFound("product", productID)
		}
		return false, fmt.Errorf("toggle stock: %w", err)
	}

	return inStock, nil
}
