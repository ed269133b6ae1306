package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/pkg/database"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

func setupProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewProductRepository(mock), mock
}

func sampleProduct() *domain.Product {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:          "9a1b3c5d-0000-0000-0000-000000000001",
		StoreID:     "4f2c9a1e-0000-0000-0000-000000000001",
		Name:        "Ceramic Mug",
		Description: "Holds coffee",
		MRP:         49900,
		Price:       29999,
		Category:    "kitchen",
		Images:      []string{"https://cdn.example/img-0", "https://cdn.example/img-1"},
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productColumnNames() []string {
	return []string{
		"id", "store_id", "name", "description", "mrp", "price",
		"category", "images", "in_stock", "created_at", "updated_at",
	}
}

func productRow(rows *pgxmock.Rows, p *domain.Product) *pgxmock.Rows {
	return rows.AddRow(
		p.ID, p.StoreID, p.Name, p.Description, p.MRP, p.Price,
		p.Category, p.Images, p.InStock, p.CreatedAt, p.UpdatedAt,
	)
}

func TestProductRepository_Create_Success(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID, p.StoreID, p.Name, p.Description, p.MRP, p.Price,
			p.Category, p.Images, p.InStock, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListByStore(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	rows := productRow(pgxmock.NewRows(productColumnNames()), p)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(p.StoreID).
		WillReturnRows(rows)

	products, err := repo.ListByStore(context.Background(), p.StoreID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, *p, products[0])
	assert.Equal(t, []string{"https://cdn.example/img-0", "https://cdn.example/img-1"}, products[0].Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListByStore_Empty(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("empty-store").
		WillReturnRows(pgxmock.NewRows(productColumnNames()))

	products, err := repo.ListByStore(context.Background(), "empty-store")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_ToggleStock(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE products").
		WithArgs("prod-1", "store-1").
		WillReturnRows(pgxmock.NewRows([]string{"in_stock"}).AddRow(false))

	inStock, err := repo.ToggleStock(context.Background(), "prod-1", "store-1")
	require.NoError(t, err)
	assert.False(t, inStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ToggleStock_WrongStore(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	// A product id that exists under another store matches zero rows; the
	// caller cannot tell it apart from a missing product.
	mock.ExpectQuery("UPDATE products").
		WithArgs("prod-1", "other-store").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.ToggleStock(context.Background(), "prod-1", "other-store")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
