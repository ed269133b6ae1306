package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/event"
	"github.com/bloodwraith8851/gocart/internal/media"
	"github.com/bloodwraith8851/gocart/internal/repository"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

// CatalogService implements product operations for approved sellers. Every
// operation resolves seller authorization first and is scoped to the
// resolved store id.
type CatalogService struct {
	resolver StoreResolver
	products repository.ProductRepository
	uploader media.Uploader
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	resolver StoreResolver,
	products repository.ProductRepository,
	uploader media.Uploader,
	producer *event.Producer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		resolver: resolver,
		products: products,
		uploader: uploader,
		producer: producer,
		logger:   logger,
	}
}

// ImageInput is one raw product image to upload.
type ImageInput struct {
	Data     io.Reader
	FileName string
}

// AddProductInput holds the parameters for creating a product. MRP and Price
// are decimal strings in major currency units; they are parsed exactly into
// minor units, never through floating point.
type AddProductInput struct {
	Name        string
	Description string
	MRP         string
	Price       string
	Category    string
	Images      []ImageInput
}

// AddProduct creates a product for the caller's store. All images are
// uploaded concurrently; the product is persisted only after every upload
// succeeded, and the resulting URL sequence preserves input order so the
// first image stays the primary one.
func (s *CatalogService) AddProduct(ctx context.Context, userID string, input *AddProductInput) (*domain.Product, error) {
	storeID, err := s.resolver.ResolveStoreID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Description == "" {
		return nil, apperrors.InvalidInput("product description is required")
	}
	if input.Category == "" {
		return nil, apperrors.InvalidInput("product category is required")
	}
	if len(input.Images) == 0 {
		return nil, apperrors.InvalidInput("at least one product image is required")
	}

	mrp, err := domain.ParseAmount(input.MRP)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid mrp: %v", err))
	}
	price, err := domain.ParseAmount(input.Price)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid price: %v", err))
	}

	urls, paths, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		s.cleanupUploads(ctx, paths)
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		Name:        input.Name,
		Description: input.Description,
		MRP:         mrp,
		Price:       price,
		Category:    input.Category,
		Images:      urls,
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.cleanupUploads(ctx, paths)
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("store_id", storeID),
		slog.Int("images", len(urls)),
	)

	return product, nil
}

// uploadImages uploads all images concurrently. Results keep the input
// order. On failure it returns whatever paths were stored so the caller can
// clean them up.
func (s *CatalogService) uploadImages(ctx context.Context, images []ImageInput) ([]string, []string, error) {
	urls := make([]string, len(images))
	paths := make([]string, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			uploaded, err := s.uploader.Upload(gctx, &media.UploadInput{
				Data:     img.Data,
				FileName: img.FileName,
				Folder:   media.FolderProducts,
			})
			if err != nil {
				return fmt.Errorf("upload image %d: %w", i, err)
			}
			paths[i] = uploaded.FilePath
			urls[i] = s.uploader.URL(uploaded.FilePath, media.ProductTransform())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, paths, err
	}
	return urls, paths, nil
}

// ListProducts returns all products owned by the caller's store.
func (s *CatalogService) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	storeID, err := s.resolver.ResolveStoreID(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ToggleStock flips the in-stock flag of a product owned by the caller's
// store and returns the new value. The flip happens in a single conditional
// update, so concurrent toggles each invert exactly once instead of racing a
// read against a write. A product id belonging to another store is
// indistinguishable from a missing one.
func (s *CatalogService) ToggleStock(ctx context.Context, userID, productID string) (bool, error) {
	storeID, err := s.resolver.ResolveStoreID(ctx, userID)
	if err != nil {
		return false, err
	}
	if productID == "" {
		return false, apperrors.InvalidInput("product id is required")
	}

	inStock, err := s.products.ToggleStock(ctx, productID, storeID)
	if err != nil {
		return false, fmt.Errorf("toggle stock: %w", err)
	}

	if err := s.producer.PublishProductStockUpdated(ctx, productID, storeID, inStock); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.stock_updated event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product stock toggled",
		slog.String("product_id", productID),
		slog.Bool("in_stock", inStock),
	)

	return inStock, nil
}

// cleanupUploads removes assets stored before an aborted create. Best effort.
func (s *CatalogService) cleanupUploads(ctx context.Context, paths []string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := s.uploader.Delete(ctx, path); err != nil {
			s.logger.WarnContext(ctx, "failed to delete orphaned asset",
				slog.String("file_path", path),
				slog.String("error", err.Error()),
			)
		}
	}
}
