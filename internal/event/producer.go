package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bloodwraith8851/gocart/internal/domain"
	pkgkafka "github.com/bloodwraith8851/gocart/pkg/kafka"
	pkglogger "github.com/bloodwraith8851/gocart/pkg/logger"
)

// Kafka topic constants for seller domain events.
const (
	TopicStoreApplied        = "gocart.store.applied"
	TopicStoreDecided        = "gocart.store.decided"
	TopicProductCreated      = "gocart.product.created"
	TopicProductStockUpdated = "gocart.product.stock_updated"
)

// Aggregate type constants.
const (
	AggregateTypeStore   = "store"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from the seller service.
const SourceSellerService = "seller-service"

// StoreAppliedData is the payload for a store.applied event.
type StoreAppliedData struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// StoreDecidedData is the payload for a store.decided event.
type StoreDecidedData struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID       string `json:"id"`
	StoreID  string `json:"store_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	MRP      int64  `json:"mrp"`
	Price    int64  `json:"price"`
}

// ProductStockUpdatedData is the payload for a product.stock_updated event.
type ProductStockUpdatedData struct {
	ID      string `json:"id"`
	StoreID string `json:"store_id"`
	InStock bool   `json:"in_stock"`
}

// Producer publishes seller domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the seller service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// publish wraps the payload in the standard envelope, stamped with the
// request correlation id when one is present, and sends it.
func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceSellerService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := pkglogger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}
	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// PublishStoreApplied publishes a store.applied event.
func (p *Producer) PublishStoreApplied(ctx context.Context, store *domain.Store) error {
	data := StoreAppliedData{
		ID:       store.ID,
		UserID:   store.UserID,
		Name:     store.Name,
		Username: store.Username,
		Email:    store.Email,
	}

	if err := p.publish(ctx, TopicStoreApplied, store.ID, AggregateTypeStore, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published store.applied event",
		slog.String("store_id", store.ID),
		slog.String("username", store.Username),
	)

	return nil
}

// PublishStoreDecided publishes a store.decided event.
func (p *Producer) PublishStoreDecided(ctx context.Context, store *domain.Store) error {
	data := StoreDecidedData{
		ID:     store.ID,
		UserID: store.UserID,
		Status: store.Status,
	}

	if err := p.publish(ctx, TopicStoreDecided, store.ID, AggregateTypeStore, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published store.decided event",
		slog.String("store_id", store.ID),
		slog.String("status", store.Status),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:       product.ID,
		StoreID:  product.StoreID,
		Name:     product.Name,
		Category: product.Category,
		MRP:      product.MRP,
		Price:    product.Price,
	}

	if err := p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
		slog.String("store_id", product.StoreID),
	)

	return nil
}

// PublishProductStockUpdated publishes a product.stock_updated event.
func (p *Producer) PublishProductStockUpdated(ctx context.Context, productID, storeID string, inStock bool) error {
	data := ProductStockUpdatedData{
		ID:      productID,
		StoreID: storeID,
		InStock: inStock,
	}

	if err := p.publish(ctx, TopicProductStockUpdated, productID, AggregateTypeProduct, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published product.stock_updated event",
		slog.String("product_id", productID),
		slog.Bool("in_stock", inStock),
	)

	return nil
}
