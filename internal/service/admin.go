package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/event"
	"github.com/bloodwraith8851/gocart/internal/repository"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

// AdminService decides pending store applications. Callers are expected to
// be role-gated at the transport layer.
type AdminService struct {
	stores   repository.StoreRepository
	cache    SellerCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewAdminService creates a new admin service. cache may be nil.
func NewAdminService(
	stores repository.StoreRepository,
	cache SellerCache,
	producer *event.Producer,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		stores:   stores,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// Decide approves or rejects a pending store application. Both outcomes are
// terminal; deciding an already decided application is a conflict. The
// transition is checked here first, and again by the storage layer's status
// pin so concurrent decisions cannot double-apply.
func (s *AdminService) Decide(ctx context.Context, storeID string, approve bool) (*domain.Store, error) {
	status := domain.StoreStatusRejected
	if approve {
		status = domain.StoreStatusApproved
	}

	current, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("get store application: %w", err)
	}
	if !domain.CanTransitionStatus(current.Status, status) {
		return nil, apperrors.Conflict("store application is already decided")
	}

	if err := s.stores.UpdateStatus(ctx, storeID, status); err != nil {
		return nil, fmt.Errorf("decide store application: %w", err)
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("get decided store: %w", err)
	}

	// Warm the seller cache so the new seller's first request skips a
	// database round trip. Safe: approved is terminal.
	if approve && s.cache != nil {
		if err := s.cache.SetStoreID(ctx, store.UserID, store.ID); err != nil {
			s.logger.WarnContext(ctx, "seller cache warm failed",
				slog.String("store_id", store.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.producer.PublishStoreDecided(ctx, store); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish store.decided event",
			slog.String("store_id", store.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "store application decided",
		slog.String("store_id", store.ID),
		slog.String("status", store.Status),
	)

	return store, nil
}
