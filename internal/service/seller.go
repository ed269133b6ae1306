package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/event"
	"github.com/bloodwraith8851/gocart/internal/media"
	"github.com/bloodwraith8851/gocart/internal/repository"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
	pkgvalidator "github.com/bloodwraith8851/gocart/pkg/validator"
)

// SellerCache caches approved-seller lookups. Implementations may be backed
// by Redis; a nil cache disables caching entirely.
type SellerCache interface {
	GetStoreID(ctx context.Context, userID string) (string, error)
	SetStoreID(ctx context.Context, userID, storeID string) error
}

// StoreResolver maps a user id to the id of their approved store. It is the
// gate in front of every privileged catalog and dashboard operation.
type StoreResolver interface {
	ResolveStoreID(ctx context.Context, userID string) (string, error)
}

// SellerService implements the store application lifecycle and seller
// authorization resolution.
type SellerService struct {
	stores   repository.StoreRepository
	cache    SellerCache
	uploader media.Uploader
	producer *event.Producer
	logger   *slog.Logger
}

// NewSellerService creates a new seller service. cache may be nil.
func NewSellerService(
	stores repository.StoreRepository,
	cache SellerCache,
	uploader media.Uploader,
	producer *event.Producer,
	logger *slog.Logger,
) *SellerService {
	return &SellerService{
		stores:   stores,
		cache:    cache,
		uploader: uploader,
		producer: producer,
		logger:   logger,
	}
}

// ResolveStoreID returns the id of the approved store owned by the user.
// Users with no store, or a store still pending or rejected, are reported as
// Unauthorized. Cache errors degrade to a direct lookup.
func (s *SellerService) ResolveStoreID(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("user identity is required")
	}

	if s.cache != nil {
		storeID, err := s.cache.GetStoreID(ctx, userID)
		if err != nil {
			s.logger.WarnContext(ctx, "seller cache lookup failed",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		} else if storeID != "" {
			return storeID, nil
		}
	}

	store, err := s.stores.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.Unauthorized("not an approved seller")
		}
		return "", fmt.Errorf("resolve seller store: %w", err)
	}
	if !store.IsApproved() {
		return "", apperrors.Unauthorized("not an approved seller")
	}

	// Approved is terminal, so caching the positive result is always safe.
	if s.cache != nil {
		if err := s.cache.SetStoreID(ctx, userID, store.ID); err != nil {
			s.logger.WarnContext(ctx, "seller cache write failed",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	return store.ID, nil
}

// ApplyInput holds the parameters for a store application. The logo is a raw
// image stream; its presence is validated alongside the text fields.
type ApplyInput struct {
	Name        string `validate:"required,max=100"`
	Username    string `validate:"required,min=3,max=40"`
	Description string `validate:"required,max=2000"`
	Email       string `validate:"required,email"`
	Contact     string `validate:"required,max=30"`
	Address     string `validate:"required,max=500"`

	Logo         io.Reader `validate:"-"`
	LogoFileName string    `validate:"-"`
}

// Apply submits a store application. A user who already has a store gets its
// current status back without a duplicate being created, so retries are
// safe; created reports whether this call persisted a new store. The logo is
// uploaded before anything is persisted; if the upload fails no store is
// created.
func (s *SellerService) Apply(ctx context.Context, userID string, input *ApplyInput) (status string, created bool, err error) {
	if userID == "" {
		return "", false, apperrors.Unauthenticated("user identity is required")
	}
	if err := pkgvalidator.Validate(input); err != nil {
		var vErr *pkgvalidator.ValidationError
		if errors.As(err, &vErr) {
			return "", false, apperrors.InvalidInput(vErr.Error())
		}
		return "", false, fmt.Errorf("validate store application: %w", err)
	}
	if input.Logo == nil {
		return "", false, apperrors.InvalidInput("logo image is required")
	}

	// Fast paths; the database constraints remain the real guarantee.
	if existing, err := s.stores.GetByUserID(ctx, userID); err == nil {
		return existing.Status, false, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return "", false, fmt.Errorf("check existing store: %w", err)
	}

	username := strings.ToLower(input.Username)
	taken, err := s.stores.UsernameExists(ctx, username)
	if err != nil {
		return "", false, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return "", false, apperrors.AlreadyExists("store", "username", username)
	}

	uploaded, err := s.uploader.Upload(ctx, &media.UploadInput{
		Data:     input.Logo,
		FileName: input.LogoFileName,
		Folder:   media.FolderLogos,
	})
	if err != nil {
		return "", false, fmt.Errorf("upload store logo: %w", err)
	}

	now := time.Now().UTC()
	store := &domain.Store{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        input.Name,
		Username:    username,
		Description: input.Description,
		Email:       input.Email,
		Contact:     input.Contact,
		Address:     input.Address,
		Logo:        s.uploader.URL(uploaded.FilePath, media.LogoTransform()),
		Status:      domain.StoreStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.stores.Create(ctx, store); err != nil {
		s.cleanupUpload(ctx, uploaded.FilePath)
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			// A concurrent application by the same user won the insert;
			// report its status, same as the fast path above. A username
			// collision has no store for this user and propagates as-is.
			if existing, getErr := s.stores.GetByUserID(ctx, userID); getErr == nil {
				return existing.Status, false, nil
			}
		}
		return "", false, fmt.Errorf("create store: %w", err)
	}

	if err := s.producer.PublishStoreApplied(ctx, store); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish store.applied event",
			slog.String("store_id", store.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "store application submitted",
		slog.String("store_id", store.ID),
		slog.String("username", store.Username),
	)

	return domain.StoreStatusPending, true, nil
}

// Status returns the approval status of the user's store, or the
// "not registered" sentinel if the user never applied.
func (s *SellerService) Status(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("user identity is required")
	}

	store, err := s.stores.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.StoreStatusNotRegistered, nil
		}
		return "", fmt.Errorf("get store status: %w", err)
	}
	return store.Status, nil
}

// Profile returns the full store record for an approved seller.
func (s *SellerService) Profile(ctx context.Context, userID string) (*domain.Store, error) {
	storeID, err := s.ResolveStoreID(ctx, userID)
	if err != nil {
		return nil, err
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("get seller profile: %w", err)
	}
	return store, nil
}

// cleanupUpload removes an orphaned asset after an aborted create. Best
// effort; a leaked asset is preferable to a failed request turning into a
// second failure.
func (s *SellerService) cleanupUpload(ctx context.Context, filePath string) {
	if err := s.uploader.Delete(ctx, filePath); err != nil {
		s.logger.WarnContext(ctx, "failed to delete orphaned asset",
			slog.String("file_path", filePath),
			slog.String("error", err.Error()),
		)
	}
}
