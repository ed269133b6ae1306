package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bloodwraith8851/gocart/internal/domain"
	"github.com/bloodwraith8851/gocart/internal/repository"
	"github.com/bloodwraith8851/gocart/pkg/database"
	apperrors "github.com/bloodwraith8851/gocart/pkg/errors"
)

// StoreRepository implements repository.StoreRepository using PostgreSQL.
type StoreRepository struct {
	db repository.DB
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(db repository.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

const storeColumns = `id, user_id, name, username, description, email, contact, address, logo, status, created_at, updated_at`

// Create inserts a new store. The unique constraints on user_id and username
// are the actual guarantee against duplicate stores; any application-level
// pre-check only narrows the race window.
func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) (err error) {
	query := `
		INSERT INTO stores (id, user_id, name, username, description, email, contact, address, logo, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	ctx, end := database.TraceQuery(ctx, "CreateStore", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.Name,
		s.Username,
		s.Description,
		s.Email,
		s.Contact,
		s.Address,
		s.Logo,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "username") {
				return apperrors.AlreadyExists("store", "username", s.Username)
			}
			return apperrors.AlreadyExists("store", "user_id", s.UserID)
		}
		return fmt.Errorf("insert store: %w", err)
	}

	return nil
}

// GetByID retrieves a store by its ID.
func (r *StoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return r.scanStore(ctx, "GetStoreByID", query, id)
}

// GetByUserID retrieves the store owned by the given user.
func (r *StoreRepository) GetByUserID(ctx context.Context, userID string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE user_id = $1`
	return r.scanStore(ctx, "GetStoreByUserID", query, userID)
}

// UsernameExists reports whether any store claimed the username. The column
// stores lowercased values, so comparison against the lowercased input is
// case-insensitive.
func (r *StoreRepository) UsernameExists(ctx context.Context, username string) (exists bool, err error) {
	query := `SELECT EXISTS(SELECT 1 FROM stores WHERE username = $1)`

	ctx, end := database.TraceQuery(ctx, "StoreUsernameExists", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query, strings.ToLower(username)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// UpdateStatus decides a pending store application. The WHERE clause pins the
// current status to pending, so approved and rejected stay terminal even
// under concurrent decisions.
func (r *StoreRepository) UpdateStatus(ctx context.Context, id, status string) (err error) {
	query := `
		UPDATE stores
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`

	ctx, end := database.TraceQuery(ctx, "UpdateStoreStatus", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, status, time.Now().UTC(), id, domain.StoreStatusPending)
	if err != nil {
		return fmt.Errorf("update store status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		// Either the store does not exist or it was already decided.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.Conflict("store application is already decided")
	}

	return nil
}

// scanStore executes a query expected to return a single store row.
func (r *StoreRepository) scanStore(ctx context.Context, operation, query string, args ...any) (store *domain.Store, err error) {
	ctx, end := database.TraceQuery(ctx, operation, query)
	defer func() { end(err) }()

	var s domain.Store
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.Username,
		&s.Description,
		&s.Email,
		&s.Contact,
		&s.Address,
		&s.Logo,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan store: %w", err)
	}

	return &s, nil
}

// uniqueViolation reports whether the error is a PostgreSQL unique constraint
// violation (SQLSTATE 23505) and returns the violated constraint name.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
