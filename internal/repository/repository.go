package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

type Repositories struct {
	User            UserRepository
	Session         SessionRepository
	Category        CategoryRepository
	Listing         ListingRepository
	ApprovalRequest ApprovalRequestRepository
	Booking         BookingRepository
	ConfirmedEvent  ConfirmedEventRepository
	Notification    NotificationRepository
	Favorite        FavoriteRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return newRepositories(db)
}

func newRepositories(db sqlx.ExtContext) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		Session:         NewSessionRepository(db),
		Category:        NewCategoryRepository(db),
		Listing:         NewListingRepository(db),
		ApprovalRequest: NewApprovalRequestRepository(db),
		Booking:         NewBookingRepository(db),
		ConfirmedEvent:  NewConfirmedEventRepository(db),
		Notification:    NewNotificationRepository(db),
		Favorite:        NewFavoriteRepository(db),
	}
}

// TxManager runs a unit of work against repositories bound to one
// transaction. fn returning an error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type txManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(repos *Repositories) error) (err error) {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// PurgeListing removes a listing together with its booking requests,
// confirmed events and favorites. Call it inside WithinTx.
func (r *Repositories) PurgeListing(ctx context.Context, listingID uuid.UUID) error {
	if err := r.Favorite.DeleteByListing(ctx, listingID); err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	if err := r.ConfirmedEvent.DeleteByListing(ctx, listingID); err != nil {
		return fmt.Errorf("delete confirmed events: %w", err)
	}
	if err := r.Booking.DeleteByListing(ctx, listingID); err != nil {
		return fmt.Errorf("delete booking requests: %w", err)
	}
	if err := r.Listing.Delete(ctx, listingID); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// PurgeUser removes a user and everything that references them, as vendor
// or as participant. Call it inside WithinTx.
func (r *Repositories) PurgeUser(ctx context.Context, userID uuid.UUID) error {
	steps := []struct {
		name string
		run  func(context.Context, uuid.UUID) error
	}{
		{"favorites on vendor listings", r.Favorite.DeleteByVendor},
		{"confirmed events", r.ConfirmedEvent.DeleteByUser},
		{"booking requests", r.Booking.DeleteByUser},
		{"listings", r.Listing.DeleteByVendor},
		{"approval requests", r.ApprovalRequest.DeleteByVendor},
		{"notifications", r.Notification.DeleteByUser},
		{"sessions", r.Session.DeleteByUser},
		{"favorites", r.Favorite.DeleteByUser},
	}
	for _, step := range steps {
		if err := step.run(ctx, userID); err != nil {
			return fmt.Errorf("delete %s: %w", step.name, err)
		}
	}
	if err := r.User.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func getOne[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*T, error) {
	var dest T
	err := sqlx.GetContext(ctx, q, &dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dest, nil
}

// affectedOne turns a conditional write that matched nothing into miss.
func affectedOne(res sql.Result, err error, miss error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return miss
	}
	return nil
}

func notFoundOnNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func staleOnNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrStaleState
	}
	return err
}
