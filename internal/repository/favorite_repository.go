package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByListing(ctx context.Context, listingID uuid.UUID) error
	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type favoriteRepository struct {
	db sqlx.ExtContext
}

func NewFavoriteRepository(db sqlx.ExtContext) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	query := `
		INSERT INTO favorites (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, listingID)
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	return err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT listing_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`
	err := sqlx.SelectContext(ctx, r.db, &ids, query, userID)
	return ids, err
}

func (r *favoriteRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE listing_id = $1`, listingID)
	return err
}

// DeleteByVendor removes every favorite that points at one of the vendor's listings.
func (r *favoriteRepository) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE listing_id IN (SELECT id FROM listings WHERE vendor_id = $1)`
	_, err := r.db.ExecContext(ctx, query, vendorID)
	return err
}

func (r *favoriteRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID)
	return err
}
