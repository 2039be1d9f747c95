package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

// ListingQuery narrows listings in SQL. Text search, price range and
// ordering are applied afterwards in memory.
type ListingQuery struct {
	ActiveOnly  bool
	CategoryID  string
	Subcategory string
	Tag         string
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Find(ctx context.Context, q ListingQuery) ([]domain.Listing, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.Listing, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Listing, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error
}

type listingRepository struct {
	db sqlx.ExtContext
}

func NewListingRepository(db sqlx.ExtContext) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, approval_request_id, vendor_id, vendor_name, vendor_phone, vendor_email,
			name, description, category_id, subcategories, tags, price, locations, available_date,
			image_url, rating, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.ApprovalRequestID, listing.VendorID, listing.VendorName, listing.VendorPhone, listing.VendorEmail,
		listing.Name, listing.Description, listing.CategoryID, listing.Subcategories, listing.Tags, listing.Price,
		listing.Locations, listing.AvailableDate, listing.ImageURL, listing.Rating, listing.Status,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return getOne[domain.Listing](ctx, r.db, `SELECT * FROM listings WHERE id = $1`, id)
}

func (r *listingRepository) Find(ctx context.Context, q ListingQuery) ([]domain.Listing, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.ActiveOnly {
		add("status = $%d", domain.ListingActive)
	}
	if q.CategoryID != "" {
		add("category_id = $%d", q.CategoryID)
	}
	if q.Subcategory != "" {
		add("$%d = ANY(subcategories)", q.Subcategory)
	}
	if q.Tag != "" {
		add("$%d = ANY(tags)", q.Tag)
	}

	query := `SELECT * FROM listings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	var listings []domain.Listing
	err := sqlx.SelectContext(ctx, r.db, &listings, query, args...)
	return listings, err
}

func (r *listingRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.Listing, error) {
	var listings []domain.Listing
	query := `SELECT * FROM listings WHERE vendor_id = $1 ORDER BY created_at DESC`
	err := sqlx.SelectContext(ctx, r.db, &listings, query, vendorID)
	return listings, err
}

func (r *listingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := sqlx.SelectContext(ctx, r.db, &listings, `SELECT * FROM listings ORDER BY created_at DESC LIMIT $1`, limit)
	return listings, err
}

func (r *listingRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM listings WHERE status = $1`, domain.ListingActive)
	return count, err
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings
		SET name = $2, description = $3, price = $4, locations = $5, available_date = $6,
			status = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.Name, listing.Description, listing.Price, listing.Locations, listing.AvailableDate, listing.Status,
	).Scan(&updatedAt)
	if err != nil {
		return notFoundOnNoRows(err)
	}
	listing.UpdatedAt = updatedAt
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	return affectedOne(res, err, domain.ErrNotFound)
}

func (r *listingRepository) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE vendor_id = $1`, vendorID)
	return err
}
