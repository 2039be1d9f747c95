package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

type ConfirmedEventRepository interface {
	CreateIfAbsent(ctx context.Context, event *domain.ConfirmedEvent) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ConfirmedEvent, error)
	GetByBookingRequest(ctx context.Context, bookingID uuid.UUID) (*domain.ConfirmedEvent, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ConfirmedEvent, error)
	DeleteByListing(ctx context.Context, listingID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type confirmedEventRepository struct {
	db sqlx.ExtContext
}

func NewConfirmedEventRepository(db sqlx.ExtContext) ConfirmedEventRepository {
	return &confirmedEventRepository{db: db}
}

// CreateIfAbsent inserts event unless one already exists for its booking
// request. It reports whether this call created the row.
func (r *confirmedEventRepository) CreateIfAbsent(ctx context.Context, e *domain.ConfirmedEvent) (bool, error) {
	query := `
		INSERT INTO confirmed_events (id, listing_id, booking_request_id, event_name, participant_id, participant_name,
			vendor_id, vendor_name, service_type, location, start_at, end_at, price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (booking_request_id) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		e.ID, e.ListingID, e.BookingRequestID, e.EventName, e.ParticipantID, e.ParticipantName,
		e.VendorID, e.VendorName, e.ServiceType, e.Location, e.StartAt, e.EndAt, e.Price, e.Notes,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *confirmedEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ConfirmedEvent, error) {
	return getOne[domain.ConfirmedEvent](ctx, r.db, `SELECT * FROM confirmed_events WHERE id = $1`, id)
}

func (r *confirmedEventRepository) GetByBookingRequest(ctx context.Context, bookingID uuid.UUID) (*domain.ConfirmedEvent, error) {
	return getOne[domain.ConfirmedEvent](ctx, r.db, `SELECT * FROM confirmed_events WHERE booking_request_id = $1`, bookingID)
}

func (r *confirmedEventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ConfirmedEvent, error) {
	var events []domain.ConfirmedEvent
	query := `
		SELECT * FROM confirmed_events
		WHERE participant_id = $1 OR vendor_id = $1
		ORDER BY start_at ASC`
	err := sqlx.SelectContext(ctx, r.db, &events, query, userID)
	return events, err
}

func (r *confirmedEventRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM confirmed_events WHERE listing_id = $1`, listingID)
	return err
}

func (r *confirmedEventRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM confirmed_events WHERE vendor_id = $1 OR participant_id = $1`, userID)
	return err
}
