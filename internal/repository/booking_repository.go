package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

// BookingQuery selects one side of the inbox: vendors see received
// requests, participants see the ones they sent.
type BookingQuery struct {
	VendorID      *uuid.UUID
	ParticipantID *uuid.UUID
	Status        *domain.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.BookingRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error)
	List(ctx context.Context, q BookingQuery, params domain.PaginationParams) ([]domain.BookingRequest, int64, error)
	Transition(ctx context.Context, booking *domain.BookingRequest, from domain.BookingStatus) error
	AddMessage(ctx context.Context, msg *domain.BookingMessage) error
	ListMessages(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingMessage, error)
	DeleteByListing(ctx context.Context, listingID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type bookingRepository struct {
	db sqlx.ExtContext
}

func NewBookingRepository(db sqlx.ExtContext) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.BookingRequest) error {
	query := `
		INSERT INTO booking_requests (id, listing_id, listing_name, vendor_id, participant_id, participant_name,
			participant_email, participant_phone, location, start_at, end_at, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		b.ID, b.ListingID, b.ListingName, b.VendorID, b.ParticipantID, b.ParticipantName,
		b.ParticipantEmail, b.ParticipantPhone, b.Location, b.StartAt, b.EndAt, b.Message, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error) {
	return getOne[domain.BookingRequest](ctx, r.db, `SELECT * FROM booking_requests WHERE id = $1`, id)
}

func (r *bookingRepository) List(ctx context.Context, q BookingQuery, params domain.PaginationParams) ([]domain.BookingRequest, int64, error) {
	params.Validate()

	where := "TRUE"
	var args []any
	if q.VendorID != nil {
		args = append(args, *q.VendorID)
		where += fmt.Sprintf(" AND vendor_id = $%d", len(args))
	}
	if q.ParticipantID != nil {
		args = append(args, *q.ParticipantID)
		where += fmt.Sprintf(" AND participant_id = $%d", len(args))
	}
	if q.Status != nil {
		args = append(args, *q.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM booking_requests WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM booking_requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	var bookings []domain.BookingRequest
	err := sqlx.SelectContext(ctx, r.db, &bookings, query, append(args, params.PageSize, params.Offset())...)
	return bookings, total, err
}

// Transition writes booking.Status and ConfirmedEventID only if the stored
// status still equals from.
func (r *bookingRepository) Transition(ctx context.Context, b *domain.BookingRequest, from domain.BookingStatus) error {
	query := `
		UPDATE booking_requests
		SET status = $3, confirmed_event_id = COALESCE($4, confirmed_event_id), updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, b.ID, from, b.Status, b.ConfirmedEventID).Scan(&b.UpdatedAt)
	return staleOnNoRows(err)
}

func (r *bookingRepository) AddMessage(ctx context.Context, msg *domain.BookingMessage) error {
	query := `
		INSERT INTO booking_messages (id, booking_id, sender_id, sender_name, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.BookingID, msg.SenderID, msg.SenderName, msg.Body,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `UPDATE booking_requests SET updated_at = NOW() WHERE id = $1`, msg.BookingID)
	return err
}

func (r *bookingRepository) ListMessages(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingMessage, error) {
	var msgs []domain.BookingMessage
	query := `SELECT * FROM booking_messages WHERE booking_id = $1 ORDER BY created_at ASC, id ASC`
	err := sqlx.SelectContext(ctx, r.db, &msgs, query, bookingID)
	return msgs, err
}

func (r *bookingRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM booking_requests WHERE listing_id = $1`, listingID)
	return err
}

func (r *bookingRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM booking_requests WHERE vendor_id = $1 OR participant_id = $1`, userID)
	return err
}
