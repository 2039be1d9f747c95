package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingRequest is a participant inquiry to a vendor about one listing.
type BookingRequest struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	ListingID        uuid.UUID     `json:"listing_id" db:"listing_id"`
	ListingName      string        `json:"listing_name" db:"listing_name"`
	VendorID         uuid.UUID     `json:"vendor_id" db:"vendor_id"`
	ParticipantID    uuid.UUID     `json:"participant_id" db:"participant_id"`
	ParticipantName  string        `json:"participant_name" db:"participant_name"`
	ParticipantEmail string        `json:"participant_email" db:"participant_email"`
	ParticipantPhone string        `json:"participant_phone" db:"participant_phone"`
	Location         string        `json:"location" db:"location"`
	StartAt          time.Time     `json:"start_at" db:"start_at"`
	EndAt            time.Time     `json:"end_at" db:"end_at"`
	Message          string        `json:"message" db:"message"`
	Status           BookingStatus `json:"status" db:"status"`
	ConfirmedEventID *uuid.UUID    `json:"confirmed_event_id,omitempty" db:"confirmed_event_id"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`

	Messages []BookingMessage `json:"messages,omitempty" db:"-"`
}

func (b *BookingRequest) IsParty(userID uuid.UUID) bool {
	return b.ParticipantID == userID || b.VendorID == userID
}

// Counterpart returns the other side of the conversation.
func (b *BookingRequest) Counterpart(userID uuid.UUID) uuid.UUID {
	if userID == b.VendorID {
		return b.ParticipantID
	}
	return b.VendorID
}

type BookingMessage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BookingID  uuid.UUID `json:"booking_id" db:"booking_id"`
	SenderID   uuid.UUID `json:"sender_id" db:"sender_id"`
	SenderName string    `json:"sender_name" db:"sender_name"`
	Body       string    `json:"message" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ContactForm carries the raw form fields; dates are YYYY-MM-DD and times HH:MM.
type ContactForm struct {
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
	Message   string `json:"message"`
}

type CreateBookingInput struct {
	ListingID uuid.UUID `json:"listing_id"`
	ContactForm
}

type UpdateBookingStatusInput struct {
	Status BookingStatus `json:"status"`
}

type AddMessageInput struct {
	Message string `json:"message"`
}

type BookingFilter struct {
	Status *BookingStatus
}
