package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultServiceType = "Serviciu general"
	UnknownVendorName  = "Furnizor necunoscut"
)

type ConfirmedEvent struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ListingID        uuid.UUID `json:"listing_id" db:"listing_id"`
	BookingRequestID uuid.UUID `json:"booking_request_id" db:"booking_request_id"`
	EventName        string    `json:"event_name" db:"event_name"`
	ParticipantID    uuid.UUID `json:"participant_id" db:"participant_id"`
	ParticipantName  string    `json:"participant_name" db:"participant_name"`
	VendorID         uuid.UUID `json:"vendor_id" db:"vendor_id"`
	VendorName       string    `json:"vendor_name" db:"vendor_name"`
	ServiceType      string    `json:"service_type" db:"service_type"`
	Location         string    `json:"location" db:"location"`
	StartAt          time.Time `json:"start_at" db:"start_at"`
	EndAt            time.Time `json:"end_at" db:"end_at"`
	Price            Price     `json:"price" db:"price"`
	Notes            *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// NewConfirmedEvent denormalises a booking and its listing. The listing may
// be nil when it was removed after the booking was accepted.
func NewConfirmedEvent(b *BookingRequest, l *Listing) *ConfirmedEvent {
	ce := &ConfirmedEvent{
		ID:               uuid.New(),
		ListingID:        b.ListingID,
		BookingRequestID: b.ID,
		EventName:        b.ListingName,
		ParticipantID:    b.ParticipantID,
		ParticipantName:  b.ParticipantName,
		VendorID:         b.VendorID,
		VendorName:       UnknownVendorName,
		ServiceType:      DefaultServiceType,
		Location:         b.Location,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		Price:            DefaultPrice(),
	}
	if b.Message != "" {
		notes := b.Message
		ce.Notes = &notes
	}
	if l == nil {
		return ce
	}
	if l.VendorName != "" {
		ce.VendorName = l.VendorName
	}
	if len(l.Subcategories) > 0 && l.Subcategories[0] != "" {
		ce.ServiceType = l.Subcategories[0]
	}
	if l.Price.Unit.IsValid() {
		ce.Price = l.Price
	}
	return ce
}

func (e *ConfirmedEvent) IsParty(userID uuid.UUID) bool {
	return e.ParticipantID == userID || e.VendorID == userID
}
