// Package queue carries domain events over RabbitMQ.
package queue

import (
	"time"

	"eventoria/internal/domain"
)

const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published once per confirmed event. It holds what
// the consumers need to mail both parties without reading the database.
type BookingConfirmedEvent struct {
	Event            domain.ConfirmedEvent `json:"event"`
	ParticipantEmail string                `json:"participant_email"`
	VendorEmail      string                `json:"vendor_email"`
	ConfirmedAt      time.Time             `json:"confirmed_at"`
}

// Handler processes a decoded BookingConfirmedEvent.
type Handler interface {
	HandleBookingConfirmed(ev BookingConfirmedEvent) error
}
