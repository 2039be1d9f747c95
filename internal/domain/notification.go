package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one entry in a user's bounded, seq-ordered log.
type Notification struct {
	Seq              int64            `json:"seq" db:"seq"`
	ID               uuid.UUID        `json:"id" db:"id"`
	UserID           uuid.UUID        `json:"user_id" db:"user_id"`
	Type             NotificationType `json:"type" db:"type"`
	Message          string           `json:"message" db:"message"`
	EventName        *string          `json:"event_name,omitempty" db:"event_name"`
	RequestID        *uuid.UUID       `json:"request_id,omitempty" db:"request_id"`
	ListingID        *uuid.UUID       `json:"listing_id,omitempty" db:"listing_id"`
	ConfirmedEventID *uuid.UUID       `json:"confirmed_event_id,omitempty" db:"confirmed_event_id"`
	IsRead           bool             `json:"read" db:"is_read"`
	ReadAt           *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifServiceApproved NotificationType = "service_approved"
	NotifServiceRejected NotificationType = "service_rejected"
	NotifRequestReceived NotificationType = "request_received"
	NotifBookingReceived NotificationType = "booking_received"
	NotifRequestAccepted NotificationType = "request_accepted"
	NotifRequestRejected NotificationType = "request_rejected"
	NotifEventConfirmed  NotificationType = "event_confirmed"
	NotifNewMessage      NotificationType = "new_message"
)

type AcknowledgeInput struct {
	UpToSeq int64 `json:"up_to_seq"`
}
