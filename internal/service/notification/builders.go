package notification

import (
	"github.com/google/uuid"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
)

func newNotification(userID uuid.UUID, typ domain.NotificationType, message string) *domain.Notification {
	return &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		Message: message,
	}
}

func withFeedback(msg string, feedback *string) string {
	if feedback == nil || *feedback == "" {
		return msg
	}
	return msg + ": " + *feedback
}

// ServiceReviewed tells the vendor how an approval request was decided.
func ServiceReviewed(req *domain.ApprovalRequest, listingID *uuid.UUID) *domain.Notification {
	typ := domain.NotifServiceRejected
	if req.Status == domain.ApprovalApproved {
		typ = domain.NotifServiceApproved
	}
	msg := withFeedback(i18n.T("notifications."+string(typ), req.Service.Name), req.AdminFeedback)

	n := newNotification(req.VendorID, typ, msg)
	name := req.Service.Name
	requestID := req.ID
	n.EventName = &name
	n.RequestID = &requestID
	n.ListingID = listingID
	return n
}

// RequestReceived alerts one admin about a new approval request.
func RequestReceived(adminID uuid.UUID, req *domain.ApprovalRequest) *domain.Notification {
	n := newNotification(adminID, domain.NotifRequestReceived, i18n.T("notifications.request_received", req.Service.Name))
	name := req.Service.Name
	requestID := req.ID
	n.EventName = &name
	n.RequestID = &requestID
	return n
}

func BookingReceived(b *domain.BookingRequest) *domain.Notification {
	n := newNotification(b.VendorID, domain.NotifBookingReceived,
		i18n.T("notifications.booking_received", b.ParticipantName, b.ListingName))
	return withBooking(n, b)
}

// BookingDecided tells the participant the vendor accepted or rejected.
func BookingDecided(b *domain.BookingRequest) *domain.Notification {
	typ := domain.NotifRequestRejected
	if b.Status == domain.BookingAccepted {
		typ = domain.NotifRequestAccepted
	}
	n := newNotification(b.ParticipantID, typ, i18n.T("notifications."+string(typ), b.ListingName))
	return withBooking(n, b)
}

func EventConfirmed(b *domain.BookingRequest, e *domain.ConfirmedEvent) *domain.Notification {
	n := newNotification(b.ParticipantID, domain.NotifEventConfirmed, i18n.T("notifications.event_confirmed", b.ListingName))
	eventID := e.ID
	n.ConfirmedEventID = &eventID
	return withBooking(n, b)
}

// NewMessage notifies the other party of a booking conversation.
func NewMessage(b *domain.BookingRequest, sender *domain.User) *domain.Notification {
	n := newNotification(b.Counterpart(sender.ID), domain.NotifNewMessage,
		i18n.T("notifications.new_message", sender.FullName, b.ListingName))
	return withBooking(n, b)
}

func withBooking(n *domain.Notification, b *domain.BookingRequest) *domain.Notification {
	name := b.ListingName
	requestID := b.ID
	listingID := b.ListingID
	n.EventName = &name
	n.RequestID = &requestID
	n.ListingID = &listingID
	return n
}
