package queue

import (
	"context"
	"errors"
	"time"

	"eventoria/internal/domain"
)

type ConfirmationMailer interface {
	SendEventConfirmedEmail(ctx context.Context, toEmail, recipientName string, event *domain.ConfirmedEvent) error
}

// MailHandler emails both parties of a confirmed event.
type MailHandler struct {
	mailer  ConfirmationMailer
	timeout time.Duration
}

func NewMailHandler(mailer ConfirmationMailer) *MailHandler {
	return &MailHandler{mailer: mailer, timeout: 30 * time.Second}
}

func (h *MailHandler) HandleBookingConfirmed(ev BookingConfirmedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	var errs []error
	if ev.ParticipantEmail != "" {
		errs = append(errs, h.mailer.SendEventConfirmedEmail(ctx, ev.ParticipantEmail, ev.Event.ParticipantName, &ev.Event))
	}
	if ev.VendorEmail != "" {
		errs = append(errs, h.mailer.SendEventConfirmedEmail(ctx, ev.VendorEmail, ev.Event.VendorName, &ev.Event))
	}
	return errors.Join(errs...)
}
