package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/document"
	"eventoria/internal/domain"
	"eventoria/internal/queue"
	"eventoria/internal/repository"
	"eventoria/internal/service/notification"
)

// Confirm turns an accepted request into a confirmed event. Repeated calls,
// including concurrent ones, return the same event and notify only once.
func (s *service) Confirm(ctx context.Context, vendor *domain.User, id uuid.UUID) (*domain.ConfirmedEvent, error) {
	b, err := s.ownedByVendor(ctx, vendor, id)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingConfirmed:
		return s.existingEvent(ctx, b.ID)
	case domain.BookingAccepted:
	default:
		return nil, domain.NewTransitionError(b.Status, domain.BookingConfirmed)
	}

	listing, err := s.repos.Listing.GetByID(ctx, b.ListingID)
	if err != nil {
		return nil, err
	}

	event := domain.NewConfirmedEvent(b, listing)
	notif := notification.EventConfirmed(b, event)
	created := false

	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		inserted, err := repos.ConfirmedEvent.CreateIfAbsent(ctx, event)
		if err != nil || !inserted {
			return err
		}

		b.Status = domain.BookingConfirmed
		b.ConfirmedEventID = &event.ID
		if err := repos.Booking.Transition(ctx, b, domain.BookingAccepted); err != nil {
			return err
		}
		if err := s.notifications.Append(ctx, repos, notif); err != nil {
			return err
		}
		created = true
		return nil
	})
	if isStale(err) {
		return s.existingEvent(ctx, b.ID)
	}
	if err != nil {
		return nil, err
	}
	if !created {
		return s.existingEvent(ctx, b.ID)
	}

	log.Info().Str("booking_id", b.ID.String()).Str("confirmed_event_id", event.ID.String()).Msg("event confirmed")
	s.notifications.Push(ctx, notif)

	ev := queue.BookingConfirmedEvent{
		Event:            *event,
		ParticipantEmail: b.ParticipantEmail,
		VendorEmail:      vendor.Email,
		ConfirmedAt:      s.now().UTC(),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Error().Err(err).Str("confirmed_event_id", event.ID.String()).Msg("failed to publish booking confirmed event")
	}

	return event, nil
}

func (s *service) existingEvent(ctx context.Context, bookingID uuid.UUID) (*domain.ConfirmedEvent, error) {
	event, err := s.repos.ConfirmedEvent.GetByBookingRequest(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrStaleState
	}
	return event, nil
}

func (s *service) ListConfirmed(ctx context.Context, user *domain.User) ([]domain.ConfirmedEvent, error) {
	events, err := s.repos.ConfirmedEvent.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.ConfirmedEvent{}
	}
	return events, nil
}

func (s *service) GetConfirmed(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.ConfirmedEvent, error) {
	event, err := s.repos.ConfirmedEvent.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if !event.IsParty(user.ID) && !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// ConfirmationDocument renders the PDF handed to the vendor on the day.
func (s *service) ConfirmationDocument(ctx context.Context, user *domain.User, id uuid.UUID) ([]byte, string, error) {
	event, err := s.GetConfirmed(ctx, user, id)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Confirmation(event)
	if err != nil {
		return nil, "", err
	}
	return pdf, document.FileName(event), nil
}
