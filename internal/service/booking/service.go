package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/document"
	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/pkg/validation"
	"eventoria/internal/queue"
	"eventoria/internal/repository"
	"eventoria/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, participant *domain.User, input domain.CreateBookingInput) (*domain.BookingRequest, error)
	List(ctx context.Context, user *domain.User, filter domain.BookingFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.BookingRequest], error)
	Get(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.BookingRequest, error)
	UpdateStatus(ctx context.Context, vendor *domain.User, id uuid.UUID, input domain.UpdateBookingStatusInput) (*domain.BookingRequest, error)
	AddMessage(ctx context.Context, sender *domain.User, id uuid.UUID, input domain.AddMessageInput) (*domain.BookingMessage, error)

	Confirm(ctx context.Context, vendor *domain.User, id uuid.UUID) (*domain.ConfirmedEvent, error)
	ListConfirmed(ctx context.Context, user *domain.User) ([]domain.ConfirmedEvent, error)
	GetConfirmed(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.ConfirmedEvent, error)
	ConfirmationDocument(ctx context.Context, user *domain.User, id uuid.UUID) ([]byte, string, error)
}

type service struct {
	repos         *repository.Repositories
	tx            repository.TxManager
	notifications notification.Service
	publisher     queue.Publisher
	validator     *validation.Validator
	renderer      *document.Renderer
	now           func() time.Time
}

func NewService(
	repos *repository.Repositories,
	tx repository.TxManager,
	notifications notification.Service,
	publisher queue.Publisher,
	validator *validation.Validator,
	renderer *document.Renderer,
) Service {
	return &service{
		repos:         repos,
		tx:            tx,
		notifications: notifications,
		publisher:     publisher,
		validator:     validator,
		renderer:      renderer,
		now:           time.Now,
	}
}

// Create validates the contact form before touching storage, so a rejected
// form leaves no trace.
func (s *service) Create(ctx context.Context, participant *domain.User, input domain.CreateBookingInput) (*domain.BookingRequest, error) {
	window, err := s.validator.ContactForm(input.ContactForm)
	if err != nil {
		return nil, err
	}

	listing, err := s.repos.Listing.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil || !listing.IsActive() {
		return nil, domain.ErrNotFound
	}
	if listing.VendorID == participant.ID {
		return nil, domain.ErrForbidden
	}

	b := &domain.BookingRequest{
		ID:               uuid.New(),
		ListingID:        listing.ID,
		ListingName:      listing.Name,
		VendorID:         listing.VendorID,
		ParticipantID:    participant.ID,
		ParticipantName:  participant.FullName,
		ParticipantEmail: participant.Email,
		ParticipantPhone: window.Phone,
		Location:         window.Location,
		StartAt:          window.StartAt,
		EndAt:            window.EndAt,
		Message:          window.Message,
		Status:           domain.BookingPending,
	}

	notif := notification.BookingReceived(b)
	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Booking.Create(ctx, b); err != nil {
			return err
		}
		return s.notifications.Append(ctx, repos, notif)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID.String()).Str("listing_id", listing.ID.String()).Msg("booking request created")
	s.notifications.Push(ctx, notif)
	return b, nil
}

// List returns the caller's inbox: received requests for vendors, sent ones
// for participants and every request for admins.
func (s *service) List(ctx context.Context, user *domain.User, filter domain.BookingFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.BookingRequest], error) {
	params.Validate()

	if filter.Status != nil && !filter.Status.IsValid() {
		var errs domain.FieldErrors
		errs.Add("status", i18n.T("validation.default.oneof"))
		return domain.PaginatedResponse[domain.BookingRequest]{}, errs
	}

	q := repository.BookingQuery{Status: filter.Status}
	switch user.Role {
	case domain.RoleVendor:
		q.VendorID = &user.ID
	case domain.RoleParticipant:
		q.ParticipantID = &user.ID
	}

	bookings, total, err := s.repos.Booking.List(ctx, q, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BookingRequest]{}, err
	}
	return domain.NewPaginatedResponse(bookings, params.Page, params.PageSize, total), nil
}

func (s *service) Get(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.BookingRequest, error) {
	b, err := s.visible(ctx, user, id)
	if err != nil {
		return nil, err
	}

	msgs, err := s.repos.Booking.ListMessages(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.BookingMessage{}
	}
	b.Messages = msgs
	return b, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error) {
	b, err := s.repos.Booking.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *service) visible(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.BookingRequest, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(user.ID) && !user.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

func (s *service) ownedByVendor(ctx context.Context, vendor *domain.User, id uuid.UUID) (*domain.BookingRequest, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.VendorID != vendor.ID {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

// UpdateStatus lets the vendor accept or reject a pending request. The
// participant is notified exactly once per decision.
func (s *service) UpdateStatus(ctx context.Context, vendor *domain.User, id uuid.UUID, input domain.UpdateBookingStatusInput) (*domain.BookingRequest, error) {
	if input.Status != domain.BookingAccepted && input.Status != domain.BookingRejected {
		var errs domain.FieldErrors
		errs.Add("status", i18n.T("validation.default.oneof"))
		return nil, errs
	}

	b, err := s.ownedByVendor(ctx, vendor, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if !from.CanTransitionTo(input.Status) {
		return nil, domain.NewTransitionError(from, input.Status)
	}
	b.Status = input.Status

	notif := notification.BookingDecided(b)
	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Booking.Transition(ctx, b, from); err != nil {
			return err
		}
		return s.notifications.Append(ctx, repos, notif)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("booking_id", b.ID.String()).Str("status", string(b.Status)).Msg("booking status updated")
	s.notifications.Push(ctx, notif)
	return b, nil
}

func (s *service) AddMessage(ctx context.Context, sender *domain.User, id uuid.UUID, input domain.AddMessageInput) (*domain.BookingMessage, error) {
	text, err := s.validator.ThreadMessage(input.Message)
	if err != nil {
		return nil, err
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(sender.ID) {
		return nil, domain.ErrForbidden
	}

	msg := &domain.BookingMessage{
		ID:         uuid.New(),
		BookingID:  b.ID,
		SenderID:   sender.ID,
		SenderName: sender.FullName,
		Body:       text,
	}

	notif := notification.NewMessage(b, sender)
	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Booking.AddMessage(ctx, msg); err != nil {
			return err
		}
		return s.notifications.Append(ctx, repos, notif)
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Push(ctx, notif)
	return msg, nil
}

func isStale(err error) bool {
	return errors.Is(err, domain.ErrStaleState)
}
