package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"eventoria/internal/repository"
)

// Repositories bundles one mock per repository so services that take
// *repository.Repositories can be tested against expectations.
type Repositories struct {
	User            *UserRepository
	Session         *SessionRepository
	Category        *CategoryRepository
	Listing         *ListingRepository
	ApprovalRequest *ApprovalRequestRepository
	Booking         *BookingRepository
	ConfirmedEvent  *ConfirmedEventRepository
	Notification    *NotificationRepository
	Favorite        *FavoriteRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		User:            new(UserRepository),
		Session:         new(SessionRepository),
		Category:        new(CategoryRepository),
		Listing:         new(ListingRepository),
		ApprovalRequest: new(ApprovalRequestRepository),
		Booking:         new(BookingRepository),
		ConfirmedEvent:  new(ConfirmedEventRepository),
		Notification:    new(NotificationRepository),
		Favorite:        new(FavoriteRepository),
	}
}

func (r *Repositories) Repos() *repository.Repositories {
	return &repository.Repositories{
		User:            r.User,
		Session:         r.Session,
		Category:        r.Category,
		Listing:         r.Listing,
		ApprovalRequest: r.ApprovalRequest,
		Booking:         r.Booking,
		ConfirmedEvent:  r.ConfirmedEvent,
		Notification:    r.Notification,
		Favorite:        r.Favorite,
	}
}

type asserter interface {
	AssertExpectations(t mock.TestingT) bool
}

func (r *Repositories) AssertExpectations(t mock.TestingT) {
	for _, m := range []asserter{
		r.User, r.Session, r.Category, r.Listing, r.ApprovalRequest,
		r.Booking, r.ConfirmedEvent, r.Notification, r.Favorite,
	} {
		m.AssertExpectations(t)
	}
}

// TxManager runs fn directly against Repos. There is no rollback, so
// tests assert on which calls happened before the failing one.
type TxManager struct {
	Repos *repository.Repositories
	Calls int
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	m.Calls++
	return fn(m.Repos)
}
