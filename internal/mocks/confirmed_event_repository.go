package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"eventoria/internal/domain"
)

type ConfirmedEventRepository struct {
	mock.Mock
}

func (m *ConfirmedEventRepository) CreateIfAbsent(ctx context.Context, event *domain.ConfirmedEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *ConfirmedEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ConfirmedEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmedEvent), args.Error(1)
}

func (m *ConfirmedEventRepository) GetByBookingRequest(ctx context.Context, bookingID uuid.UUID) (*domain.ConfirmedEvent, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmedEvent), args.Error(1)
}

func (m *ConfirmedEventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ConfirmedEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConfirmedEvent), args.Error(1)
}

func (m *ConfirmedEventRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *ConfirmedEventRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
