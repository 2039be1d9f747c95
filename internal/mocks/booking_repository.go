package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"eventoria/internal/domain"
	"eventoria/internal/repository"
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.BookingRequest) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

func (m *BookingRepository) List(ctx context.Context, q repository.BookingQuery, params domain.PaginationParams) ([]domain.BookingRequest, int64, error) {
	args := m.Called(ctx, q, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.BookingRequest), args.Get(1).(int64), args.Error(2)
}

func (m *BookingRepository) Transition(ctx context.Context, booking *domain.BookingRequest, from domain.BookingStatus) error {
	args := m.Called(ctx, booking, from)
	return args.Error(0)
}

func (m *BookingRepository) AddMessage(ctx context.Context, msg *domain.BookingMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *BookingRepository) ListMessages(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingMessage, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingMessage), args.Error(1)
}

func (m *BookingRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *BookingRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
