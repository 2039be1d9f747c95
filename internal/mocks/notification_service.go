package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"eventoria/internal/domain"
	"eventoria/internal/repository"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Append(ctx context.Context, repos *repository.Repositories, n *domain.Notification) error {
	args := m.Called(ctx, repos, n)
	return args.Error(0)
}

func (m *NotificationService) Push(ctx context.Context, notifs ...*domain.Notification) {
	m.Called(ctx, notifs)
}

func (m *NotificationService) PushCounters(ctx context.Context, userIDs ...uuid.UUID) {
	m.Called(ctx, userIDs)
}

func (m *NotificationService) PushToAdmins(ctx context.Context) {
	m.Called(ctx)
}

func (m *NotificationService) CloseSessions(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) Counters(ctx context.Context, userID uuid.UUID) (domain.SessionCounters, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.SessionCounters), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) Acknowledge(ctx context.Context, userID uuid.UUID, upToSeq int64) error {
	args := m.Called(ctx, userID, upToSeq)
	return args.Error(0)
}
