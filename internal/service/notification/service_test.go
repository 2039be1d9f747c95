package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventoria/internal/domain"
	"eventoria/internal/mocks"
	"eventoria/internal/realtime"
)

func TestService_Append_UsesConfiguredBound(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewService(repos.Repos(), nil, 50)
	ctx := context.Background()

	n := &domain.Notification{ID: uuid.New(), UserID: uuid.New()}
	repos.Notification.On("Append", ctx, n, 50).Return(nil).Once()

	assert.NoError(t, svc.Append(ctx, repos.Repos(), n))
	repos.AssertExpectations(t)
}

func TestService_Push_SendsCountersOncePerRecipient(t *testing.T) {
	repos := mocks.NewRepositories()
	pub := mocks.NewRealtimePublisher()
	svc := NewService(repos.Repos(), pub, 50)
	ctx := context.Background()

	vendorID := uuid.New()
	repos.Notification.On("CountUnread", ctx, vendorID).Return(int64(2), nil).Once()
	repos.User.On("GetByID", ctx, vendorID).Return(&domain.User{ID: vendorID, Role: domain.RoleVendor}, nil).Once()

	svc.Push(ctx,
		&domain.Notification{UserID: vendorID},
		nil,
		&domain.Notification{UserID: vendorID},
	)

	assert.Equal(t, []string{
		realtime.TypeNotification,
		realtime.TypeNotification,
		realtime.TypeCounters,
	}, pub.Types(vendorID))

	counters := pub.Sent[vendorID][2].Data.(domain.SessionCounters)
	assert.Equal(t, int64(2), counters.UnreadNotifications)
	assert.Nil(t, counters.PendingApprovalRequests)
	repos.AssertExpectations(t)
}

func TestService_Counters_AdminSeesPendingRequests(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewService(repos.Repos(), nil, 50)
	ctx := context.Background()

	adminID := uuid.New()
	repos.Notification.On("CountUnread", ctx, adminID).Return(int64(0), nil).Once()
	repos.User.On("GetByID", ctx, adminID).Return(&domain.User{ID: adminID, Role: domain.RoleAdmin}, nil).Once()
	repos.ApprovalRequest.On("CountByStatus", ctx, domain.ApprovalPending).Return(int64(3), nil).Once()

	counters, err := svc.Counters(ctx, adminID)

	assert.NoError(t, err)
	if assert.NotNil(t, counters.PendingApprovalRequests) {
		assert.Equal(t, int64(3), *counters.PendingApprovalRequests)
	}
	repos.AssertExpectations(t)
}

func TestService_Acknowledge_ClampsNegativeSeq(t *testing.T) {
	repos := mocks.NewRepositories()
	pub := mocks.NewRealtimePublisher()
	svc := NewService(repos.Repos(), pub, 50)
	ctx := context.Background()

	userID := uuid.New()
	repos.Notification.On("Acknowledge", ctx, userID, int64(0)).Return(nil).Once()
	repos.Notification.On("CountUnread", ctx, userID).Return(int64(0), nil).Once()
	repos.User.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Role: domain.RoleParticipant}, nil).Once()

	assert.NoError(t, svc.Acknowledge(ctx, userID, -5))
	assert.Equal(t, []string{realtime.TypeCounters}, pub.Types(userID))
	repos.AssertExpectations(t)
}

func TestService_MarkAsRead_ErrorSkipsPush(t *testing.T) {
	repos := mocks.NewRepositories()
	pub := mocks.NewRealtimePublisher()
	svc := NewService(repos.Repos(), pub, 50)
	ctx := context.Background()

	userID, id := uuid.New(), uuid.New()
	repos.Notification.On("MarkAsRead", ctx, id, userID).Return(domain.ErrNotFound).Once()

	err := svc.MarkAsRead(ctx, userID, id)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, pub.Types(userID))
	repos.Notification.AssertNotCalled(t, "CountUnread", mock.Anything, mock.Anything)
}

func TestService_CloseSessions(t *testing.T) {
	repos := mocks.NewRepositories()
	pub := mocks.NewRealtimePublisher()
	svc := NewService(repos.Repos(), pub, 50)

	userID := uuid.New()
	svc.CloseSessions(context.Background(), userID)

	assert.Equal(t, []string{realtime.TypeSessionClosed}, pub.Types(userID))
}
