package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
	"eventoria/internal/mocks"
)

func TestRecentActivity_MergesNewestFirstAndCaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var users []domain.User
	var listings []domain.Listing
	for i := 0; i < 5; i++ {
		users = append(users, domain.User{FullName: "Ana Pop", Role: domain.RoleVendor, CreatedAt: base.Add(time.Duration(2*i) * time.Hour)})
		listings = append(listings, domain.Listing{Name: "DJ Alex Beats", CreatedAt: base.Add(time.Duration(2*i+1) * time.Hour)})
	}

	items := RecentActivity(users, listings, 10)

	require.Len(t, items, 10)
	assert.Equal(t, domain.ActivityServiceAdded, items[0].Kind)
	assert.Equal(t, base.Add(9*time.Hour), items[0].Timestamp)
	assert.Equal(t, domain.ActivityUserRegistered, items[1].Kind)
	assert.Equal(t, "Ana Pop s-a înregistrat ca furnizor", items[1].Message)
	assert.Equal(t, `Serviciu nou adăugat: "DJ Alex Beats"`, items[0].Message)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Timestamp.After(items[i-1].Timestamp))
	}

	assert.Len(t, RecentActivity(users, listings, 3), 3)
	assert.Empty(t, RecentActivity(nil, nil, 10))
}

func TestDashboard_Metrics(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil).(*service)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	repos.ApprovalRequest.On("CountByStatus", ctx, domain.ApprovalPending).Return(int64(4), nil).Once()
	repos.User.On("CountCreatedSince", ctx, now.Add(-7*24*time.Hour)).Return(int64(2), nil).Once()
	repos.Listing.On("CountActive", ctx).Return(int64(12), nil).Once()
	repos.User.On("CountByRole", ctx, domain.RoleVendor).Return(int64(6), nil).Once()
	repos.User.On("ListRecent", ctx, 5).Return([]domain.User{}, nil).Once()
	repos.Listing.On("ListRecent", ctx, 5).Return([]domain.Listing{}, nil).Once()

	d, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.DashboardMetrics{PendingRequests: 4, NewUsers: 2, ActiveServices: 12, TotalVendors: 6}, d.Metrics)
	assert.Empty(t, d.RecentActivity)
	repos.AssertExpectations(t)
}

func TestDeleteVendor_CascadesInOneTransaction(t *testing.T) {
	repos := mocks.NewRepositories()
	tx := &mocks.TxManager{Repos: repos.Repos()}
	notifs := new(mocks.NotificationService)
	svc := NewService(repos.Repos(), tx, notifs, nil)
	ctx := context.Background()
	vendorID := uuid.New()

	repos.User.On("GetByID", ctx, vendorID).Return(&domain.User{ID: vendorID, Role: domain.RoleVendor}, nil).Once()
	repos.Favorite.On("DeleteByVendor", ctx, vendorID).Return(nil).Once()
	repos.ConfirmedEvent.On("DeleteByUser", ctx, vendorID).Return(nil).Once()
	repos.Booking.On("DeleteByUser", ctx, vendorID).Return(nil).Once()
	repos.Listing.On("DeleteByVendor", ctx, vendorID).Return(nil).Once()
	repos.ApprovalRequest.On("DeleteByVendor", ctx, vendorID).Return(nil).Once()
	repos.Notification.On("DeleteByUser", ctx, vendorID).Return(nil).Once()
	repos.Session.On("DeleteByUser", ctx, vendorID).Return(nil).Once()
	repos.Favorite.On("DeleteByUser", ctx, vendorID).Return(nil).Once()
	repos.User.On("Delete", ctx, vendorID).Return(nil).Once()
	notifs.On("CloseSessions", ctx, vendorID).Once()
	notifs.On("PushToAdmins", ctx).Once()

	require.NoError(t, svc.DeleteVendor(ctx, vendorID))

	assert.Equal(t, 1, tx.Calls)
	repos.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestDeleteVendor_StopsAtFirstFailure(t *testing.T) {
	repos := mocks.NewRepositories()
	notifs := new(mocks.NotificationService)
	svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, notifs, nil)
	ctx := context.Background()
	vendorID := uuid.New()
	boom := errors.New("db down")

	repos.User.On("GetByID", ctx, vendorID).Return(&domain.User{ID: vendorID, Role: domain.RoleVendor}, nil).Once()
	repos.Favorite.On("DeleteByVendor", ctx, vendorID).Return(nil).Once()
	repos.ConfirmedEvent.On("DeleteByUser", ctx, vendorID).Return(boom).Once()

	err := svc.DeleteVendor(ctx, vendorID)

	assert.ErrorIs(t, err, boom)
	repos.Listing.AssertNotCalled(t, "DeleteByVendor", mock.Anything, mock.Anything)
	repos.User.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	notifs.AssertNotCalled(t, "CloseSessions", mock.Anything, mock.Anything)
}

func TestDeleteVendor_Guards(t *testing.T) {
	repos := mocks.NewRepositories()
	tx := &mocks.TxManager{Repos: repos.Repos()}
	svc := NewService(repos.Repos(), tx, new(mocks.NotificationService), nil)
	ctx := context.Background()

	missing := uuid.New()
	repos.User.On("GetByID", ctx, missing).Return(nil, nil).Once()
	assert.ErrorIs(t, svc.DeleteVendor(ctx, missing), domain.ErrNotFound)

	adminID := uuid.New()
	repos.User.On("GetByID", ctx, adminID).Return(&domain.User{ID: adminID, Role: domain.RoleAdmin}, nil).Once()
	assert.ErrorIs(t, svc.DeleteVendor(ctx, adminID), domain.ErrForbidden)

	assert.Equal(t, 0, tx.Calls)
}

func TestDeleteListing_Purges(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil)
	ctx := context.Background()
	id := uuid.New()

	repos.Favorite.On("DeleteByListing", ctx, id).Return(nil).Once()
	repos.ConfirmedEvent.On("DeleteByListing", ctx, id).Return(nil).Once()
	repos.Booking.On("DeleteByListing", ctx, id).Return(nil).Once()
	repos.Listing.On("Delete", ctx, id).Return(nil).Once()

	require.NoError(t, svc.DeleteListing(ctx, id))
	repos.AssertExpectations(t)
}

func TestVendors(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the repository ranking", func(t *testing.T) {
		repos := mocks.NewRepositories()
		svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil)
		ranked := []domain.VendorSummary{
			{ID: uuid.New(), FullName: "Ana Pop", ServicesCount: 3},
			{ID: uuid.New(), FullName: "Dan Ionescu", ServicesCount: 1},
		}
		repos.User.On("ListVendorsWithListings", ctx).Return(ranked, nil).Once()

		vendors, err := svc.Vendors(ctx)

		require.NoError(t, err)
		assert.Equal(t, ranked, vendors)
		repos.AssertExpectations(t)
	})

	t.Run("no vendors is an empty list", func(t *testing.T) {
		repos := mocks.NewRepositories()
		svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil)
		repos.User.On("ListVendorsWithListings", ctx).Return(nil, nil).Once()

		vendors, err := svc.Vendors(ctx)

		require.NoError(t, err)
		assert.NotNil(t, vendors)
		assert.Empty(t, vendors)
	})

	t.Run("repository error", func(t *testing.T) {
		repos := mocks.NewRepositories()
		svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil)
		repos.User.On("ListVendorsWithListings", ctx).Return(nil, errors.New("db down")).Once()

		_, err := svc.Vendors(ctx)

		assert.EqualError(t, err, "db down")
	})
}
