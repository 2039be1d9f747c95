package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
	"eventoria/internal/mocks"
)

func TestMe(t *testing.T) {
	repos := mocks.NewRepositories()
	notifs := new(mocks.NotificationService)
	svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, notifs, nil)
	ctx := context.Background()
	u := &domain.User{ID: uuid.New(), FullName: "Ana Pop", Role: domain.RoleParticipant}
	saved := []uuid.UUID{uuid.New()}

	repos.User.On("GetByID", ctx, u.ID).Return(u, nil).Once()
	notifs.On("Counters", ctx, u.ID).Return(domain.SessionCounters{UnreadNotifications: 3}, nil).Once()
	repos.Favorite.On("ListByUser", ctx, u.ID).Return(saved, nil).Once()

	profile, err := svc.Me(ctx, u.ID)

	require.NoError(t, err)
	assert.Equal(t, u, profile.User)
	assert.Equal(t, int64(3), profile.Counters.UnreadNotifications)
	assert.Equal(t, saved, profile.SavedListings)
}

func TestFavorites_SkipsRemovedListings(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil)
	ctx := context.Background()
	userID := uuid.New()
	active := &domain.Listing{ID: uuid.New(), Status: domain.ListingActive}
	inactive := &domain.Listing{ID: uuid.New(), Status: domain.ListingInactive}
	gone := uuid.New()

	repos.Favorite.On("ListByUser", ctx, userID).Return([]uuid.UUID{active.ID, inactive.ID, gone}, nil).Once()
	repos.Listing.On("GetByID", ctx, active.ID).Return(active, nil).Once()
	repos.Listing.On("GetByID", ctx, inactive.ID).Return(inactive, nil).Once()
	repos.Listing.On("GetByID", ctx, gone).Return(nil, nil).Once()

	listings, err := svc.Favorites(ctx, userID)

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, active.ID, listings[0].ID)
}

func TestAddFavorite_RequiresActiveListing(t *testing.T) {
	repos := mocks.NewRepositories()
	svc := NewService(repos.Repos(), &mocks.TxManager{Repos: repos.Repos()}, new(mocks.NotificationService), nil)
	ctx := context.Background()
	userID, listingID := uuid.New(), uuid.New()

	repos.Listing.On("GetByID", ctx, listingID).Return(nil, nil).Once()

	assert.ErrorIs(t, svc.AddFavorite(ctx, userID, listingID), domain.ErrNotFound)
	repos.Favorite.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteAccount_ClosesSessionsAfterCommit(t *testing.T) {
	repos := mocks.NewRepositories()
	notifs := new(mocks.NotificationService)
	tx := &mocks.TxManager{Repos: repos.Repos()}
	svc := NewService(repos.Repos(), tx, notifs, nil)
	ctx := context.Background()
	userID := uuid.New()

	repos.Favorite.On("DeleteByVendor", ctx, userID).Return(nil).Once()
	repos.ConfirmedEvent.On("DeleteByUser", ctx, userID).Return(nil).Once()
	repos.Booking.On("DeleteByUser", ctx, userID).Return(nil).Once()
	repos.Listing.On("DeleteByVendor", ctx, userID).Return(nil).Once()
	repos.ApprovalRequest.On("DeleteByVendor", ctx, userID).Return(nil).Once()
	repos.Notification.On("DeleteByUser", ctx, userID).Return(nil).Once()
	repos.Session.On("DeleteByUser", ctx, userID).Return(nil).Once()
	repos.Favorite.On("DeleteByUser", ctx, userID).Return(nil).Once()
	repos.User.On("Delete", ctx, userID).Return(nil).Once()
	notifs.On("CloseSessions", ctx, userID).Once()

	require.NoError(t, svc.DeleteAccount(ctx, userID))
	assert.Equal(t, 1, tx.Calls)
	repos.AssertExpectations(t)
	notifs.AssertExpectations(t)
}
