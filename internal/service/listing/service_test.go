package listing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
	"eventoria/internal/mocks"
	"eventoria/internal/pkg/validation"
)

func strPtr(s string) *string { return &s }

func newTestService() (Service, *mocks.Repositories, *mocks.TxManager) {
	repos := mocks.NewRepositories()
	tx := &mocks.TxManager{Repos: repos.Repos()}
	return NewService(repos.Listing, tx, validation.New(time.UTC), nil), repos, tx
}

func TestUpdate_AppliesOnlySentFields(t *testing.T) {
	svc, repos, _ := newTestService()
	ctx := context.Background()
	vendorID := uuid.New()
	l := &domain.Listing{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Name:        "DJ Alex",
		Description: "DJ profesionist pentru nunți și botezuri.",
		Price:       domain.Price{Amount: 1000, Unit: domain.PerEvent},
	}

	repos.Listing.On("GetByID", ctx, l.ID).Return(l, nil).Once()
	repos.Listing.On("Update", ctx, l).Return(nil).Once()

	got, err := svc.Update(ctx, vendorID, l.ID, domain.UpdateListingInput{
		Name: strPtr("  DJ Alex Beats "),
		Date: strPtr("2025-09-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, "DJ Alex Beats", got.Name)
	assert.Equal(t, "DJ profesionist pentru nunți și botezuri.", got.Description)
	assert.Equal(t, 1000.0, got.Price.Amount)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), got.AvailableDate)
}

func TestUpdate_RejectsBadInput(t *testing.T) {
	svc, repos, _ := newTestService()
	ctx := context.Background()
	vendorID := uuid.New()
	l := &domain.Listing{ID: uuid.New(), VendorID: vendorID}

	repos.Listing.On("GetByID", ctx, l.ID).Return(l, nil).Once()

	_, err := svc.Update(ctx, vendorID, l.ID, domain.UpdateListingInput{Name: strPtr("DJ")})

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Has("name"))
	repos.Listing.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, repos, tx := newTestService()
	ctx := context.Background()
	l := &domain.Listing{ID: uuid.New(), VendorID: uuid.New()}

	repos.Listing.On("GetByID", ctx, l.ID).Return(l, nil).Once()

	err := svc.Delete(ctx, uuid.New(), l.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, tx.Calls)
}

func TestDelete_PurgesDependents(t *testing.T) {
	svc, repos, tx := newTestService()
	ctx := context.Background()
	vendorID := uuid.New()
	l := &domain.Listing{ID: uuid.New(), VendorID: vendorID}

	repos.Listing.On("GetByID", ctx, l.ID).Return(l, nil).Once()
	repos.Favorite.On("DeleteByListing", ctx, l.ID).Return(nil).Once()
	repos.ConfirmedEvent.On("DeleteByListing", ctx, l.ID).Return(nil).Once()
	repos.Booking.On("DeleteByListing", ctx, l.ID).Return(nil).Once()
	repos.Listing.On("Delete", ctx, l.ID).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, vendorID, l.ID))
	assert.Equal(t, 1, tx.Calls)
	repos.AssertExpectations(t)
}
