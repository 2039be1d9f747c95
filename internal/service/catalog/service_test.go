package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
	"eventoria/internal/mocks"
	"eventoria/internal/repository"
)

func TestGetListing_InactiveVisibility(t *testing.T) {
	categories := new(mocks.CategoryRepository)
	listings := new(mocks.ListingRepository)
	svc := NewService(categories, listings, nil)
	ctx := context.Background()

	vendorID := uuid.New()
	l := &domain.Listing{ID: uuid.New(), VendorID: vendorID, Status: domain.ListingInactive}
	listings.On("GetByID", ctx, l.ID).Return(l, nil)

	_, err := svc.GetListing(ctx, l.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetListing(ctx, l.ID, &domain.User{ID: uuid.New(), Role: domain.RoleParticipant})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetListing(ctx, l.ID, &domain.User{ID: vendorID, Role: domain.RoleVendor})
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	_, err = svc.GetListing(ctx, l.ID, &domain.User{ID: uuid.New(), Role: domain.RoleAdmin})
	assert.NoError(t, err)
}

func TestListListings_PaginatesFilteredResult(t *testing.T) {
	categories := new(mocks.CategoryRepository)
	listings := new(mocks.ListingRepository)
	svc := NewService(categories, listings, nil)
	ctx := context.Background()

	all := make([]domain.Listing, 0, 5)
	for i := 0; i < 5; i++ {
		all = append(all, domain.Listing{ID: uuid.New(), Name: "DJ", CategoryID: "3", Status: domain.ListingActive})
	}
	listings.On("Find", ctx, repository.ListingQuery{ActiveOnly: true, CategoryID: "3"}).Return(all, nil).Once()

	page, err := svc.ListListings(ctx, domain.ListingFilter{CategoryID: "3"}, domain.PaginationParams{Page: 2, PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	listings.AssertExpectations(t)
}

func TestGetCategory_Missing(t *testing.T) {
	categories := new(mocks.CategoryRepository)
	svc := NewService(categories, new(mocks.ListingRepository), nil)
	ctx := context.Background()

	categories.On("GetByID", ctx, "99").Return(nil, nil).Once()

	_, err := svc.GetCategory(ctx, "99")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
