package listing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/cache"
	"eventoria/internal/domain"
	"eventoria/internal/pkg/validation"
	"eventoria/internal/repository"
)

type Service interface {
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.Listing, error)
	Update(ctx context.Context, vendorID, id uuid.UUID, input domain.UpdateListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}

type service struct {
	listingRepo repository.ListingRepository
	tx          repository.TxManager
	validator   *validation.Validator
	cache       *cache.Cache
}

func NewService(listingRepo repository.ListingRepository, tx repository.TxManager, validator *validation.Validator, c *cache.Cache) Service {
	return &service{
		listingRepo: listingRepo,
		tx:          tx,
		validator:   validator,
		cache:       c,
	}
}

func (s *service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.Listing, error) {
	listings, err := s.listingRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

func (s *service) owned(ctx context.Context, vendorID, id uuid.UUID) (*domain.Listing, error) {
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	return l, nil
}

func (s *service) Update(ctx context.Context, vendorID, id uuid.UUID, input domain.UpdateListingInput) (*domain.Listing, error) {
	l, err := s.owned(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	date, err := s.validator.ListingUpdate(&input)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		l.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		l.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		l.Price = *input.Price
	}
	if input.Locations != nil {
		l.Locations = input.Locations
	}
	if date != nil {
		l.AvailableDate = *date
	}

	if err := s.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes the listing with its bookings, confirmed events and favorites.
func (s *service) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	if _, err := s.owned(ctx, vendorID, id); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		return repos.PurgeListing(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info().Str("listing_id", id.String()).Str("vendor_id", vendorID.String()).Msg("listing deleted by vendor")
	s.cache.Delete(ctx, cache.KeyDashboard)
	return nil
}
