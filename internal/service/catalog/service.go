package catalog

import (
	"context"

	"github.com/google/uuid"

	"eventoria/internal/cache"
	"eventoria/internal/domain"
	"eventoria/internal/repository"
)

type Service interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListListings(ctx context.Context, filter domain.ListingFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Listing], error)
	// GetListing hides inactive listings from everyone but their vendor and admins.
	GetListing(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Listing, error)
}

type service struct {
	categoryRepo repository.CategoryRepository
	listingRepo  repository.ListingRepository
	cache        *cache.Cache
}

func NewService(categoryRepo repository.CategoryRepository, listingRepo repository.ListingRepository, c *cache.Cache) Service {
	return &service{
		categoryRepo: categoryRepo,
		listingRepo:  listingRepo,
		cache:        c,
	}
}

func (s *service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if s.cache.GetJSON(ctx, cache.KeyCategories, &categories) {
		return categories, nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	s.cache.SetJSON(ctx, cache.KeyCategories, categories, cache.CategoriesTTL)
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (s *service) ListListings(ctx context.Context, filter domain.ListingFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Listing], error) {
	listings, err := s.listingRepo.Find(ctx, repository.ListingQuery{
		ActiveOnly:  true,
		CategoryID:  filter.CategoryID,
		Subcategory: filter.Subcategory,
		Tag:         filter.Tag,
	})
	if err != nil {
		return domain.PaginatedResponse[domain.Listing]{}, err
	}

	return domain.Paginate(Apply(listings, filter), params), nil
}

func (s *service) GetListing(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrNotFound
	}

	if !listing.IsActive() && (viewer == nil || (!viewer.IsAdmin() && viewer.ID != listing.VendorID)) {
		return nil, domain.ErrNotFound
	}
	return listing, nil
}
