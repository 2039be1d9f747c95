package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/cache"
	"eventoria/internal/domain"
	"eventoria/internal/repository"
	"eventoria/internal/service/notification"
)

type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	Favorites(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error
}

type service struct {
	repos         *repository.Repositories
	tx            repository.TxManager
	notifications notification.Service
	cache         *cache.Cache
}

func NewService(repos *repository.Repositories, tx repository.TxManager, notifications notification.Service, c *cache.Cache) Service {
	return &service{
		repos:         repos,
		tx:            tx,
		notifications: notifications,
		cache:         c,
	}
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	u, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	counters, err := s.notifications.Counters(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.repos.Favorite.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{User: u, Counters: counters, SavedListings: saved}, nil
}

// DeleteAccount removes the caller and all data they own or take part in.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		return repos.PurgeUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	log.Info().Str("user_id", userID.String()).Msg("account deleted")
	s.notifications.CloseSessions(ctx, userID)
	s.cache.Delete(ctx, cache.KeyDashboard)
	return nil
}

func (s *service) Favorites(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	ids, err := s.repos.Favorite.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		l, err := s.repos.Listing.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if l == nil || !l.IsActive() {
			continue
		}
		listings = append(listings, *l)
	}
	return listings, nil
}

func (s *service) AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	l, err := s.repos.Listing.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if l == nil || !l.IsActive() {
		return domain.ErrNotFound
	}
	return s.repos.Favorite.Add(ctx, userID, listingID)
}

func (s *service) RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.repos.Favorite.Remove(ctx, userID, listingID)
}
