package admin

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/cache"
	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/repository"
	"eventoria/internal/service/notification"
)

const (
	newUsersWindow = 7 * 24 * time.Hour
	recentPerKind  = 5
	activityLimit  = 10
)

type Service interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	Vendors(ctx context.Context) ([]domain.VendorSummary, error)
	DeleteVendor(ctx context.Context, id uuid.UUID) error
	DeleteListing(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repos         *repository.Repositories
	tx            repository.TxManager
	notifications notification.Service
	cache         *cache.Cache
	now           func() time.Time
}

func NewService(repos *repository.Repositories, tx repository.TxManager, notifications notification.Service, c *cache.Cache) Service {
	return &service{
		repos:         repos,
		tx:            tx,
		notifications: notifications,
		cache:         c,
		now:           time.Now,
	}
}

func (s *service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	if s.cache.GetJSON(ctx, cache.KeyDashboard, &dashboard) {
		return &dashboard, nil
	}

	pending, err := s.repos.ApprovalRequest.CountByStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, err
	}

	newUsers, err := s.repos.User.CountCreatedSince(ctx, s.now().Add(-newUsersWindow))
	if err != nil {
		return nil, err
	}

	activeServices, err := s.repos.Listing.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	vendors, err := s.repos.User.CountByRole(ctx, domain.RoleVendor)
	if err != nil {
		return nil, err
	}

	users, err := s.repos.User.ListRecent(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}

	listings, err := s.repos.Listing.ListRecent(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}

	dashboard = domain.Dashboard{
		Metrics: domain.DashboardMetrics{
			PendingRequests: pending,
			NewUsers:        newUsers,
			ActiveServices:  activeServices,
			TotalVendors:    vendors,
		},
		RecentActivity: RecentActivity(users, listings, activityLimit),
	}

	s.cache.SetJSON(ctx, cache.KeyDashboard, dashboard, cache.DashboardTTL)
	return &dashboard, nil
}

// RecentActivity merges sign-ups and new listings, newest first.
func RecentActivity(users []domain.User, listings []domain.Listing, limit int) []domain.ActivityItem {
	items := make([]domain.ActivityItem, 0, len(users)+len(listings))
	for _, u := range users {
		items = append(items, domain.ActivityItem{
			Kind:      domain.ActivityUserRegistered,
			Message:   i18n.T("activity.user_registered", u.FullName, u.Role.Label()),
			Timestamp: u.CreatedAt,
		})
	}
	for _, l := range listings {
		items = append(items, domain.ActivityItem{
			Kind:      domain.ActivityServiceAdded,
			Message:   i18n.T("activity.service_added", l.Name),
			Timestamp: l.CreatedAt,
		})
	}

	slices.SortStableFunc(items, func(a, b domain.ActivityItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (s *service) Vendors(ctx context.Context) ([]domain.VendorSummary, error) {
	vendors, err := s.repos.User.ListVendorsWithListings(ctx)
	if err != nil {
		return nil, err
	}
	if vendors == nil {
		vendors = []domain.VendorSummary{}
	}
	return vendors, nil
}

// DeleteVendor removes the account and everything tied to it in one
// transaction. Admin accounts cannot be removed this way.
func (s *service) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	u, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if u.IsAdmin() {
		return domain.ErrForbidden
	}

	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		return repos.PurgeUser(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete vendor %s: %w", id, err)
	}

	log.Info().Str("vendor_id", id.String()).Msg("vendor deleted")
	s.notifications.CloseSessions(ctx, id)
	s.notifications.PushToAdmins(ctx)
	s.cache.Delete(ctx, cache.KeyDashboard)
	return nil
}

func (s *service) DeleteListing(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		return repos.PurgeListing(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info().Str("listing_id", id.String()).Msg("listing deleted by admin")
	s.cache.Delete(ctx, cache.KeyDashboard)
	return nil
}
