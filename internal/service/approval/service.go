package approval

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/cache"
	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/pkg/validation"
	"eventoria/internal/repository"
	"eventoria/internal/service/email"
	"eventoria/internal/service/notification"
)

type Service interface {
	Submit(ctx context.Context, vendor *domain.User, form domain.ServiceForm) (*domain.ApprovalRequest, error)
	ListMine(ctx context.Context, vendorID uuid.UUID) ([]domain.ApprovalRequest, error)
	ListForReview(ctx context.Context, status *domain.ApprovalStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.ApprovalRequest], error)
	Approve(ctx context.Context, adminID, id uuid.UUID, input domain.ReviewInput) (*domain.ApprovalRequest, *domain.Listing, error)
	Reject(ctx context.Context, adminID, id uuid.UUID, input domain.ReviewInput) (*domain.ApprovalRequest, error)
}

type service struct {
	repos         *repository.Repositories
	tx            repository.TxManager
	notifications notification.Service
	emailService  email.Service
	validator     *validation.Validator
	cache         *cache.Cache
}

func NewService(
	repos *repository.Repositories,
	tx repository.TxManager,
	notifications notification.Service,
	emailService email.Service,
	validator *validation.Validator,
	c *cache.Cache,
) Service {
	return &service{
		repos:         repos,
		tx:            tx,
		notifications: notifications,
		emailService:  emailService,
		validator:     validator,
		cache:         c,
	}
}

// Submit files a pending request and alerts every admin in the same transaction.
func (s *service) Submit(ctx context.Context, vendor *domain.User, form domain.ServiceForm) (*domain.ApprovalRequest, error) {
	if vendor == nil || !vendor.IsVendor() {
		return nil, domain.ErrForbidden
	}

	date, err := s.validator.ServiceForm(&form)
	if err != nil {
		return nil, err
	}

	exists, err := s.repos.Category.Exists(ctx, form.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		var errs domain.FieldErrors
		errs.Add("category_id", i18n.T("errors.category_missing"))
		return nil, errs
	}

	req := &domain.ApprovalRequest{
		ID:          uuid.New(),
		VendorID:    vendor.ID,
		VendorName:  vendor.FullName,
		VendorEmail: form.Email,
		VendorPhone: form.Phone,
		Service: domain.ServiceSnapshot{
			Name:          form.Name,
			Description:   form.Description,
			CategoryID:    form.CategoryID,
			Subcategories: form.Subcategories,
			Price:         form.Price,
			Locations:     form.Locations,
			Date:          date,
			ImageURL:      form.ImageURL,
			Tags:          form.Tags,
		},
		Status: domain.ApprovalPending,
	}

	var notifs []*domain.Notification
	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.ApprovalRequest.Create(ctx, req); err != nil {
			return err
		}

		admins, err := repos.User.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		for _, admin := range admins {
			n := notification.RequestReceived(admin.ID, req)
			if err := s.notifications.Append(ctx, repos, n); err != nil {
				return err
			}
			notifs = append(notifs, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("request_id", req.ID.String()).Str("vendor_id", vendor.ID.String()).Msg("approval request submitted")
	s.notifications.Push(ctx, notifs...)
	s.cache.Delete(ctx, cache.KeyDashboard)
	return req, nil
}

func (s *service) ListMine(ctx context.Context, vendorID uuid.UUID) ([]domain.ApprovalRequest, error) {
	reqs, err := s.repos.ApprovalRequest.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []domain.ApprovalRequest{}
	}
	return reqs, nil
}

func (s *service) ListForReview(ctx context.Context, status *domain.ApprovalStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.ApprovalRequest], error) {
	params.Validate()
	if status != nil && !status.IsValid() {
		var errs domain.FieldErrors
		errs.Add("status", i18n.T("validation.default.oneof"))
		return domain.PaginatedResponse[domain.ApprovalRequest]{}, errs
	}

	reqs, total, err := s.repos.ApprovalRequest.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ApprovalRequest]{}, err
	}
	return domain.NewPaginatedResponse(reqs, params.Page, params.PageSize, total), nil
}

func (s *service) Approve(ctx context.Context, adminID, id uuid.UUID, input domain.ReviewInput) (*domain.ApprovalRequest, *domain.Listing, error) {
	return s.review(ctx, adminID, id, domain.ApprovalApproved, input)
}

func (s *service) Reject(ctx context.Context, adminID, id uuid.UUID, input domain.ReviewInput) (*domain.ApprovalRequest, error) {
	req, _, err := s.review(ctx, adminID, id, domain.ApprovalRejected, input)
	return req, err
}

// review decides a pending request. Approval publishes exactly one listing
// copied from the snapshot. A request that was already decided is left
// untouched and no notification is written.
func (s *service) review(ctx context.Context, adminID, id uuid.UUID, to domain.ApprovalStatus, input domain.ReviewInput) (*domain.ApprovalRequest, *domain.Listing, error) {
	if errs := s.validator.Struct("review", &input); len(errs) > 0 {
		return nil, nil, errs
	}

	req, err := s.repos.ApprovalRequest.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, domain.ErrNotFound
	}

	from := req.Status
	if !from.CanTransitionTo(to) {
		return nil, nil, domain.NewTransitionError(from, to)
	}

	req.Status = to
	req.AdminFeedback = normalizeFeedback(input.Feedback)
	req.ReviewedBy = &adminID

	var listing *domain.Listing
	var notif *domain.Notification
	err = s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.ApprovalRequest.Review(ctx, req, from); err != nil {
			return err
		}

		var listingID *uuid.UUID
		if to == domain.ApprovalApproved {
			listing = req.ToListing()
			if err := repos.Listing.Create(ctx, listing); err != nil {
				return err
			}
			listingID = &listing.ID
		}

		notif = notification.ServiceReviewed(req, listingID)
		return s.notifications.Append(ctx, repos, notif)
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("request_id", req.ID.String()).
		Str("status", string(to)).
		Str("admin_id", adminID.String()).
		Msg("approval request reviewed")

	s.notifications.Push(ctx, notif)
	s.notifications.PushToAdmins(ctx)
	s.cache.Delete(ctx, cache.KeyDashboard)

	reviewed := *req
	go func() {
		err := s.emailService.SendReviewEmail(context.Background(), reviewed.VendorEmail, reviewed.VendorName,
			reviewed.Service.Name, to == domain.ApprovalApproved, reviewed.AdminFeedback)
		if err != nil {
			log.Error().Err(err).Str("request_id", reviewed.ID.String()).Msg("failed to send review email")
		}
	}()

	return req, listing, nil
}

func normalizeFeedback(feedback *string) *string {
	if feedback == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*feedback)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
