package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/domain"
	"eventoria/internal/realtime"
	"eventoria/internal/repository"
)

type Service interface {
	// Append writes n through repos, which is normally bound to the
	// caller's transaction. Call Push once the transaction commits.
	Append(ctx context.Context, repos *repository.Repositories, n *domain.Notification) error
	Push(ctx context.Context, notifs ...*domain.Notification)
	PushCounters(ctx context.Context, userIDs ...uuid.UUID)
	PushToAdmins(ctx context.Context)
	CloseSessions(ctx context.Context, userID uuid.UUID)

	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Counters(ctx context.Context, userID uuid.UUID) (domain.SessionCounters, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Acknowledge(ctx context.Context, userID uuid.UUID, upToSeq int64) error
}

type service struct {
	notifRepo    repository.NotificationRepository
	userRepo     repository.UserRepository
	approvalRepo repository.ApprovalRequestRepository
	publisher    realtime.Publisher
	keep         int
}

func NewService(repos *repository.Repositories, publisher realtime.Publisher, keep int) Service {
	if publisher == nil {
		publisher = realtime.Nop{}
	}
	return &service{
		notifRepo:    repos.Notification,
		userRepo:     repos.User,
		approvalRepo: repos.ApprovalRequest,
		publisher:    publisher,
		keep:         keep,
	}
}

func (s *service) Append(ctx context.Context, repos *repository.Repositories, n *domain.Notification) error {
	return repos.Notification.Append(ctx, n, s.keep)
}

// Push delivers each notification followed by the recipient's fresh counters.
func (s *service) Push(ctx context.Context, notifs ...*domain.Notification) {
	seen := make(map[uuid.UUID]bool, len(notifs))
	var recipients []uuid.UUID
	for _, n := range notifs {
		if n == nil {
			continue
		}
		s.publish(ctx, n.UserID, realtime.NewMessage(realtime.TypeNotification, n))
		if !seen[n.UserID] {
			seen[n.UserID] = true
			recipients = append(recipients, n.UserID)
		}
	}
	s.PushCounters(ctx, recipients...)
}

func (s *service) PushCounters(ctx context.Context, userIDs ...uuid.UUID) {
	for _, id := range userIDs {
		counters, err := s.Counters(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("failed to compute counters")
			continue
		}
		s.publish(ctx, id, realtime.NewMessage(realtime.TypeCounters, counters))
	}
}

// PushToAdmins refreshes the pending-approval badge of every admin.
func (s *service) PushToAdmins(ctx context.Context) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list admins for counters push")
		return
	}
	ids := make([]uuid.UUID, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	s.PushCounters(ctx, ids...)
}

func (s *service) CloseSessions(ctx context.Context, userID uuid.UUID) {
	s.publish(ctx, userID, realtime.NewMessage(realtime.TypeSessionClosed, nil))
}

func (s *service) publish(ctx context.Context, userID uuid.UUID, msg realtime.Message) {
	if err := s.publisher.Publish(ctx, userID, msg); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Str("type", msg.Type).Msg("realtime publish failed")
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) Counters(ctx context.Context, userID uuid.UUID) (domain.SessionCounters, error) {
	var counters domain.SessionCounters

	unread, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return counters, err
	}
	counters.UnreadNotifications = unread

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return counters, err
	}
	if user != nil && user.IsAdmin() {
		pending, err := s.approvalRepo.CountByStatus(ctx, domain.ApprovalPending)
		if err != nil {
			return counters, err
		}
		counters.PendingApprovalRequests = &pending
	}
	return counters, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.notifRepo.MarkAsRead(ctx, id, userID); err != nil {
		return err
	}
	s.PushCounters(ctx, userID)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.PushCounters(ctx, userID)
	return nil
}

func (s *service) Acknowledge(ctx context.Context, userID uuid.UUID, upToSeq int64) error {
	if upToSeq < 0 {
		upToSeq = 0
	}
	if err := s.notifRepo.Acknowledge(ctx, userID, upToSeq); err != nil {
		return err
	}
	s.PushCounters(ctx, userID)
	return nil
}
