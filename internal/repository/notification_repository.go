package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

type NotificationRepository interface {
	Append(ctx context.Context, notif *domain.Notification, keep int) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	Acknowledge(ctx context.Context, userID uuid.UUID, upToSeq int64) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type notificationRepository struct {
	db sqlx.ExtContext
}

func NewNotificationRepository(db sqlx.ExtContext) NotificationRepository {
	return &notificationRepository{db: db}
}

// is_read folds the per-row flag and the user's acknowledged cursor.
const notificationColumns = `
	n.seq, n.id, n.user_id, n.type, n.message, n.event_name, n.request_id, n.listing_id,
	n.confirmed_event_id, n.read_at, n.created_at,
	(n.read_at IS NOT NULL OR n.seq <= u.notification_cursor) AS is_read`

const unreadCondition = `n.seq > u.notification_cursor AND n.read_at IS NULL`

// Append adds notif to the user's log and drops the oldest entries beyond
// keep. keep <= 0 disables pruning.
func (r *notificationRepository) Append(ctx context.Context, notif *domain.Notification, keep int) error {
	query := `
		INSERT INTO notifications (id, user_id, type, message, event_name, request_id, listing_id, confirmed_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.Type, notif.Message, notif.EventName,
		notif.RequestID, notif.ListingID, notif.ConfirmedEventID,
	).Scan(&notif.Seq, &notif.CreatedAt)
	if err != nil || keep <= 0 {
		return err
	}

	prune := `
		DELETE FROM notifications
		WHERE user_id = $1 AND seq <= (
			SELECT seq FROM notifications
			WHERE user_id = $1
			ORDER BY seq DESC
			OFFSET $2 LIMIT 1
		)`
	_, err = r.db.ExecContext(ctx, prune, notif.UserID, keep)
	return err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	filter := `n.user_id = $1`
	if unreadOnly {
		filter += ` AND ` + unreadCondition
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications n JOIN users u ON u.id = n.user_id WHERE ` + filter
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT` + notificationColumns + `
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		WHERE ` + filter + `
		ORDER BY n.seq DESC
		LIMIT $2 OFFSET $3`

	var notifications []domain.Notification
	err := sqlx.SelectContext(ctx, r.db, &notifications, query, userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM notifications n
		JOIN users u ON u.id = n.user_id
		WHERE n.user_id = $1 AND ` + unreadCondition
	err := sqlx.GetContext(ctx, r.db, &count, query, userID)
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET read_at = COALESCE(read_at, NOW()) WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	return affectedOne(res, err, domain.ErrNotFound)
}

// Acknowledge moves the read cursor forward; it never moves back.
func (r *notificationRepository) Acknowledge(ctx context.Context, userID uuid.UUID, upToSeq int64) error {
	query := `UPDATE users SET notification_cursor = GREATEST(notification_cursor, $2) WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, upToSeq)
	return affectedOne(res, err, domain.ErrNotFound)
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET notification_cursor = GREATEST(
			notification_cursor,
			COALESCE((SELECT MAX(seq) FROM notifications WHERE user_id = $1), 0)
		)
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	return affectedOne(res, err, domain.ErrNotFound)
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}
