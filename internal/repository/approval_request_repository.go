package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

type ApprovalRequestRepository interface {
	Create(ctx context.Context, req *domain.ApprovalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalRequest, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.ApprovalRequest, error)
	List(ctx context.Context, status *domain.ApprovalStatus, params domain.PaginationParams) ([]domain.ApprovalRequest, int64, error)
	Review(ctx context.Context, req *domain.ApprovalRequest, from domain.ApprovalStatus) error
	CountByStatus(ctx context.Context, status domain.ApprovalStatus) (int64, error)
	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error
}

type approvalRequestRepository struct {
	db sqlx.ExtContext
}

func NewApprovalRequestRepository(db sqlx.ExtContext) ApprovalRequestRepository {
	return &approvalRequestRepository{db: db}
}

func (r *approvalRequestRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	query := `
		INSERT INTO approval_requests (id, vendor_id, vendor_name, vendor_email, vendor_phone, service, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.VendorID, req.VendorName, req.VendorEmail, req.VendorPhone, req.Service, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *approvalRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalRequest, error) {
	return getOne[domain.ApprovalRequest](ctx, r.db, `SELECT * FROM approval_requests WHERE id = $1`, id)
}

func (r *approvalRequestRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.ApprovalRequest, error) {
	var reqs []domain.ApprovalRequest
	query := `SELECT * FROM approval_requests WHERE vendor_id = $1 ORDER BY created_at DESC`
	err := sqlx.SelectContext(ctx, r.db, &reqs, query, vendorID)
	return reqs, err
}

func (r *approvalRequestRepository) List(ctx context.Context, status *domain.ApprovalStatus, params domain.PaginationParams) ([]domain.ApprovalRequest, int64, error) {
	params.Validate()

	var total int64
	var reqs []domain.ApprovalRequest

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM approval_requests WHERE status = $1`
		if err := sqlx.GetContext(ctx, r.db, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM approval_requests
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := sqlx.SelectContext(ctx, r.db, &reqs, query, *status, params.PageSize, params.Offset())
		return reqs, total, err
	}

	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM approval_requests`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM approval_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := sqlx.SelectContext(ctx, r.db, &reqs, query, params.PageSize, params.Offset())
	return reqs, total, err
}

// Review persists req.Status, AdminFeedback and ReviewedBy only if the row
// is still in from. A concurrent review makes it return ErrStaleState.
func (r *approvalRequestRepository) Review(ctx context.Context, req *domain.ApprovalRequest, from domain.ApprovalStatus) error {
	query := `
		UPDATE approval_requests
		SET status = $3, admin_feedback = $4, reviewed_by = $5, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING reviewed_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		req.ID, from, req.Status, req.AdminFeedback, req.ReviewedBy,
	).Scan(&req.ReviewedAt, &req.UpdatedAt)
	return staleOnNoRows(err)
}

func (r *approvalRequestRepository) CountByStatus(ctx context.Context, status domain.ApprovalStatus) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM approval_requests WHERE status = $1`, status)
	return count, err
}

func (r *approvalRequestRepository) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM approval_requests WHERE vendor_id = $1`, vendorID)
	return err
}
