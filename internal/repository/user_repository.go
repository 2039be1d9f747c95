package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"eventoria/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.User, error)
	ListVendorsWithListings(ctx context.Context) ([]domain.VendorSummary, error)
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (*domain.User, error)
	ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return getOne[domain.User](ctx, r.db, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return getOne[domain.User](ctx, r.db, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = :email, password_hash = :password_hash, full_name = :full_name,
			phone = :phone, role = :role, is_active = :is_active, updated_at = NOW()
		WHERE id = :id`

	res, err := sqlx.NamedExecContext(ctx, r.db, query, user)
	return affectedOne(res, err, domain.ErrNotFound)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return affectedOne(res, err, domain.ErrNotFound)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	return exists, err
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE role = $1 AND is_active ORDER BY created_at DESC`

	err := sqlx.SelectContext(ctx, r.db, &users, query, role)
	return users, err
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
	return count, err
}

func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM users WHERE created_at >= $1`, since)
	return count, err
}

func (r *userRepository) ListRecent(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	err := sqlx.SelectContext(ctx, r.db, &users, `SELECT * FROM users ORDER BY created_at DESC LIMIT $1`, limit)
	return users, err
}

func (r *userRepository) ListVendorsWithListings(ctx context.Context) ([]domain.VendorSummary, error) {
	query := `
		SELECT u.id, u.full_name, u.email, u.phone, u.created_at, COUNT(l.id) AS services_count
		FROM users u
		JOIN listings l ON l.vendor_id = u.id
		WHERE u.role = 'vendor'
		GROUP BY u.id
		ORDER BY services_count DESC, u.full_name ASC`

	var vendors []domain.VendorSummary
	err := sqlx.SelectContext(ctx, r.db, &vendors, query)
	return vendors, err
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires_at = $3, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, token, expiresAt)
	return affectedOne(res, err, domain.ErrNotFound)
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT * FROM users WHERE password_reset_token = $1 AND password_reset_expires_at > NOW()`
	return getOne[domain.User](ctx, r.db, query, token)
}

func (r *userRepository) ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	return affectedOne(res, err, domain.ErrNotFound)
}
