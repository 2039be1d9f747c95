package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	FullName               string     `json:"full_name" db:"full_name"`
	Phone                  *string    `json:"phone,omitempty" db:"phone"`
	Role                   Role       `json:"role" db:"role"`
	IsActive               bool       `json:"is_active" db:"is_active"`
	NotificationCursor     int64      `json:"-" db:"notification_cursor"`
	PasswordResetToken     *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// HasRole reports whether the user may act with the required role.
// Admins pass every role check.
func (u *User) HasRole(required Role) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == required
}

type RegisterInput struct {
	FullName        string `json:"full_name" validate:"required,fullname"`
	Email           string `json:"email" validate:"required,email,max=100"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            Role   `json:"role" validate:"required,oneof=participant vendor"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionCounters are the live values pushed to a signed-in client.
type SessionCounters struct {
	UnreadNotifications     int64  `json:"unread_notifications"`
	PendingApprovalRequests *int64 `json:"pending_approval_requests,omitempty"`
}

type Profile struct {
	User          *User           `json:"user"`
	Counters      SessionCounters `json:"counters"`
	SavedListings []uuid.UUID     `json:"saved_listings"`
}
