package domain

import (
	"time"

	"github.com/google/uuid"
)

type DashboardMetrics struct {
	PendingRequests int64 `json:"pending_requests"`
	NewUsers        int64 `json:"new_users"`
	ActiveServices  int64 `json:"active_services"`
	TotalVendors    int64 `json:"total_vendors"`
}

type ActivityKind string

const (
	ActivityUserRegistered ActivityKind = "user"
	ActivityServiceAdded   ActivityKind = "service"
)

type ActivityItem struct {
	Kind      ActivityKind `json:"type"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}

type Dashboard struct {
	Metrics        DashboardMetrics `json:"metrics"`
	RecentActivity []ActivityItem   `json:"recent_activity"`
}

type VendorSummary struct {
	ID            uuid.UUID `json:"id" db:"id"`
	FullName      string    `json:"full_name" db:"full_name"`
	Email         string    `json:"email" db:"email"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	ServicesCount int       `json:"services_count" db:"services_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
