package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ServiceSnapshot is the service as the vendor submitted it. It is copied
// verbatim into a Listing on approval.
type ServiceSnapshot struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CategoryID    string    `json:"category_id"`
	Subcategories []string  `json:"subcategories"`
	Price         Price     `json:"price"`
	Locations     []string  `json:"locations"`
	Date          time.Time `json:"date"`
	ImageURL      string    `json:"image_url"`
	Tags          []string  `json:"tags"`
}

func (s ServiceSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ServiceSnapshot) Scan(src any) error {
	return scanJSON(src, s)
}

type ApprovalRequest struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	VendorID      uuid.UUID       `json:"vendor_id" db:"vendor_id"`
	VendorName    string          `json:"vendor_name" db:"vendor_name"`
	VendorEmail   string          `json:"vendor_email" db:"vendor_email"`
	VendorPhone   string          `json:"vendor_phone" db:"vendor_phone"`
	Service       ServiceSnapshot `json:"service" db:"service"`
	Status        ApprovalStatus  `json:"status" db:"status"`
	AdminFeedback *string         `json:"admin_feedback,omitempty" db:"admin_feedback"`
	ReviewedBy    *uuid.UUID      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ToListing builds the published listing for an approved request.
func (r *ApprovalRequest) ToListing() *Listing {
	requestID := r.ID
	return &Listing{
		ID:                uuid.New(),
		ApprovalRequestID: &requestID,
		VendorID:          r.VendorID,
		VendorName:        r.VendorName,
		VendorPhone:       r.VendorPhone,
		VendorEmail:       r.VendorEmail,
		Name:              r.Service.Name,
		Description:       r.Service.Description,
		CategoryID:        r.Service.CategoryID,
		Subcategories:     append([]string(nil), r.Service.Subcategories...),
		Tags:              append([]string(nil), r.Service.Tags...),
		Price:             r.Service.Price,
		Locations:         append([]string(nil), r.Service.Locations...),
		AvailableDate:     r.Service.Date,
		ImageURL:          r.Service.ImageURL,
		Status:            ListingActive,
	}
}

// ServiceForm is the vendor submission payload.
type ServiceForm struct {
	Name          string   `json:"name" validate:"required,min=3,max=100"`
	Description   string   `json:"description" validate:"required,min=20,max=2000"`
	CategoryID    string   `json:"category_id" validate:"required"`
	Subcategories []string `json:"subcategories" validate:"min=1"`
	Price         Price    `json:"price"`
	Locations     []string `json:"locations" validate:"min=1"`
	Date          string   `json:"date" validate:"required"`
	ImageURL      string   `json:"image_url" validate:"required"`
	Phone         string   `json:"phone" validate:"required,ro_phone"`
	Email         string   `json:"email" validate:"required,email"`
	Tags          []string `json:"tags" validate:"min=1"`
}

type ReviewInput struct {
	Feedback *string `json:"feedback,omitempty" validate:"omitempty,max=1000"`
}
