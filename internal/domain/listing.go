package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Listing is a published vendor service visible in the catalog.
type Listing struct {
	ID                uuid.UUID      `json:"id" db:"id"`
	ApprovalRequestID *uuid.UUID     `json:"approval_request_id,omitempty" db:"approval_request_id"`
	VendorID          uuid.UUID      `json:"vendor_id" db:"vendor_id"`
	VendorName        string         `json:"vendor_name" db:"vendor_name"`
	VendorPhone       string         `json:"vendor_phone" db:"vendor_phone"`
	VendorEmail       string         `json:"vendor_email" db:"vendor_email"`
	Name              string         `json:"name" db:"name"`
	Description       string         `json:"description" db:"description"`
	CategoryID        string         `json:"category_id" db:"category_id"`
	Subcategories     pq.StringArray `json:"subcategories" db:"subcategories"`
	Tags              pq.StringArray `json:"tags" db:"tags"`
	Price             Price          `json:"price" db:"price"`
	Locations         pq.StringArray `json:"locations" db:"locations"`
	AvailableDate     time.Time      `json:"date" db:"available_date"`
	ImageURL          string         `json:"image_url" db:"image_url"`
	Rating            float64        `json:"rating" db:"rating"`
	Status            ListingStatus  `json:"status" db:"status"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

func (l *Listing) IsActive() bool {
	return l.Status == ListingActive || l.Status == ""
}

type UpdateListingInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=20,max=2000"`
	Price       *Price   `json:"price,omitempty"`
	Locations   []string `json:"locations,omitempty" validate:"omitempty,min=1,dive,required"`
	Date        *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListingSort string

const (
	SortNewest     ListingSort = "newest"
	SortPriceAsc   ListingSort = "price_asc"
	SortPriceDesc  ListingSort = "price_desc"
	SortNameAsc    ListingSort = "name_asc"
	SortNameDesc   ListingSort = "name_desc"
	SortRatingAsc  ListingSort = "rating_asc"
	SortRatingDesc ListingSort = "rating_desc"
)

func (s ListingSort) IsValid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortRatingAsc, SortRatingDesc:
		return true
	default:
		return false
	}
}

type ListingFilter struct {
	Query       string      `query:"q"`
	City        string      `query:"city"`
	CategoryID  string      `query:"category"`
	Subcategory string      `query:"subcategory"`
	Tag         string      `query:"tag"`
	PriceMin    *float64    `query:"price_min"`
	PriceMax    *float64    `query:"price_max"`
	MinRating   *float64    `query:"min_rating"`
	Sort        ListingSort `query:"sort"`
}
