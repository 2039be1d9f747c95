package domain

import (
	"time"

	"github.com/lib/pq"
)

type Category struct {
	ID            string         `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Description   string         `json:"description" db:"description"`
	ImageURL      string         `json:"image_url" db:"image_url"`
	PriceRange    PriceRange     `json:"price_range" db:"price_range"`
	Rating        float64        `json:"rating" db:"rating"`
	Subcategories pq.StringArray `json:"subcategories" db:"subcategories"`
	Tags          pq.StringArray `json:"tags" db:"tags"`
	VendorCount   int            `json:"vendor_count" db:"vendor_count"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}
