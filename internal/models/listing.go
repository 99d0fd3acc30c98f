package models

import "time"

// Marketplace listing statuses.
const (
	ListingActive   = "active"
	ListingSold     = "sold"
	ListingInactive = "inactive"
)

// Listing is a marketplace entry for hive products.
type Listing struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductName string    `json:"product_name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListingCreate is the input structure for creating a marketplace listing.
type ListingCreate struct {
	UserID      string  `json:"user_id" binding:"required"`
	ProductName string  `json:"product_name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	ImageURL    string  `json:"image_url,omitempty"`
}
