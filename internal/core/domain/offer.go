package domain

import (
	"errors"
	"time"
)

var ErrOfferNotFound = errors.New("offer not found or unauthorized")

// OfferItem is a product highlighted by an offer.
type OfferItem struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Image         string  `json:"image"`
}

// Offer is a vendor-owned promotion tied to a category.
type Offer struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Discount    int         `json:"discount"`
	ValidUntil  string      `json:"validUntil,omitempty"`
	Products    []OfferItem `json:"products"`
	VendorID    string      `json:"vendorId"`
	CreatedAt   time.Time   `json:"createdAt"`
}
